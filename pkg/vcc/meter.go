// Package vcc measures the supply voltage of a microcontroller by reading its
// internal bandgap reference against Vcc.
//
// A Meter is not safe for concurrent use. Reads block until the backend
// finishes every conversion they need and never allocate.
package vcc

import (
	"github.com/itohio/mcuvcc/pkg/adc"
	"github.com/itohio/mcuvcc/pkg/convert"
	"github.com/itohio/mcuvcc/pkg/resolution"
)

// Meter reads Vcc through an ADC backend and keeps the state of the last reading.
type Meter struct {
	backend adc.Backend
	profile adc.Profile

	bandgap uint16
	precomp convert.Precomputed // bandgap * native resolution

	mode adc.Mode
	last uint32

	sw resolution.Plan
	hw resolution.Plan
}

// New creates a Meter using the default bandgap of the backend's device.
func New(b adc.Backend) *Meter {
	return NewWithBandgap(b, 0)
}

// NewWithBandgap creates a Meter with a calibrated bandgap in millivolts.
// Zero selects the device default.
func NewWithBandgap(b adc.Backend, bandgap uint16) *Meter {
	m := &Meter{
		backend: b,
		profile: b.Profile(),
		mode:    adc.Regular,
	}
	m.bandgap = m.profile.Bandgap
	m.SetBandgap(bandgap)
	m.precomp = convert.Precompute(m.bandgap, m.profile.Resolution)
	return m
}

// SetBandgap sets the bandgap reference in millivolts. Zero is rejected and
// leaves the current value in place.
func (m *Meter) SetBandgap(mv uint16) bool {
	if mv == 0 {
		return false
	}
	m.bandgap = mv
	m.precomp = convert.Precompute(m.bandgap, m.profile.Resolution)
	return true
}

// Bandgap returns the bandgap reference in millivolts.
func (m *Meter) Bandgap() uint16 {
	return m.bandgap
}

// LastADCReading returns the raw value behind the last reading: a single
// conversion, a decimated oversampled value, or an average of those.
func (m *Meter) LastADCReading() uint32 {
	return m.last
}

// BitDepth returns the native bit depth of the ADC.
func (m *Meter) BitDepth() uint8 {
	return m.profile.BitDepth
}

// Resolution returns the native resolution of the ADC.
func (m *Meter) Resolution() uint32 {
	return m.profile.Resolution
}

// Mode returns the mode of the last reading.
func (m *Meter) Mode() adc.Mode {
	return m.mode
}

// Device returns the device family of the backend.
func (m *Meter) Device() adc.Family {
	return m.profile.Family
}

// Profile returns the device profile of the backend.
func (m *Meter) Profile() adc.Profile {
	return m.profile
}

// SoftwarePlan returns the parameters of the last software oversampled reading.
func (m *Meter) SoftwarePlan() resolution.Plan {
	return m.sw
}

// HardwarePlan returns the parameters of the last hardware oversampled reading.
func (m *Meter) HardwarePlan() resolution.Plan {
	return m.hw
}

// Plan returns the parameters of the last reading in its mode.
func (m *Meter) Plan() resolution.Plan {
	switch m.mode {
	case adc.SoftwareOversampled:
		return m.sw
	case adc.HardwareOversampled:
		return m.hw
	default:
		return resolution.Native(m.profile.BitDepth)
	}
}

// Measure reads Vcc in millivolts in the given mode. bitDepth is ignored for
// regular readings.
func (m *Meter) Measure(mode adc.Mode, bitDepth uint8, avgTimes int) (uint32, error) {
	switch mode {
	case adc.SoftwareOversampled:
		return m.ReadMillivoltsOSAvg(bitDepth, avgTimes)
	case adc.HardwareOversampled:
		return m.ReadMillivoltsHWOSAvg(bitDepth, avgTimes)
	default:
		return m.ReadMillivoltsAvg(avgTimes)
	}
}

func averageCount(n int) uint64 {
	if n < 1 {
		return 1
	}
	return uint64(n)
}

// fit keeps a raw value inside [0, resolution-1].
func fit(raw uint32, res uint32) uint32 {
	if raw >= res {
		return res - 1
	}
	return raw
}
