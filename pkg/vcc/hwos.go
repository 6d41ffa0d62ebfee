package vcc

import (
	"github.com/itohio/mcuvcc/pkg/adc"
	"github.com/itohio/mcuvcc/pkg/convert"
	"github.com/itohio/mcuvcc/pkg/resolution"
)

// SetupHWOS plans a hardware oversampled reading and configures the ADC to
// accumulate for it. Targets outside the accumulator window use its default depth.
func (m *Meter) SetupHWOS(targetBitDepth uint8) {
	w := m.profile.Hardware
	m.hw = resolution.Hardware(targetBitDepth, m.profile.BitDepth, resolution.Limits{
		Min:     w.Min,
		Max:     w.Max,
		Default: w.Default,
	})
	m.backend.Configure(adc.HardwareOversampled, m.hw.BitDepth)
}

// ReadADCHWOS performs one accumulated conversion. At the default depth the
// ADC scales the result itself, otherwise the sum is decimated here.
func (m *Meter) ReadADCHWOS() uint32 {
	raw := adc.Convert(m.backend)
	if m.hw.BitDepth != m.profile.Hardware.Default {
		raw >>= m.hw.ExtraBits
	}
	m.last = fit(raw, m.hw.Resolution)
	return m.last
}

// ReadMillivoltsHWOS reads Vcc once with hardware oversampling.
func (m *Meter) ReadMillivoltsHWOS(targetBitDepth uint8) (uint32, error) {
	return m.ReadMillivoltsHWOSAvg(targetBitDepth, 1)
}

// ReadMillivoltsHWOSAvg throws away one accumulated reading, then averages
// avgTimes of them. Devices without an accumulator fall back to software
// oversampling.
func (m *Meter) ReadMillivoltsHWOSAvg(targetBitDepth uint8, avgTimes int) (uint32, error) {
	if !m.profile.HardwareOversampling() {
		return m.ReadMillivoltsOSAvg(targetBitDepth, avgTimes)
	}

	m.mode = adc.HardwareOversampled
	n := averageCount(avgTimes)

	m.SetupHWOS(targetBitDepth)
	m.ReadADCHWOS()

	var sum uint64
	for i := uint64(0); i < n; i++ {
		sum += uint64(m.ReadADCHWOS())
	}
	m.last = uint32(sum / n)

	return convert.Millivolts(m.bandgap, m.hw.Resolution, m.last)
}

// ReadHWOS reads Vcc once in volts with hardware oversampling.
func (m *Meter) ReadHWOS(targetBitDepth uint8) (float32, error) {
	mv, err := m.ReadMillivoltsHWOS(targetBitDepth)
	return convert.Volts(mv), err
}

// ReadHWOSAvg reads Vcc in volts with hardware oversampling and averaging.
func (m *Meter) ReadHWOSAvg(targetBitDepth uint8, avgTimes int) (float32, error) {
	mv, err := m.ReadMillivoltsHWOSAvg(targetBitDepth, avgTimes)
	return convert.Volts(mv), err
}
