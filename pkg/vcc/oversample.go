package vcc

import (
	"github.com/itohio/mcuvcc/pkg/adc"
	"github.com/itohio/mcuvcc/pkg/convert"
	"github.com/itohio/mcuvcc/pkg/resolution"
)

// SetupOS plans a software oversampled reading at targetBitDepth and
// configures the ADC for it.
func (m *Meter) SetupOS(targetBitDepth uint8) {
	m.sw = resolution.Software(targetBitDepth, m.profile.BitDepth)
	m.backend.Configure(adc.SoftwareOversampled, m.sw.BitDepth)
}

// ReadADCOS sums SampleCount native conversions and decimates the sum to the
// oversampled bit depth.
func (m *Meter) ReadADCOS() uint32 {
	// At most 4^7 samples of 12 bits, well inside 32 bits.
	var sum uint32
	for i := uint32(0); i < m.sw.SampleCount; i++ {
		sum += fit(adc.Convert(m.backend), m.profile.Resolution)
	}
	m.last = fit(sum>>m.sw.ExtraBits, m.sw.Resolution)
	return m.last
}

// ReadMillivoltsOS reads Vcc once with software oversampling.
func (m *Meter) ReadMillivoltsOS(targetBitDepth uint8) (uint32, error) {
	return m.ReadMillivoltsOSAvg(targetBitDepth, 1)
}

// ReadMillivoltsOSAvg throws away one oversampled reading, then averages
// avgTimes oversampled readings.
func (m *Meter) ReadMillivoltsOSAvg(targetBitDepth uint8, avgTimes int) (uint32, error) {
	m.mode = adc.SoftwareOversampled
	n := averageCount(avgTimes)

	m.SetupOS(targetBitDepth)
	m.ReadADCOS()

	var sum uint64
	for i := uint64(0); i < n; i++ {
		sum += uint64(m.ReadADCOS())
	}
	m.last = uint32(sum / n)

	return convert.Millivolts(m.bandgap, m.sw.Resolution, m.last)
}

// ReadOS reads Vcc once in volts with software oversampling.
func (m *Meter) ReadOS(targetBitDepth uint8) (float32, error) {
	mv, err := m.ReadMillivoltsOS(targetBitDepth)
	return convert.Volts(mv), err
}

// ReadOSAvg reads Vcc in volts with software oversampling and averaging.
func (m *Meter) ReadOSAvg(targetBitDepth uint8, avgTimes int) (float32, error) {
	mv, err := m.ReadMillivoltsOSAvg(targetBitDepth, avgTimes)
	return convert.Volts(mv), err
}
