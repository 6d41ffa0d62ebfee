package vcc

import (
	"github.com/itohio/mcuvcc/pkg/adc"
	"github.com/itohio/mcuvcc/pkg/convert"
)

// Setup configures the ADC for regular readings.
func (m *Meter) Setup() {
	m.backend.Configure(adc.Regular, m.profile.BitDepth)
}

// ReadADC performs one conversion with the current ADC configuration.
func (m *Meter) ReadADC() uint32 {
	m.last = fit(adc.Convert(m.backend), m.profile.Resolution)
	return m.last
}

// ReadMillivolts reads Vcc once. The first conversion after Setup is thrown away.
func (m *Meter) ReadMillivolts() (uint32, error) {
	return m.ReadMillivoltsAvg(1)
}

// ReadMillivoltsAvg averages avgTimes conversions after throwing away the
// first one. avgTimes below one reads once.
func (m *Meter) ReadMillivoltsAvg(avgTimes int) (uint32, error) {
	m.mode = adc.Regular
	n := averageCount(avgTimes)

	m.Setup()
	m.ReadADC()

	var sum uint64
	for i := uint64(0); i < n; i++ {
		sum += uint64(m.ReadADC())
	}
	m.last = uint32(sum / n)

	return m.precomp.Millivolts(m.last)
}

// Read reads Vcc once in volts.
func (m *Meter) Read() (float32, error) {
	mv, err := m.ReadMillivolts()
	return convert.Volts(mv), err
}

// ReadAvg reads Vcc in volts averaged over avgTimes conversions.
func (m *Meter) ReadAvg(avgTimes int) (float32, error) {
	mv, err := m.ReadMillivoltsAvg(avgTimes)
	return convert.Volts(mv), err
}
