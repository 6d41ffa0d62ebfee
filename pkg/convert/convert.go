// Package convert turns a bandgap reading into a supply voltage.
//
// The ADC measures the bandgap as a fraction of Vcc:
//
//	Vbg / Vcc = raw / resolution
//	Vcc = Vbg * resolution / raw
//
// All arithmetic is integer with truncating division.
package convert

import (
	"errors"
	"math"
)

// ErrZeroReading is returned for a raw reading of zero, for which the supply
// voltage is undefined. It usually means the ADC is not reading the bandgap.
var ErrZeroReading = errors.New("zero ADC reading")

// ErrOverflow is returned when the supply voltage does not fit in 32 bits of
// millivolts, which takes an implausibly large bandgap and a tiny raw reading.
var ErrOverflow = errors.New("supply voltage overflows uint32 millivolts")

// Millivolts returns the supply voltage in millivolts.
func Millivolts(bandgap uint16, resolution uint32, raw uint32) (uint32, error) {
	return Precompute(bandgap, resolution).Millivolts(raw)
}

// Precomputed caches bandgap * resolution for a fixed resolution.
type Precomputed struct {
	product uint64
}

// Precompute returns the cached product of bandgap and resolution.
func Precompute(bandgap uint16, resolution uint32) Precomputed {
	return Precomputed{product: uint64(bandgap) * uint64(resolution)}
}

// Product returns bandgap * resolution.
func (p Precomputed) Product() uint64 {
	return p.product
}

// Millivolts returns the supply voltage in millivolts for raw.
// Results that do not fit in uint32 are reported as ErrOverflow.
func (p Precomputed) Millivolts(raw uint32) (uint32, error) {
	if raw == 0 {
		return 0, ErrZeroReading
	}
	mv := p.product / uint64(raw)
	if mv > math.MaxUint32 {
		return 0, ErrOverflow
	}
	return uint32(mv), nil
}

// Volts converts millivolts to volts.
func Volts(mv uint32) float32 {
	return float32(mv) / 1000.0
}
