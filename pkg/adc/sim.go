package adc

import (
	"math"
)

// SimConfig configures a simulated ADC.
type SimConfig struct {
	Family    Family
	Vcc       uint32  // supply voltage being measured, mV
	Bandgap   uint32  // true bandgap voltage, mV (0 = profile default)
	NoiseLSB  float64 // peak noise added to each native sample, in LSB
	BusyPolls int     // Busy returns true this many times per conversion
	// SettleError is added to the first conversion after Configure to model
	// the unreliable reading right after switching the reference.
	SettleError int32
}

// Sim is a Backend that derives conversions from a simulated supply voltage.
// It supports both the generic 10-bit ADC and the accumulating 12-bit ADC.
type Sim struct {
	cfg     SimConfig
	profile Profile

	mode       Mode
	bitDepth   uint8
	accumulate uint32 // native samples per conversion
	shift      uint8  // right shift applied by hardware scaling
	settled    bool

	busy   int
	result uint32
	n      uint64 // conversions so far, drives the noise pattern

	// Conversions counts finished conversions, Configures counts Configure calls.
	Conversions int
	Configures  int
}

var _ Backend = (*Sim)(nil)

// NewSim creates a simulated ADC.
func NewSim(cfg SimConfig) *Sim {
	p := ProfileFor(cfg.Family)
	if cfg.Bandgap == 0 {
		cfg.Bandgap = uint32(p.Bandgap)
	}
	if cfg.Vcc == 0 {
		cfg.Vcc = 5000
	}
	return &Sim{
		cfg:        cfg,
		profile:    p,
		bitDepth:   p.BitDepth,
		accumulate: 1,
	}
}

// Profile implements Backend.
func (s *Sim) Profile() Profile {
	return s.profile
}

// SetVcc changes the simulated supply voltage.
func (s *Sim) SetVcc(mv uint32) {
	s.cfg.Vcc = mv
}

// Mode returns the mode passed to the last Configure call.
func (s *Sim) Mode() Mode {
	return s.mode
}

// BitDepth returns the bit depth passed to the last Configure call.
func (s *Sim) BitDepth() uint8 {
	return s.bitDepth
}

// Configure implements Backend.
func (s *Sim) Configure(mode Mode, bitDepth uint8) {
	s.Configures++
	s.mode = mode
	s.bitDepth = bitDepth
	s.accumulate = 1
	s.shift = 0
	s.settled = false

	w := s.profile.Hardware
	if mode != HardwareOversampled || !s.profile.HardwareOversampling() {
		return
	}
	if bitDepth < w.Min || bitDepth > w.Max {
		return
	}
	extra := bitDepth - s.profile.BitDepth
	s.accumulate = 1 << (2 * extra)
	if bitDepth == w.Default {
		s.shift = extra
	}
}

// Start implements Backend.
func (s *Sim) Start() {
	var sum uint32
	for i := uint32(0); i < s.accumulate; i++ {
		sum += s.sample()
	}
	if !s.settled {
		v := int64(sum) + int64(s.cfg.SettleError)
		if v < 0 {
			v = 0
		}
		sum = uint32(v)
		s.settled = true
	}
	s.result = sum >> s.shift
	s.busy = s.cfg.BusyPolls
	s.Conversions++
}

// Busy implements Backend.
func (s *Sim) Busy() bool {
	if s.busy > 0 {
		s.busy--
		return true
	}
	return false
}

// Result implements Backend.
func (s *Sim) Result() uint32 {
	return s.result
}

// sample returns one native conversion of the bandgap against Vcc.
func (s *Sim) sample() uint32 {
	s.n++
	res := float64(s.profile.Resolution)
	ideal := float64(s.cfg.Bandgap) * res / float64(s.cfg.Vcc)
	if s.cfg.NoiseLSB > 0 {
		k := float64(s.n)
		ideal += (math.Sin(k*0.7) + math.Cos(k*1.3)) * s.cfg.NoiseLSB * 0.5
	}
	switch {
	case ideal < 0:
		return 0
	case ideal > res-1:
		return uint32(res - 1)
	}
	return uint32(ideal)
}
