package adc

import (
	"fmt"
	"strings"
)

// Mode selects how the ADC is configured for a reading.
type Mode uint8

const (
	// Regular reads at the native resolution of the ADC.
	Regular Mode = iota
	// SoftwareOversampled sums native samples in software and decimates.
	SoftwareOversampled
	// HardwareOversampled lets the ADC accumulate samples on its own.
	HardwareOversampled
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case Regular:
		return "regular"
	case SoftwareOversampled:
		return "software"
	case HardwareOversampled:
		return "hardware"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode parses the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular", "":
		return Regular, nil
	case "software", "os", "sw":
		return SoftwareOversampled, nil
	case "hardware", "hwos", "hw":
		return HardwareOversampled, nil
	}
	return Regular, fmt.Errorf("unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Family tags the kind of ADC the backend drives.
type Family uint8

const (
	// Unknown is any device not recognised at build time. It reads like Generic10Bit.
	Unknown Family = iota
	// Generic10Bit is the classic AVR 10-bit ADC without an accumulator.
	Generic10Bit
	// ATtiny12Bit is the 12-bit ADC of tinyAVR 2-series parts that accumulates in hardware.
	ATtiny12Bit
)

// String returns the config name of the family.
func (f Family) String() string {
	switch f {
	case Generic10Bit:
		return "generic-10-bit"
	case ATtiny12Bit:
		return "attiny-12-bit"
	default:
		return "unknown"
	}
}

// ParseFamily parses the names produced by Family.String.
// Anything unrecognised is Unknown.
func ParseFamily(s string) Family {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic-10-bit", "generic", "10":
		return Generic10Bit
	case "attiny-12-bit", "attiny", "12":
		return ATtiny12Bit
	default:
		return Unknown
	}
}

// Window is the range of bit depths a hardware accumulator can produce.
// Default is the depth the hardware scales to on its own.
type Window struct {
	Min     uint8
	Max     uint8
	Default uint8
}

// Profile holds the immutable facts about the device behind a backend.
type Profile struct {
	Family     Family
	Name       string // board name, e.g. "uno"
	BitDepth   uint8  // native ADC bit depth
	Resolution uint32 // 1 << BitDepth
	Bandgap    uint16 // default bandgap reference, mV

	// Hardware is the zero Window when the ADC cannot accumulate.
	Hardware Window
}

// HardwareOversampling reports whether the device can accumulate samples in hardware.
func (p Profile) HardwareOversampling() bool {
	return p.Hardware.Max != 0
}

var (
	// Generic10BitProfile describes ATmega16u4/32u4, 48/88/168/328 and 640/1280/1281/2560/2561.
	Generic10BitProfile = Profile{
		Family:     Generic10Bit,
		Name:       "generic",
		BitDepth:   10,
		Resolution: 1024,
		Bandgap:    1100,
	}

	// ATtiny12BitProfile describes ATtiny3224/3226/3227, which reads a 1.024V
	// reference with a 12-bit ADC and accumulates up to 1024 samples.
	ATtiny12BitProfile = Profile{
		Family:     ATtiny12Bit,
		Name:       "attiny322x",
		BitDepth:   12,
		Resolution: 4096,
		Bandgap:    1024,
		Hardware:   Window{Min: 13, Max: 17, Default: 16},
	}
)

// ProfileFor returns the profile of a family. Unknown devices use the
// generic 10-bit constants with no hardware accumulation.
func ProfileFor(f Family) Profile {
	switch f {
	case ATtiny12Bit:
		return ATtiny12BitProfile
	case Generic10Bit:
		return Generic10BitProfile
	default:
		p := Generic10BitProfile
		p.Family = Unknown
		p.Name = "unknown"
		return p
	}
}

// Backend drives one ADC that measures the bandgap reference against the
// supply rail.
type Backend interface {
	// Profile returns the facts about the device. It must not change.
	Profile() Profile
	// Configure selects the bandgap input against Vcc, accumulation depth and
	// result adjustment for mode. Calling it again with the same arguments is harmless.
	Configure(mode Mode, bitDepth uint8)
	// Start triggers one conversion.
	Start()
	// Busy reports whether the conversion started last is still running.
	Busy() bool
	// Result returns the value of the last finished conversion.
	Result() uint32
}

// Convert starts a conversion and spins until the backend is done.
// There is no timeout: a backend that stays busy hangs the caller.
func Convert(b Backend) uint32 {
	b.Start()
	for b.Busy() {
	}
	return b.Result()
}
