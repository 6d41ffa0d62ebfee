//go:build avr

package adc

import "device/avr"

// ATmega drives the 10-bit successive approximation ADC of classic AVR
// parts, reading the 1.1V bandgap against AVcc.
type ATmega struct {
	profile Profile
}

var _ Backend = (*ATmega)(nil)

// NewATmega returns the backend for the chip the firmware is built for.
func NewATmega() *ATmega {
	p := ProfileFor(boardFamily)
	p.Name = boardName
	return &ATmega{profile: p}
}

// Profile implements Backend.
func (a *ATmega) Profile() Profile {
	return a.profile
}

// Configure implements Backend. The classic ADC has no accumulator, so every
// mode programs the same single conversion.
func (a *ATmega) Configure(mode Mode, bitDepth uint8) {
	// AVcc reference, bandgap input, right adjusted.
	avr.ADMUX.Set(admuxBandgap)
	if adcsrbMux5 != 0 {
		avr.ADCSRB.ClearBits(adcsrbMux5)
	}

	// Enable, leave prescaler and interrupt bits alone, no auto trigger.
	avr.ADCSRA.SetBits(avr.ADCSRA_ADEN)
	avr.ADCSRA.ClearBits(avr.ADCSRA_ADATE)
}

// Start implements Backend.
func (a *ATmega) Start() {
	avr.ADCSRA.SetBits(avr.ADCSRA_ADSC)
}

// Busy implements Backend. ADSC reads as one until the conversion is done.
func (a *ATmega) Busy() bool {
	return avr.ADCSRA.HasBits(avr.ADCSRA_ADSC)
}

// Result implements Backend. ADCL must be read before ADCH.
func (a *ATmega) Result() uint32 {
	low := uint32(avr.ADCL.Get())
	high := uint32(avr.ADCH.Get())
	return high<<8 | low
}
