//go:build avr && (atmega328p || atmega328pb || atmega328)

package adc

const (
	boardName   = "uno"
	boardFamily = Generic10Bit

	admuxBandgap = 0b01001110
	adcsrbMux5   = 0
)
