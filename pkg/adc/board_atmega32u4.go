//go:build avr && (atmega32u4 || atmega16u4)

package adc

const (
	boardName   = "leonardo"
	boardFamily = Generic10Bit

	admuxBandgap = 0b01011110
	adcsrbMux5   = 0b00100000
)
