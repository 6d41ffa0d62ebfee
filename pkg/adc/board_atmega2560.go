//go:build avr && (atmega2560 || atmega2561 || atmega1280 || atmega1281 || atmega640)

package adc

const (
	boardName   = "mega"
	boardFamily = Generic10Bit

	admuxBandgap = 0b01011110
	adcsrbMux5   = 0b00001000
)
