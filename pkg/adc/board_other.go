//go:build avr && !(atmega328p || atmega328pb || atmega328 || atmega32u4 || atmega16u4 || atmega2560 || atmega2561 || atmega1280 || atmega1281 || atmega640)

package adc

// Assume an ATmega48/88/168 style mux.
const (
	boardName   = "unknown"
	boardFamily = Unknown

	admuxBandgap = 0b01001110
	adcsrbMux5   = 0
)
