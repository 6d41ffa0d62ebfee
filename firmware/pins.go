//go:build tinygo && avr

package main

import "github.com/itohio/mcuvcc/pkg/adc"

const (
	// Reading configuration
	REPORT_INTERVAL_MS = 500 // Time between reports in milliseconds
	AVERAGE_SAMPLES    = 8   // Readings averaged per report
	DEFAULT_MODE       = adc.Regular
	DEFAULT_BIT_DEPTH  = 12 // Oversampled bit depth when oversampling is selected

	// Calibrated bandgap in millivolts (0 = device default, 1100 mV)
	BANDGAP_MV = 0

	// Serial configuration
	// Longest line: "1234567890123456,S,17,131071,65535\n" = 36 bytes.
	// Two reports per second need well under 1200 baud.
	UART_BAUD_RATE = 115200
)
