package monitor

import "github.com/itohio/mcuvcc/pkg/adc"

// Device defines the interface for Vcc reporting devices (real or mocked).
type Device interface {
	Connect() error
	Close() error
	Reports() <-chan Report
	SetMode(mode adc.Mode, bitDepth uint8, avgTimes int) error
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
