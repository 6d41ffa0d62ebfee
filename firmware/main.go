//go:build tinygo && avr

//go:generate tinygo flash -target=arduino

package main

import (
	"machine"
	"time"

	"github.com/itohio/mcuvcc/pkg/adc"
	"github.com/itohio/mcuvcc/pkg/vcc"
	"github.com/itohio/mcuvcc/pkg/wire"
)

var (
	uart  = machine.UART0
	meter *vcc.Meter

	// Read settings, changed by commands from the host
	mode     adc.Mode = DEFAULT_MODE
	bitDepth uint8    = DEFAULT_BIT_DEPTH
	avgTimes uint8    = AVERAGE_SAMPLES

	// Timing
	lastReport time.Time

	// Serial buffer for reading command lines
	serialBuffer [wire.MaxCommandLen]byte
	serialPos    int
	overflow     bool

	// Output buffer for report lines
	lineBuffer [48]byte
)

func main() {
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	meter = vcc.NewWithBandgap(adc.NewATmega(), BANDGAP_MV)

	lastReport = time.Now()

	for {
		now := time.Now()

		// Check for serial input (non-blocking)
		processSerial()

		if now.Sub(lastReport) >= time.Duration(REPORT_INTERVAL_MS)*time.Millisecond {
			report(now)
			lastReport = now
		}

		time.Sleep(time.Millisecond)
	}
}

// report takes one reading and prints it.
// A failed reading is reported with zero millivolts.
func report(now time.Time) {
	mv, err := meter.Measure(mode, bitDepth, int(avgTimes))
	if err != nil {
		mv = 0
	}

	line, ok := wire.AppendReport(lineBuffer[:0], now.UnixNano()/1000, meter.Mode(), meter.Plan().BitDepth, meter.LastADCReading(), mv)
	if !ok {
		return
	}
	line = append(line, '\n')
	uart.Write(line)
}

func processSerial() {
	for uart.Buffered() > 0 {
		data, err := uart.ReadByte()
		if err != nil {
			break
		}

		if data == '\n' || data == '\r' {
			if serialPos > 0 && !overflow {
				applyCommand(serialBuffer[:serialPos])
			}
			serialPos = 0
			overflow = false
			continue
		}

		if data == ' ' || data == '\t' {
			continue
		}

		// Drop the line if it is longer than any valid command
		if serialPos == len(serialBuffer) {
			overflow = true
			continue
		}
		serialBuffer[serialPos] = data
		serialPos++
	}
}

func applyCommand(b []byte) {
	cmd, ok := wire.ParseCommand(b)
	if !ok {
		return
	}
	mode = cmd.Mode
	bitDepth = cmd.BitDepth
	avgTimes = cmd.AvgTimes
}
