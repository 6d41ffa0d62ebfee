package monitor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/itohio/mcuvcc/pkg/adc"
	"github.com/itohio/mcuvcc/pkg/wire"
)

// Report is one Vcc reading sent by the firmware.
type Report struct {
	Timestamp  time.Time
	Mode       adc.Mode
	BitDepth   uint8  // Bit depth of Raw
	Raw        uint32 // Raw (decimated, averaged) ADC value
	Millivolts uint32 // Supply voltage; zero when the reading failed
}

// FormatReport formats a report as the firmware prints it, without the newline.
func FormatReport(r Report) (string, error) {
	b, ok := wire.AppendReport(nil, r.Timestamp.UnixMicro(), r.Mode, r.BitDepth, r.Raw, r.Millivolts)
	if !ok {
		return "", fmt.Errorf("invalid mode: %d", r.Mode)
	}
	return string(b), nil
}

// parseLine parses a line from the MCU into a Report.
// Format: unix_micros,mode,bit_depth,raw,millivolts
// Example: 1234567890123,S,12,900,5006
func parseLine(line string) (Report, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 5 {
		return Report{}, fmt.Errorf("invalid line format: expected 5 comma-separated values, got %d", len(parts))
	}

	timestampMicros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Report{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	if len(parts[1]) != 1 {
		return Report{}, fmt.Errorf("invalid mode: %q", parts[1])
	}
	mode, ok := wire.Mode(parts[1][0])
	if !ok {
		return Report{}, fmt.Errorf("invalid mode: %q", parts[1])
	}

	bitDepth, err := strconv.ParseUint(parts[2], 10, 8)
	if err != nil {
		return Report{}, fmt.Errorf("invalid bit depth: %w", err)
	}
	if bitDepth == 0 || bitDepth > 32 {
		return Report{}, fmt.Errorf("bit depth out of range: %d", bitDepth)
	}

	raw, err := strconv.ParseUint(parts[3], 10, 32)
	if err != nil {
		return Report{}, fmt.Errorf("invalid raw reading: %w", err)
	}
	if bitDepth < 32 && raw >= 1<<bitDepth {
		return Report{}, fmt.Errorf("raw reading out of range: %d (max %d)", raw, uint64(1)<<bitDepth-1)
	}

	mv, err := strconv.ParseUint(parts[4], 10, 32)
	if err != nil {
		return Report{}, fmt.Errorf("invalid millivolts: %w", err)
	}

	return Report{
		Timestamp:  time.UnixMicro(timestampMicros),
		Mode:       mode,
		BitDepth:   uint8(bitDepth),
		Raw:        uint32(raw),
		Millivolts: uint32(mv),
	}, nil
}

// formatCommand builds the mode selection command understood by the firmware.
func formatCommand(mode adc.Mode, bitDepth uint8, avgTimes int) (string, error) {
	if avgTimes < 1 {
		avgTimes = 1
	}
	if avgTimes > 255 {
		return "", fmt.Errorf("average count out of range: %d (max 255)", avgTimes)
	}
	b, ok := wire.AppendCommand(nil, wire.Command{Mode: mode, BitDepth: bitDepth, AvgTimes: uint8(avgTimes)})
	if !ok {
		return "", fmt.Errorf("invalid mode: %d", mode)
	}
	return string(b), nil
}
