// Package wire is the line protocol between the firmware and the host.
//
// The firmware prints one report per line:
//
//	unix_micros,mode,bit_depth,raw,millivolts
//	1234567890123,S,12,900,5006
//
// and accepts mode commands:
//
//	mode,bit_depth,avg_times
//	H,16,4
//
// Functions here do not allocate so the firmware can use them.
package wire

import (
	"strconv"

	"github.com/itohio/mcuvcc/pkg/adc"
)

// MaxCommandLen is the longest valid command line, without the newline.
const MaxCommandLen = len("H,255,255")

// modeLetters maps modes to the letters used on the wire.
var modeLetters = [...]byte{
	adc.Regular:             'R',
	adc.SoftwareOversampled: 'S',
	adc.HardwareOversampled: 'H',
}

// Letter returns the wire letter of a mode.
func Letter(m adc.Mode) (byte, bool) {
	if int(m) >= len(modeLetters) {
		return 0, false
	}
	return modeLetters[m], true
}

// Mode returns the mode of a wire letter.
func Mode(c byte) (adc.Mode, bool) {
	for m, l := range modeLetters {
		if l == c {
			return adc.Mode(m), true
		}
	}
	return adc.Regular, false
}

// Command selects how the firmware reads Vcc.
type Command struct {
	Mode     adc.Mode
	BitDepth uint8
	AvgTimes uint8
}

// ParseCommand parses a command line without its newline.
func ParseCommand(b []byte) (Command, bool) {
	if len(b) < 5 || b[1] != ',' {
		return Command{}, false
	}
	mode, ok := Mode(b[0])
	if !ok {
		return Command{}, false
	}

	bits, rest, ok := parseUint8(b[2:])
	if !ok || len(rest) == 0 || rest[0] != ',' {
		return Command{}, false
	}
	avg, rest, ok := parseUint8(rest[1:])
	if !ok || len(rest) != 0 {
		return Command{}, false
	}
	if avg == 0 {
		avg = 1
	}

	return Command{Mode: mode, BitDepth: bits, AvgTimes: avg}, true
}

// parseUint8 parses leading decimal digits of b.
func parseUint8(b []byte) (uint8, []byte, bool) {
	var v uint16
	i := 0
	for ; i < len(b) && b[i] >= '0' && b[i] <= '9'; i++ {
		v = v*10 + uint16(b[i]-'0')
		if v > 255 {
			return 0, b, false
		}
	}
	if i == 0 {
		return 0, b, false
	}
	return uint8(v), b[i:], true
}

// AppendCommand appends a command line including the newline.
func AppendCommand(dst []byte, c Command) ([]byte, bool) {
	l, ok := Letter(c.Mode)
	if !ok {
		return dst, false
	}
	dst = append(dst, l, ',')
	dst = strconv.AppendUint(dst, uint64(c.BitDepth), 10)
	dst = append(dst, ',')
	dst = strconv.AppendUint(dst, uint64(c.AvgTimes), 10)
	return append(dst, '\n'), true
}

// AppendReport appends a report line without the newline.
func AppendReport(dst []byte, micros int64, mode adc.Mode, bitDepth uint8, raw, mv uint32) ([]byte, bool) {
	l, ok := Letter(mode)
	if !ok {
		return dst, false
	}
	dst = strconv.AppendInt(dst, micros, 10)
	dst = append(dst, ',', l, ',')
	dst = strconv.AppendUint(dst, uint64(bitDepth), 10)
	dst = append(dst, ',')
	dst = strconv.AppendUint(dst, uint64(raw), 10)
	dst = append(dst, ',')
	dst = strconv.AppendUint(dst, uint64(mv), 10)
	return dst, true
}
