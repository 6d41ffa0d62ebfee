package wire

import (
	"testing"

	"github.com/itohio/mcuvcc/pkg/adc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetter(t *testing.T) {
	for _, m := range []adc.Mode{adc.Regular, adc.SoftwareOversampled, adc.HardwareOversampled} {
		l, ok := Letter(m)
		require.True(t, ok)
		back, ok := Mode(l)
		require.True(t, ok)
		assert.Equal(t, m, back)
	}

	_, ok := Letter(adc.Mode(3))
	assert.False(t, ok)
	_, ok = Mode('X')
	assert.False(t, ok)
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want Command
		ok   bool
	}{
		{"R,10,8", Command{adc.Regular, 10, 8}, true},
		{"S,14,1", Command{adc.SoftwareOversampled, 14, 1}, true},
		{"H,16,255", Command{adc.HardwareOversampled, 16, 255}, true},
		{"H,16,0", Command{adc.HardwareOversampled, 16, 1}, true},
		{"H,16,256", Command{}, false},
		{"H,300,1", Command{}, false},
		{"X,16,1", Command{}, false},
		{"H16,1", Command{}, false},
		{"H,,1", Command{}, false},
		{"H,16,", Command{}, false},
		{"H,16,1x", Command{}, false},
		{"H,16", Command{}, false},
		{"", Command{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCommand([]byte(tt.in))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppendCommand(t *testing.T) {
	b, ok := AppendCommand(nil, Command{adc.HardwareOversampled, 16, 4})
	require.True(t, ok)
	assert.Equal(t, "H,16,4\n", string(b))

	c, ok := ParseCommand(b[:len(b)-1])
	require.True(t, ok)
	assert.Equal(t, Command{adc.HardwareOversampled, 16, 4}, c)

	_, ok = AppendCommand(nil, Command{Mode: adc.Mode(7)})
	assert.False(t, ok)
}

func TestAppendReport(t *testing.T) {
	b, ok := AppendReport(nil, 1234567890123, adc.SoftwareOversampled, 12, 900, 5006)
	require.True(t, ok)
	assert.Equal(t, "1234567890123,S,12,900,5006", string(b))

	buf := make([]byte, 0, 48)
	b, ok = AppendReport(buf, 0, adc.Regular, 10, 0, 0)
	require.True(t, ok)
	assert.Equal(t, "0,R,10,0,0", string(b))

	_, ok = AppendReport(nil, 0, adc.Mode(5), 10, 0, 0)
	assert.False(t, ok)
}
