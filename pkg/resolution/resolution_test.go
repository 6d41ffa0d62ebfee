package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var attiny = Limits{Min: 13, Max: 17, Default: 16}

func TestPow(t *testing.T) {
	tests := []struct {
		base, exp uint8
		want      uint64
	}{
		{2, 0, 1},
		{2, 10, 1024},
		{2, 17, 131072},
		{4, 0, 1},
		{4, 2, 16},
		{4, 4, 256},
		{4, 7, 16384},
		{2, 40, 1 << 40},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Pow(tt.base, tt.exp), "%d^%d", tt.base, tt.exp)
	}
}

func TestSoftware(t *testing.T) {
	tests := []struct {
		name   string
		target uint8
		native uint8
		want   Plan
	}{
		{
			name:   "12 bits on 10-bit ADC",
			target: 12,
			native: 10,
			want:   Plan{BitDepth: 12, Resolution: 4096, ExtraBits: 2, SampleCount: 16},
		},
		{
			name:   "14 bits on 10-bit ADC",
			target: 14,
			native: 10,
			want:   Plan{BitDepth: 14, Resolution: 16384, ExtraBits: 4, SampleCount: 256},
		},
		{
			name:   "target equal to native is raised",
			target: 10,
			native: 10,
			want:   Plan{BitDepth: 11, Resolution: 2048, ExtraBits: 1, SampleCount: 4},
		},
		{
			name:   "zero target is raised",
			target: 0,
			native: 12,
			want:   Plan{BitDepth: 13, Resolution: 8192, ExtraBits: 1, SampleCount: 4},
		},
		{
			name:   "17 bits on 10-bit ADC",
			target: 17,
			native: 10,
			want:   Plan{BitDepth: 17, Resolution: 131072, ExtraBits: 7, SampleCount: 16384},
		},
		{
			name:   "capped above 17 bits",
			target: 24,
			native: 10,
			want:   Plan{BitDepth: 17, Resolution: 131072, ExtraBits: 7, SampleCount: 16384},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Software(tt.target, tt.native))
		})
	}
}

func TestHardware(t *testing.T) {
	tests := []struct {
		name   string
		target uint8
		want   Plan
	}{
		{"min", 13, Plan{BitDepth: 13, Resolution: 8192, ExtraBits: 1, SampleCount: 4}},
		{"default", 16, Plan{BitDepth: 16, Resolution: 65536, ExtraBits: 4, SampleCount: 256}},
		{"max", 17, Plan{BitDepth: 17, Resolution: 131072, ExtraBits: 5, SampleCount: 1024}},
		{"below min", 12, Plan{BitDepth: 16, Resolution: 65536, ExtraBits: 4, SampleCount: 256}},
		{"above max", 20, Plan{BitDepth: 16, Resolution: 65536, ExtraBits: 4, SampleCount: 256}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hardware(tt.target, 12, attiny))
		})
	}
}

func TestHardware_ClampMatchesDefault(t *testing.T) {
	assert.Equal(t, Hardware(attiny.Default, 12, attiny), Hardware(20, 12, attiny))
}

func TestPlanInvariants(t *testing.T) {
	for _, native := range []uint8{10, 12} {
		for target := uint8(0); target <= 20; target++ {
			p := Software(target, native)
			assert.Equal(t, uint32(1)<<p.BitDepth, p.Resolution)
			assert.Equal(t, p.BitDepth-native, p.ExtraBits)
			assert.Greater(t, p.BitDepth, native)
			assert.Equal(t, uint32(1)<<(2*p.ExtraBits), p.SampleCount)
		}
	}
}

func TestNative(t *testing.T) {
	assert.Equal(t, Plan{BitDepth: 10, Resolution: 1024, ExtraBits: 0, SampleCount: 1}, Native(10))
	assert.Equal(t, Plan{BitDepth: 12, Resolution: 4096, ExtraBits: 0, SampleCount: 1}, Native(12))
}
