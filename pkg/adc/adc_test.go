package adc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMode_String(t *testing.T) {
	assert.Equal(t, "regular", Regular.String())
	assert.Equal(t, "software", SoftwareOversampled.String())
	assert.Equal(t, "hardware", HardwareOversampled.String())
	assert.Equal(t, "mode(7)", Mode(7).String())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"regular", Regular, false},
		{"", Regular, false},
		{"Software", SoftwareOversampled, false},
		{"os", SoftwareOversampled, false},
		{"hardware", HardwareOversampled, false},
		{" hwos ", HardwareOversampled, false},
		{"turbo", Regular, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode_YAML(t *testing.T) {
	var v struct {
		Mode Mode `yaml:"mode"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("mode: hardware\n"), &v))
	assert.Equal(t, HardwareOversampled, v.Mode)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "mode: hardware\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("mode: turbo\n"), &v))
}

func TestParseFamily(t *testing.T) {
	assert.Equal(t, Generic10Bit, ParseFamily("generic-10-bit"))
	assert.Equal(t, ATtiny12Bit, ParseFamily("ATtiny-12-bit"))
	assert.Equal(t, Unknown, ParseFamily("esp32"))
	assert.Equal(t, "unknown", Unknown.String())
}

func TestProfileFor(t *testing.T) {
	p := ProfileFor(Generic10Bit)
	assert.Equal(t, uint8(10), p.BitDepth)
	assert.Equal(t, uint32(1024), p.Resolution)
	assert.Equal(t, uint16(1100), p.Bandgap)
	assert.False(t, p.HardwareOversampling())

	p = ProfileFor(ATtiny12Bit)
	assert.Equal(t, uint8(12), p.BitDepth)
	assert.Equal(t, uint32(4096), p.Resolution)
	assert.Equal(t, uint16(1024), p.Bandgap)
	assert.True(t, p.HardwareOversampling())
	assert.Equal(t, Window{Min: 13, Max: 17, Default: 16}, p.Hardware)

	p = ProfileFor(Unknown)
	assert.Equal(t, Unknown, p.Family)
	assert.Equal(t, uint8(10), p.BitDepth)
	assert.False(t, p.HardwareOversampling())
}

func TestSim_Regular(t *testing.T) {
	s := NewSim(SimConfig{Family: Generic10Bit, Vcc: 5000})
	s.Configure(Regular, 10)

	// 1100 * 1024 / 5000 = 225.28
	assert.Equal(t, uint32(225), Convert(s))
	assert.Equal(t, 1, s.Conversions)
	assert.Equal(t, 1, s.Configures)
	assert.Equal(t, Regular, s.Mode())
}

func TestSim_Defaults(t *testing.T) {
	s := NewSim(SimConfig{})
	assert.Equal(t, Unknown, s.Profile().Family)
	s.Configure(Regular, 10)
	assert.Equal(t, uint32(225), Convert(s))
}

func TestSim_SettleError(t *testing.T) {
	s := NewSim(SimConfig{Family: Generic10Bit, Vcc: 5000, SettleError: 40})
	s.Configure(Regular, 10)

	assert.Equal(t, uint32(265), Convert(s))
	assert.Equal(t, uint32(225), Convert(s))

	s.Configure(Regular, 10)
	assert.Equal(t, uint32(265), Convert(s))
}

func TestSim_BusyPolls(t *testing.T) {
	s := NewSim(SimConfig{Family: Generic10Bit, Vcc: 5000, BusyPolls: 2})
	s.Configure(Regular, 10)
	s.Start()

	assert.True(t, s.Busy())
	assert.True(t, s.Busy())
	assert.False(t, s.Busy())
	assert.Equal(t, uint32(225), s.Result())
}

func TestSim_ClampsToRange(t *testing.T) {
	s := NewSim(SimConfig{Family: Generic10Bit, Vcc: 900})
	s.Configure(Regular, 10)
	assert.Equal(t, uint32(1023), Convert(s))

	s.SetVcc(5000)
	assert.Equal(t, uint32(225), Convert(s))
}

func TestSim_HardwareAccumulation(t *testing.T) {
	// 1024 * 4096 / 3300 = 1271.0
	tests := []struct {
		bitDepth uint8
		want     uint32
	}{
		{13, 4 * 1271},
		{14, 16 * 1271},
		{16, 256 * 1271 >> 4},
		{17, 1024 * 1271},
		{20, 1271},
	}

	for _, tt := range tests {
		s := NewSim(SimConfig{Family: ATtiny12Bit, Vcc: 3300})
		s.Configure(HardwareOversampled, tt.bitDepth)
		assert.Equal(t, tt.want, Convert(s), "bit depth %d", tt.bitDepth)
	}
}

func TestSim_NoAccumulationOnGenericADC(t *testing.T) {
	s := NewSim(SimConfig{Family: Generic10Bit, Vcc: 5000})
	s.Configure(HardwareOversampled, 16)
	assert.Equal(t, uint32(225), Convert(s))
}

func TestSim_Noise(t *testing.T) {
	s := NewSim(SimConfig{Family: Generic10Bit, Vcc: 5000, NoiseLSB: 2})
	s.Configure(Regular, 10)

	seen := map[uint32]bool{}
	for i := 0; i < 64; i++ {
		v := Convert(s)
		assert.InDelta(t, 225, v, 3)
		seen[v] = true
	}
	assert.Greater(t, len(seen), 1)
}
