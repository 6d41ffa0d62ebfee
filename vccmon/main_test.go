package main

import (
	"context"
	"testing"
	"time"

	"github.com/itohio/mcuvcc/pkg/adc"
	"github.com/itohio/mcuvcc/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, applyFlags(cfg, "/dev/ttyUSB0", "hardware", 16, 4))
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, adc.HardwareOversampled, cfg.Meter.Mode)
	assert.Equal(t, uint8(16), cfg.Meter.BitDepth)
	assert.Equal(t, 4, cfg.Meter.AverageSamples)

	require.NoError(t, applyFlags(cfg, "", "", 0, 0))
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, adc.HardwareOversampled, cfg.Meter.Mode)

	assert.Error(t, applyFlags(cfg, "", "turbo", 0, 0))
	assert.Error(t, applyFlags(cfg, "", "", 40, 0))
}

func TestRun_Mock(t *testing.T) {
	cfg := config.Default()
	cfg.Mock.SampleRate = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.NoError(t, run(ctx, cfg, true, 3, zerolog.Nop()))
}
