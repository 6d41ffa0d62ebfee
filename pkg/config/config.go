package config

import (
	"fmt"
	"os"
	"time"

	"github.com/itohio/mcuvcc/pkg/adc"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	Meter  MeterConfig  `yaml:"meter"`
	Mock   MockConfig   `yaml:"mock"`
	Log    LogConfig    `yaml:"log"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// MeterConfig selects how Vcc is read.
type MeterConfig struct {
	Bandgap        uint16   `yaml:"bandgap_mv"`      // Calibrated bandgap (0 = device default)
	Mode           adc.Mode `yaml:"mode"`            // regular, software or hardware
	BitDepth       uint8    `yaml:"bit_depth"`       // Oversampled bit depth
	AverageSamples int      `yaml:"average_samples"` // Readings averaged per report
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	Family      string        `yaml:"family"`       // generic-10-bit or attiny-12-bit
	Vcc         uint32        `yaml:"vcc_mv"`       // Simulated supply (mV)
	Bandgap     uint32        `yaml:"bandgap_mv"`   // True bandgap of the simulated chip (mV, 0 = nominal)
	NoiseLSB    float64       `yaml:"noise_lsb"`    // Peak noise per conversion (LSB)
	BusyPolls   int           `yaml:"busy_polls"`   // Busy polls per conversion
	SettleError int32         `yaml:"settle_error"` // Error of the first conversion after configuring (LSB)
	SampleRate  time.Duration `yaml:"sample_rate"`  // Time between reports
}

// LogConfig contains logging configuration.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			BaudRate: 115200,
		},
		Meter: MeterConfig{
			Bandgap:        0,
			Mode:           adc.Regular,
			BitDepth:       12,
			AverageSamples: 8,
		},
		Mock: MockConfig{
			Family:      adc.Generic10Bit.String(),
			Vcc:         5000,
			NoiseLSB:    1.0,
			BusyPolls:   0,
			SettleError: 40,
			SampleRate:  500 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults fills fields that were left empty.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Meter.BitDepth == 0 {
		c.Meter.BitDepth = def.Meter.BitDepth
	}
	if c.Meter.AverageSamples < 1 {
		c.Meter.AverageSamples = 1
	}

	if c.Mock.Family == "" {
		c.Mock.Family = def.Mock.Family
	}
	if c.Mock.Vcc == 0 {
		c.Mock.Vcc = def.Mock.Vcc
	}
	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
