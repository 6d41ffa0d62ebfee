package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/itohio/mcuvcc/pkg/adc"
	"github.com/itohio/mcuvcc/pkg/config"
	"github.com/itohio/mcuvcc/pkg/monitor"
	"github.com/itohio/mcuvcc/pkg/sample"
	"github.com/rs/zerolog"
)

func main() {
	var (
		portFlag           = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag         = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag           = flag.Bool("mock", false, "Use simulated device instead of serial port")
		modeFlag           = flag.String("mode", "", "Read mode override: regular, software or hardware")
		bitsFlag           = flag.Int("bits", 0, "Oversampled bit depth override")
		averageSamplesFlag = flag.Int("average-samples", 0, "Readings averaged by the device (overrides config)")
		windowFlag         = flag.Int("window", 1, "Reports averaged on the host")
		listFlag           = flag.Bool("list", false, "List serial ports and exit")
		saveFlag           = flag.Bool("save", false, "Save the effective configuration and exit")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *listFlag {
		if err := listPorts(); err != nil {
			logger.Fatal().Err(err).Msg("failed to list ports")
		}
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := applyFlags(cfg, *portFlag, *modeFlag, *bitsFlag, *averageSamplesFlag); err != nil {
		logger.Fatal().Err(err).Msg("invalid flags")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Fatal().Err(err).Str("level", cfg.Log.Level).Msg("invalid log level")
	}
	logger = logger.Level(level)

	if *saveFlag {
		if err := cfg.Save(*configFlag); err != nil {
			logger.Fatal().Err(err).Msg("failed to save configuration")
		}
		logger.Info().Str("path", *configFlag).Msg("configuration saved")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *mockFlag, *windowFlag, logger); err != nil {
		logger.Fatal().Err(err).Msg("monitor stopped")
	}
}

// applyFlags overrides configuration values set on the command line.
func applyFlags(cfg *config.Config, port, mode string, bits, avg int) error {
	if port != "" {
		cfg.Serial.Port = port
	}
	if mode != "" {
		m, err := adc.ParseMode(mode)
		if err != nil {
			return err
		}
		cfg.Meter.Mode = m
	}
	if bits > 0 {
		if bits > 32 {
			return fmt.Errorf("bit depth out of range: %d", bits)
		}
		cfg.Meter.BitDepth = uint8(bits)
	}
	if avg > 0 {
		cfg.Meter.AverageSamples = avg
	}
	return nil
}

func listPorts() error {
	ports, err := monitor.Ports()
	if err != nil {
		return err
	}
	for _, p := range ports {
		fmt.Println(p.Name)
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, useMock bool, window int, logger zerolog.Logger) error {
	var device monitor.Device
	if useMock {
		device = monitor.NewMock(&cfg.Mock, &cfg.Meter, logger)
	} else {
		device = monitor.New(cfg.Serial.Port, cfg.Serial.BaudRate, monitor.DefaultBufferSize, logger)
	}

	if err := device.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer device.Close()

	if err := device.SetMode(cfg.Meter.Mode, cfg.Meter.BitDepth, cfg.Meter.AverageSamples); err != nil {
		return fmt.Errorf("failed to set mode: %w", err)
	}

	samples := sample.NewAveragingConverter(window, 0)(sample.NewConverter(0)(device.Reports()))

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			return nil
		case s, ok := <-samples:
			if !ok {
				return fmt.Errorf("device closed the report stream")
			}
			logger.Info().
				Stringer("mode", s.Mode).
				Uint8("bits", s.BitDepth).
				Float32("vcc", s.Volts).
				Float32("ripple", s.Ripple).
				Int("n", s.Count).
				Msg("reading")
		}
	}
}
