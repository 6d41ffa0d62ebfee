package monitor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/itohio/mcuvcc/pkg/adc"
	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

const (
	// DefaultBaudRate matches the firmware UART.
	DefaultBaudRate = 115200
	// DefaultBufferSize is the default size for the reports channel buffer.
	DefaultBufferSize = 100
)

var (
	ErrAlreadyConnected = errors.New("already connected")
	ErrNotConnected     = errors.New("not connected")
)

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial reads Vcc reports from the MCU firmware over a serial port.
type Serial struct {
	port     string
	baudRate int
	bufSize  int
	logger   zerolog.Logger

	// conn, reports and cancel are replaced by every Connect.
	conn      serial.Port
	reports   chan Report
	mu        sync.RWMutex
	cancel    context.CancelFunc
	connected bool
}

// New creates a new Serial device with the specified port, baud rate, and buffer size.
func New(port string, baudRate int, bufSize int, logger zerolog.Logger) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	return &Serial{
		port:     port,
		baudRate: baudRate,
		bufSize:  bufSize,
		logger:   logger.With().Str("port", port).Logger(),
		reports:  make(chan Report, bufSize),
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port and starts reading reports into a new
// reports channel. A closed device can be connected again.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return ErrAlreadyConnected
	}

	port, err := serial.Open(d.port, &serial.Mode{BaudRate: d.baudRate})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.conn = port
	d.cancel = cancel
	d.reports = make(chan Report, d.bufSize)
	d.connected = true
	d.logger.Info().Int("baud_rate", d.baudRate).Msg("connected")

	go d.readReports(ctx, port, d.reports)

	return nil
}

// Close closes the connection and stops reading reports.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	d.cancel()

	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			d.logger.Error().Err(err).Msg("error closing serial port")
		}
		d.conn = nil
	}

	d.connected = false

	return nil
}

// Reports returns the channel of the current connection. It is closed once
// the reader stops.
func (d *Serial) Reports() <-chan Report {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.reports
}

// SetMode asks the firmware to read in another mode.
func (d *Serial) SetMode(mode adc.Mode, bitDepth uint8, avgTimes int) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return ErrNotConnected
	}

	cmd, err := formatCommand(mode, bitDepth, avgTimes)
	if err != nil {
		return err
	}

	if _, err := d.conn.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("failed to send mode command: %w", err)
	}

	d.logger.Debug().Stringer("mode", mode).Uint8("bit_depth", bitDepth).Int("avg", avgTimes).Msg("mode command sent")
	return nil
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readReports reads lines from r into out until r fails or ctx is cancelled.
func (d *Serial) readReports(ctx context.Context, r io.Reader, out chan<- Report) {
	defer close(out)
	defer func() {
		if p := recover(); p != nil {
			d.logger.Error().Interface("panic", p).Msg("panic in readReports")
		}
	}()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		report, err := parseLine(line)
		if err != nil {
			d.logger.Warn().Err(err).Str("line", line).Msg("failed to parse line")
			continue
		}

		select {
		case out <- report:
		case <-ctx.Done():
			return
		default:
			d.logger.Warn().Msg("reports channel full, dropping report")
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		d.logger.Error().Err(err).Msg("error reading from serial port")
	}
}
