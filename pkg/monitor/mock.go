package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/itohio/mcuvcc/pkg/adc"
	"github.com/itohio/mcuvcc/pkg/config"
	"github.com/itohio/mcuvcc/pkg/vcc"
	"github.com/rs/zerolog"
)

// Mock runs the Vcc meter against a simulated ADC on the host, producing the
// same reports the firmware would.
type Mock struct {
	cfg    *config.MockConfig
	logger zerolog.Logger

	// reports, cancel and done are replaced by every Connect.
	reports   chan Report
	mu        sync.RWMutex
	cancel    context.CancelFunc
	connected bool
	done      chan struct{}

	// Read settings
	mode     adc.Mode
	bitDepth uint8
	avgTimes int

	sim   *adc.Sim
	meter *vcc.Meter
}

// NewMock creates a new mocked device instance.
func NewMock(cfg *config.MockConfig, meterCfg *config.MeterConfig, logger zerolog.Logger) *Mock {
	def := config.Default()
	if cfg == nil {
		cfg = &def.Mock
	}
	if meterCfg == nil {
		meterCfg = &def.Meter
	}
	if cfg.SampleRate <= 0 {
		c := *cfg
		c.SampleRate = def.Mock.SampleRate
		cfg = &c
	}

	sim := adc.NewSim(adc.SimConfig{
		Family:      adc.ParseFamily(cfg.Family),
		Vcc:         cfg.Vcc,
		Bandgap:     cfg.Bandgap,
		NoiseLSB:    cfg.NoiseLSB,
		BusyPolls:   cfg.BusyPolls,
		SettleError: cfg.SettleError,
	})

	return &Mock{
		cfg:      cfg,
		logger:   logger.With().Str("device", "mock").Logger(),
		reports:  make(chan Report, DefaultBufferSize),
		mode:     meterCfg.Mode,
		bitDepth: meterCfg.BitDepth,
		avgTimes: meterCfg.AverageSamples,
		sim:      sim,
		meter:    vcc.NewWithBandgap(sim, meterCfg.Bandgap),
	}
}

// Connect starts generating reports on a new reports channel. A closed mock
// can be connected again.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return ErrAlreadyConnected
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.reports = make(chan Report, DefaultBufferSize)
	m.done = make(chan struct{})
	m.connected = true

	p := m.meter.Profile()
	m.logger.Info().
		Stringer("family", p.Family).
		Uint8("bit_depth", p.BitDepth).
		Uint16("bandgap", m.meter.Bandgap()).
		Msg("connected")

	go m.generateReports(ctx, m.reports, m.done)

	return nil
}

// Close stops the mocked device and waits for the reports channel to close.
func (m *Mock) Close() error {
	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		return nil
	}
	m.cancel()
	m.connected = false
	done := m.done
	m.mu.Unlock()

	<-done
	return nil
}

// Reports returns the channel of the current connection. It is closed by Close.
func (m *Mock) Reports() <-chan Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reports
}

// SetMode changes how the following readings are taken.
func (m *Mock) SetMode(mode adc.Mode, bitDepth uint8, avgTimes int) error {
	if _, err := formatCommand(mode, bitDepth, avgTimes); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return ErrNotConnected
	}

	m.mode = mode
	m.bitDepth = bitDepth
	m.avgTimes = avgTimes

	return nil
}

// SetVcc changes the simulated supply voltage.
func (m *Mock) SetVcc(mv uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sim.SetVcc(mv)
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// generateReports takes a reading on every tick.
func (m *Mock) generateReports(ctx context.Context, reports chan<- Report, done chan<- struct{}) {
	defer close(done)
	defer close(reports)

	ticker := time.NewTicker(m.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report := m.generateReport()
			select {
			case reports <- report:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip
			}
		}
	}
}

// generateReport takes one reading. The meter is only used from here.
func (m *Mock) generateReport() Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	mv, err := m.meter.Measure(m.mode, m.bitDepth, m.avgTimes)
	if err != nil {
		m.logger.Warn().Err(err).Msg("reading failed")
	}

	return Report{
		Timestamp:  time.Now(),
		Mode:       m.meter.Mode(),
		BitDepth:   m.meter.Plan().BitDepth,
		Raw:        m.meter.LastADCReading(),
		Millivolts: mv,
	}
}
