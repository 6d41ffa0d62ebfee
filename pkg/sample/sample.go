package sample

import (
	"time"

	"github.com/itohio/mcuvcc/pkg/adc"
	"github.com/itohio/mcuvcc/pkg/convert"
	"github.com/itohio/mcuvcc/pkg/monitor"
)

// Sample represents a Vcc measurement in physical units.
type Sample struct {
	Timestamp time.Time
	Mode      adc.Mode
	BitDepth  uint8
	Volts     float32 // Supply voltage (V)
	Ripple    float32 // Peak to peak over the averaging window (V)
	Count     int     // Reports behind this sample
}

// Converter is a function type that converts a Report channel to a Sample channel.
type Converter func(in <-chan monitor.Report) <-chan Sample

// NewConverter creates a converter that turns each valid Report into a Sample.
// Reports of failed readings are dropped.
func NewConverter(bufSize int) Converter {
	if bufSize <= 0 {
		bufSize = 100
	}

	return func(in <-chan monitor.Report) <-chan Sample {
		out := make(chan Sample, bufSize)

		go func() {
			defer close(out)

			for r := range in {
				s, ok := convertReport(r)
				if !ok {
					continue
				}

				select {
				case out <- s:
				case <-time.After(time.Second):
				}
			}
		}()

		return out
	}
}

// convertReport converts a Report to a Sample.
func convertReport(r monitor.Report) (Sample, bool) {
	if r.Millivolts == 0 {
		return Sample{}, false
	}
	return Sample{
		Timestamp: r.Timestamp,
		Mode:      r.Mode,
		BitDepth:  r.BitDepth,
		Volts:     convert.Volts(r.Millivolts),
		Count:     1,
	}, true
}
