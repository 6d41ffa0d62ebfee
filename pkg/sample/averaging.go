package sample

import (
	"github.com/chewxy/math32"
)

// NewAveragingConverter creates a converter that outputs the running average
// of the last windowSize samples for every sample it receives.
func NewAveragingConverter(windowSize int, bufSize int) func(in <-chan Sample) <-chan Sample {
	if windowSize <= 0 {
		windowSize = 1
	}
	if bufSize <= 0 {
		bufSize = 100
	}

	return func(in <-chan Sample) <-chan Sample {
		out := make(chan Sample, bufSize)

		go func() {
			defer close(out)

			buffer := make([]Sample, 0, windowSize+1)
			for s := range in {
				// A mode change makes earlier samples incomparable.
				if n := len(buffer); n > 0 && (buffer[n-1].Mode != s.Mode || buffer[n-1].BitDepth != s.BitDepth) {
					buffer = buffer[:0]
				}

				buffer = append(buffer, s)
				if len(buffer) > windowSize {
					buffer = append(buffer[:0], buffer[1:]...)
				}

				out <- averageSamples(buffer)
			}
		}()

		return out
	}
}

// averageSamples averages a slice of Samples.
// Uses the most recent sample's timestamp and mode.
func averageSamples(samples []Sample) Sample {
	if len(samples) == 0 {
		return Sample{}
	}

	last := samples[len(samples)-1]
	lo, hi := math32.Inf(1), math32.Inf(-1)
	var sum float32
	count := 0

	for _, s := range samples {
		sum += s.Volts
		lo = math32.Min(lo, s.Volts)
		hi = math32.Max(hi, s.Volts)
		count += s.Count
	}

	mean := sum / float32(len(samples))
	return Sample{
		Timestamp: last.Timestamp,
		Mode:      last.Mode,
		BitDepth:  last.BitDepth,
		Volts:     math32.Round(mean*1000) / 1000,
		Ripple:    hi - lo,
		Count:     count,
	}
}
