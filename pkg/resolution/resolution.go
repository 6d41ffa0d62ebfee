// Package resolution derives the parameters of an oversampled reading.
//
// Every extra bit over the native ADC depth needs four times as many native
// samples: a reading at bitDepth b on an n-bit ADC sums 4^(b-n) samples and
// shifts the sum right by b-n.
package resolution

// MaxSoftwareBitDepth caps software oversampling. 4^7 samples of a 10-bit
// ADC already take several hundred milliseconds on an AVR.
const MaxSoftwareBitDepth = 17

// Plan holds the derived parameters of an oversampled reading.
type Plan struct {
	BitDepth    uint8
	Resolution  uint32 // 2^BitDepth
	ExtraBits   uint8  // BitDepth - native bit depth
	SampleCount uint32 // 4^ExtraBits native samples per reading
}

// Limits is the range of target depths a hardware accumulator accepts and
// the depth substituted for anything outside it.
type Limits struct {
	Min     uint8
	Max     uint8
	Default uint8
}

// Software plans a software oversampled reading. Targets at or below the
// native depth are raised to one bit above it.
func Software(target, native uint8) Plan {
	bd := target
	if bd <= native {
		bd = native + 1
	}
	if bd > MaxSoftwareBitDepth && native < MaxSoftwareBitDepth {
		bd = MaxSoftwareBitDepth
	}
	return build(bd, native)
}

// Hardware plans a hardware oversampled reading. Targets outside
// [lim.Min, lim.Max] silently become lim.Default.
func Hardware(target, native uint8, lim Limits) Plan {
	bd := target
	if bd < lim.Min || bd > lim.Max {
		bd = lim.Default
	}
	if bd < native {
		bd = native
	}
	return build(bd, native)
}

// Native plans a regular reading.
func Native(native uint8) Plan {
	return build(native, native)
}

func build(bd, native uint8) Plan {
	extra := bd - native
	return Plan{
		BitDepth:    bd,
		Resolution:  uint32(Pow(2, bd)),
		ExtraBits:   extra,
		SampleCount: uint32(Pow(4, extra)),
	}
}

// Pow computes base^exponent with integer multiplication only.
func Pow(base, exponent uint8) uint64 {
	result := uint64(1)
	for i := uint8(0); i < exponent; i++ {
		result *= uint64(base)
	}
	return result
}
