package condition

import (
	"fmt"

	"github.com/cwbudde/algo-ligo/dsp/core"
	"github.com/cwbudde/algo-ligo/dsp/filter/biquad"
	"github.com/cwbudde/algo-ligo/dsp/filter/design"
)

// Bandpass keeps the band [loHz, hiHz] of x with a Butterworth high-pass at
// loHz followed by a Butterworth low-pass at hiHz, each with order poles.
// The cascade runs forward and then backward, so the result has no phase
// shift and twice the attenuation in dB of a single pass. The ends are
// padded by odd reflection to reduce start-up transients.
//
// The output has the same length as x.
func Bandpass(x []float64, loHz, hiHz, sampleRate float64, order int) ([]float64, error) {
	n := len(x)
	if n < 2 {
		return nil, fmt.Errorf("%w: bandpass needs at least 2 samples, got %d", ErrNumericalPrecondition, n)
	}
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: bandpass sample rate must be > 0: %v", ErrNumericalPrecondition, sampleRate)
	}
	if !(loHz > 0) || !(hiHz > loHz) || !(hiHz < sampleRate/2) {
		return nil, fmt.Errorf("%w: band [%v, %v] Hz must satisfy 0 < lo < hi < %v",
			ErrNumericalPrecondition, loHz, hiHz, sampleRate/2)
	}
	if order < 1 {
		return nil, fmt.Errorf("%w: bandpass order must be >= 1: %d", ErrNumericalPrecondition, order)
	}

	sections := design.ButterworthHP(loHz, order, sampleRate)
	sections = append(sections, design.ButterworthLP(hiHz, order, sampleRate)...)
	chain := biquad.NewChain(sections)

	pad := min(3*(2*order+1), n-1)
	buf := reflectPad(x, pad)

	for range 2 {
		chain.Reset()
		chain.ProcessBlock(buf)
		reverse(buf)
	}

	return append([]float64(nil), buf[pad:pad+n]...), nil
}

// reflectPad extends x by pad samples on each side with its odd reflection
// about the end points.
func reflectPad(x []float64, pad int) []float64 {
	n := len(x)
	out := make([]float64, n+2*pad)
	copy(out[pad:], x)
	for i := 1; i <= pad; i++ {
		out[pad-i] = 2*x[0] - x[i]
		out[pad+n-1+i] = 2*x[n-1] - x[n-1-i]
	}
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
