package condition

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ligo/dsp/core"
	"github.com/cwbudde/algo-ligo/internal/fft"
)

// Shift moves the spectrum of strain up by shiftHz for audibility.
//
// The one-sided spectrum (m = N/2+1 bins, resolution sampleRate/N) is
// rotated circularly by nbins = trunc(shiftHz/df) bins, and the nbins
// positions that wrapped around are zeroed. For a positive shift those are
// the lowest bins; for a negative shift the rotation runs downward and the
// highest |nbins| bins are zeroed. The transform is lossy and is not a
// physical frequency translation.
//
// The result has length 2*(m-1), so odd-length input loses one sample.
// A shift of m or more bins yields silence rather than an error.
func Shift(strain []float64, shiftHz, sampleRate float64) ([]float64, error) {
	n := len(strain)
	if n < 2 {
		return nil, fmt.Errorf("%w: shift needs at least 2 samples, got %d", ErrNumericalPrecondition, n)
	}
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: shift sample rate must be > 0: %v", ErrNumericalPrecondition, sampleRate)
	}
	if !core.IsFinite(shiftHz) {
		return nil, fmt.Errorf("%w: shift amount is %v", ErrNumericalPrecondition, shiftHz)
	}

	x, err := fft.Forward(strain)
	if err != nil {
		return nil, fmt.Errorf("condition: shift: %w", err)
	}

	m := len(x)
	outLen := 2 * (m - 1)

	df := sampleRate / float64(n)
	nbins := int(math.Trunc(shiftHz / df))

	y := RotateBins(x, nbins)

	out, err := fft.Inverse(y, outLen)
	if err != nil {
		return nil, fmt.Errorf("condition: shift: %w", err)
	}
	return out, nil
}

// RotateBins returns bins rotated by nbins positions with the wrapped-in
// positions zeroed: out[k] = bins[k-nbins] for k-nbins inside the slice and
// 0 otherwise. |nbins| >= len(bins) yields all zeros.
func RotateBins(bins []complex128, nbins int) []complex128 {
	m := len(bins)
	out := make([]complex128, m)
	if nbins >= m || -nbins >= m {
		return out
	}

	for k := range out {
		src := k - nbins
		if src < 0 || src >= m {
			continue
		}
		out[k] = bins[src]
	}
	return out
}
