package condition

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ligo/dsp/core"
	"github.com/cwbudde/algo-ligo/dsp/psd"
	"github.com/cwbudde/algo-ligo/internal/fft"
)

// boundTolerance absorbs rounding in k/(N*dt) at the Nyquist bin when the
// estimator's domain was computed with a different segment length.
const boundTolerance = 1e-9

// Whiten divides the one-sided spectrum of strain by sqrt(psd(f)) and scales
// by 1/sqrt(1/(2*dt)), so stationary noise described by est comes out with
// roughly unit variance. Bin k is evaluated at k/(N*dt) Hz. The result has
// the same length as strain.
func Whiten(strain []float64, est psd.Estimator, dt float64) ([]float64, error) {
	n := len(strain)
	if n == 0 {
		return nil, fmt.Errorf("%w: whiten input is empty", ErrNumericalPrecondition)
	}
	if est == nil {
		return nil, fmt.Errorf("%w: whiten requires a PSD estimate", ErrNumericalPrecondition)
	}
	if dt <= 0 || !core.IsFinite(dt) {
		return nil, fmt.Errorf("%w: whiten dt must be > 0: %v", ErrNumericalPrecondition, dt)
	}

	freqs := fft.Freqs(n, dt)
	if b, ok := est.(psd.Bounded); ok {
		lo, hi := b.Domain()
		top := freqs[len(freqs)-1]
		if lo > boundTolerance || top > hi*(1+boundTolerance) {
			return nil, fmt.Errorf("%w: PSD defined on [%g, %g] Hz, whitening needs [0, %g] Hz",
				ErrNumericalPrecondition, lo, hi, top)
		}
	}

	hf, err := fft.Forward(strain)
	if err != nil {
		return nil, fmt.Errorf("condition: whiten: %w", err)
	}

	norm := 1 / math.Sqrt(1/(2*dt))
	for k, f := range freqs {
		p := est.Evaluate(f)
		if !(p > 0) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: PSD at %g Hz is %v", ErrNumericalPrecondition, f, p)
		}
		hf[k] *= complex(norm/math.Sqrt(p), 0)
	}

	out, err := fft.Inverse(hf, n)
	if err != nil {
		return nil, fmt.Errorf("condition: whiten: %w", err)
	}
	return out, nil
}
