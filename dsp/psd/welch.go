package psd

import (
	"fmt"

	"github.com/cwbudde/algo-ligo/dsp/core"
	"github.com/cwbudde/algo-ligo/dsp/spectrum"
	"github.com/cwbudde/algo-ligo/dsp/window"
	"github.com/cwbudde/algo-ligo/internal/fft"
)

// Option configures [Welch].
type Option func(*config)

type config struct {
	segment int
	overlap int
	window  window.Type
}

// WithSegmentLength sets the periodogram length in samples (NFFT).
// The default is four seconds of data.
func WithSegmentLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.segment = n
		}
	}
}

// WithOverlap sets the number of samples shared by consecutive segments.
// The default is no overlap.
func WithOverlap(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.overlap = n
		}
	}
}

// WithWindow selects the taper applied to every segment. The default is a
// symmetric Hann window.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// Welch estimates the one-sided PSD of x, sampled at sampleRate, by
// averaging windowed periodograms. It returns the bin frequencies
// k*sampleRate/NFFT and the densities in units^2/Hz.
//
// Input shorter than one segment is zero-padded to a single segment.
func Welch(x []float64, sampleRate float64, opts ...Option) (freqs, pxx []float64, err error) {
	if len(x) == 0 {
		return nil, nil, fmt.Errorf("%w: welch input must not be empty", ErrInvalidInput)
	}
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, nil, fmt.Errorf("%w: welch sample rate must be > 0: %f", ErrInvalidInput, sampleRate)
	}
	if i := core.FirstNonFinite(x); i >= 0 {
		return nil, nil, fmt.Errorf("%w: welch input sample %d is %v", ErrInvalidInput, i, x[i])
	}

	cfg := config{
		segment: int(4 * sampleRate),
		window:  window.TypeHann,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := cfg.segment
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: welch segment length must be >= 2: %d", ErrInvalidInput, n)
	}
	if cfg.overlap >= n {
		return nil, nil, fmt.Errorf("%w: welch overlap %d must be < segment length %d", ErrInvalidInput, cfg.overlap, n)
	}

	if len(x) < n {
		padded := make([]float64, n)
		copy(padded, x)
		x = padded
	}

	coeffs := window.Generate(cfg.window, n)
	energy := window.SumSquares(coeffs)
	if energy == 0 {
		return nil, nil, fmt.Errorf("%w: welch window has zero energy", ErrInvalidInput)
	}

	step := n - cfg.overlap
	count := (len(x) - cfg.overlap) / step

	pxx = make([]float64, fft.Bins(n))
	for s := 0; s < count; s++ {
		seg, err := window.ApplyCoefficients(x[s*step:s*step+n], coeffs)
		if err != nil {
			return nil, nil, fmt.Errorf("psd: welch segment %d: %w", s, err)
		}

		bins, err := fft.Forward(seg)
		if err != nil {
			return nil, nil, fmt.Errorf("psd: welch segment %d: %w", s, err)
		}

		for k, p := range spectrum.Power(bins) {
			pxx[k] += p
		}
	}

	scale := 1 / (float64(count) * sampleRate * energy)
	last := len(pxx)
	if n%2 == 0 {
		last--
	}
	for k := range pxx {
		pxx[k] *= scale
		if k > 0 && k < last {
			pxx[k] *= 2
		}
	}

	return fft.Freqs(n, 1/sampleRate), pxx, nil
}

// Estimate runs [Welch] and wraps the result in a [Table].
func Estimate(x []float64, sampleRate float64, opts ...Option) (*Table, error) {
	freqs, pxx, err := Welch(x, sampleRate, opts...)
	if err != nil {
		return nil, err
	}
	return NewTable(freqs, pxx)
}
