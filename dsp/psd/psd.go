package psd

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-ligo/dsp/core"
	"github.com/cwbudde/algo-ligo/dsp/spectrum"
)

// ErrInvalidInput is wrapped by every validation error of this package.
var ErrInvalidInput = errors.New("psd: invalid input")

// Estimator maps a frequency in Hz to a one-sided power spectral density.
type Estimator interface {
	Evaluate(freqHz float64) float64
}

// Bounded is implemented by estimators that are only defined over a finite
// frequency range.
type Bounded interface {
	Domain() (lo, hi float64)
}

// EstimatorFunc adapts an ordinary function to [Estimator].
type EstimatorFunc func(freqHz float64) float64

// Evaluate calls f(freqHz).
func (f EstimatorFunc) Evaluate(freqHz float64) float64 { return f(freqHz) }

// Flat returns an estimator with the same density at every frequency.
func Flat(density float64) Estimator {
	return EstimatorFunc(func(float64) float64 { return density })
}

// Table is a piecewise-linear PSD interpolant. Queries below the first or
// above the last frequency return the end values, as numpy.interp does.
// A Table is immutable and safe for concurrent use.
type Table struct {
	freqs  []float64
	values []float64
}

// NewTable builds a Table from strictly increasing frequencies and
// non-negative finite densities. The inputs are copied.
func NewTable(freqs, values []float64) (*Table, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: table requires at least one point", ErrInvalidInput)
	}
	if len(freqs) != len(values) {
		return nil, fmt.Errorf("%w: table length mismatch: %d != %d", ErrInvalidInput, len(freqs), len(values))
	}

	for i := range freqs {
		if !core.IsFinite(freqs[i]) || freqs[i] < 0 {
			return nil, fmt.Errorf("%w: table frequency %d is %v", ErrInvalidInput, i, freqs[i])
		}
		if i > 0 && !(freqs[i] > freqs[i-1]) {
			return nil, fmt.Errorf("%w: table frequencies must be strictly increasing at index %d", ErrInvalidInput, i)
		}
		if !core.IsFinite(values[i]) || values[i] < 0 {
			return nil, fmt.Errorf("%w: table density %d is %v", ErrInvalidInput, i, values[i])
		}
	}

	return &Table{
		freqs:  append([]float64(nil), freqs...),
		values: append([]float64(nil), values...),
	}, nil
}

// Evaluate returns the interpolated density at freqHz.
func (t *Table) Evaluate(freqHz float64) float64 {
	return spectrum.InterpolateAt(t.freqs, t.values, freqHz)
}

// EvaluateAll returns the interpolated density at every query frequency.
func (t *Table) EvaluateAll(freqsHz []float64) []float64 {
	out := make([]float64, len(freqsHz))
	for i, f := range freqsHz {
		out[i] = t.Evaluate(f)
	}
	return out
}

// Domain returns the first and last tabulated frequency.
func (t *Table) Domain() (lo, hi float64) {
	return t.freqs[0], t.freqs[len(t.freqs)-1]
}

// Len returns the number of tabulated points.
func (t *Table) Len() int { return len(t.freqs) }

// Frequencies returns a copy of the tabulated frequencies.
func (t *Table) Frequencies() []float64 { return append([]float64(nil), t.freqs...) }

// Densities returns a copy of the tabulated densities.
func (t *Table) Densities() []float64 { return append([]float64(nil), t.values...) }

// ASD returns the amplitude spectral density sqrt(psd) for each tabulated point.
func (t *Table) ASD() []float64 {
	out := make([]float64, len(t.values))
	for i, v := range t.values {
		out[i] = math.Sqrt(v)
	}
	return out
}
