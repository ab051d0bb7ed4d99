// Package fft provides one-sided real transforms on top of the complex FFT
// backends used by this module.
//
// Power-of-two lengths run on an algo-fft plan. Every other length falls back
// to go-dsp, which handles arbitrary sizes via Bluestein's algorithm. Plans
// are created per call; nothing is cached between calls.
package fft

import (
	"errors"
	"fmt"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	dspfft "github.com/mjibson/go-dsp/fft"
)

// ErrEmptyInput is returned for zero-length transforms.
var ErrEmptyInput = errors.New("fft: input must not be empty")

// Bins returns the number of one-sided bins of an n-point real transform.
func Bins(n int) int {
	return n/2 + 1
}

// Forward returns the n/2+1 non-negative frequency bins of the DFT of x.
// The transform is unnormalised, matching numpy.fft.rfft.
func Forward(x []float64) ([]complex128, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	if n == 1 {
		return []complex128{complex(x[0], 0)}, nil
	}

	var full []complex128
	if isPowerOf2(n) {
		in := make([]complex128, n)
		for i, v := range x {
			in[i] = complex(v, 0)
		}

		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("fft: plan %d: %w", n, err)
		}

		full = make([]complex128, n)
		if err := plan.Forward(full, in); err != nil {
			return nil, fmt.Errorf("fft: forward: %w", err)
		}
	} else {
		full = dspfft.FFTReal(x)
	}

	out := make([]complex128, Bins(n))
	copy(out, full)

	return out, nil
}

// Inverse returns the length-n real sequence whose one-sided spectrum is bins,
// matching numpy.fft.irfft(bins, n). Missing bins are treated as zero, extra
// bins are ignored, and the imaginary parts of the DC and Nyquist bins are
// discarded.
func Inverse(bins []complex128, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("fft: inverse length must be > 0: %d", n)
	}

	if len(bins) == 0 {
		return nil, ErrEmptyInput
	}

	if n == 1 {
		return []float64{real(bins[0])}, nil
	}

	full := make([]complex128, n)
	copy(full, bins[:min(len(bins), Bins(n))])

	full[0] = complex(real(full[0]), 0)
	if n%2 == 0 {
		full[n/2] = complex(real(full[n/2]), 0)
	}

	for k := 1; k < (n+1)/2; k++ {
		full[n-k] = cmplx.Conj(full[k])
	}

	var td []complex128
	if isPowerOf2(n) {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("fft: plan %d: %w", n, err)
		}

		td = make([]complex128, n)
		if err := plan.Inverse(td, full); err != nil {
			return nil, fmt.Errorf("fft: inverse: %w", err)
		}
	} else {
		td = dspfft.IFFT(full)
	}

	out := make([]float64, n)
	for i, v := range td {
		out[i] = real(v)
	}

	return out, nil
}

// Complex returns the unnormalised DFT of x, matching numpy.fft.fft.
func Complex(x []complex128) ([]complex128, error) {
	return transform(x, false)
}

// InverseComplex returns the inverse DFT of x scaled by 1/len(x), matching
// numpy.fft.ifft.
func InverseComplex(x []complex128) ([]complex128, error) {
	return transform(x, true)
}

func transform(x []complex128, inverse bool) ([]complex128, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	if !isPowerOf2(n) {
		if inverse {
			return dspfft.IFFT(x), nil
		}
		return dspfft.FFT(x), nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fft: plan %d: %w", n, err)
	}

	out := make([]complex128, n)
	if inverse {
		err = plan.Inverse(out, x)
	} else {
		err = plan.Forward(out, x)
	}
	if err != nil {
		return nil, fmt.Errorf("fft: transform %d: %w", n, err)
	}
	return out, nil
}

// Freqs returns the centre frequencies of the one-sided bins of an n-point
// transform with sampling interval dt, matching numpy.fft.rfftfreq.
func Freqs(n int, dt float64) []float64 {
	if n <= 0 || dt <= 0 {
		return nil
	}

	out := make([]float64, Bins(n))
	scale := 1 / (float64(n) * dt)
	for k := range out {
		out[k] = float64(k) * scale
	}

	return out
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
