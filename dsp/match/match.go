package match

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-ligo/dsp/core"
	"github.com/cwbudde/algo-ligo/dsp/psd"
	"github.com/cwbudde/algo-ligo/dsp/window"
	"github.com/cwbudde/algo-ligo/internal/fft"
)

// TaperAlpha is the Tukey fraction applied to data and template.
const TaperAlpha = 1.0 / 8

// ErrInvalidInput is wrapped by every validation error of this package.
var ErrInvalidInput = errors.New("match: invalid input")

// Result is the output of a matched filter run.
type Result struct {
	// Freqs are the one-sided bin frequencies of TemplateFFT.
	Freqs []float64
	// TemplateFFT is the one-sided spectrum of the tapered template,
	// divided by the sample rate.
	TemplateFFT []complex128
	// Sigma is the template's noise-weighted norm.
	Sigma float64
	// SNR is the magnitude of the complex SNR series. Index i corresponds
	// to a template arrival i-len(SNR)/2 samples after the data start.
	SNR []float64
	// Peak is the index of the largest SNR value and SNRMax that value.
	Peak   int
	SNRMax float64
	// Phase is the argument of the complex SNR at Peak.
	Phase float64
	// EffDistance is Sigma/SNRMax.
	EffDistance float64
}

// Offset returns the template shift in samples that maximises the SNR.
func (r *Result) Offset() int {
	return r.Peak - len(r.SNR)/2
}

// Filter matches data against the template plus + i*cross. A template
// shorter than data is zero-padded at the end. est gives the one-sided noise
// PSD and must be positive at every bin frequency.
func Filter(data, plus, cross []float64, est psd.Estimator, sampleRate float64) (*Result, error) {
	n := len(data)
	switch {
	case n < 2:
		return nil, fmt.Errorf("%w: %d data samples", ErrInvalidInput, n)
	case len(plus) == 0 || len(plus) != len(cross):
		return nil, fmt.Errorf("%w: template polarisations of %d and %d samples", ErrInvalidInput, len(plus), len(cross))
	case len(plus) > n:
		return nil, fmt.Errorf("%w: template of %d samples exceeds %d data samples", ErrInvalidInput, len(plus), n)
	case est == nil:
		return nil, fmt.Errorf("%w: no PSD estimate", ErrInvalidInput)
	case !(sampleRate > 0) || !core.IsFinite(sampleRate):
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidInput, sampleRate)
	}

	taper, err := window.Tukey(n, TaperAlpha)
	if err != nil {
		return nil, err
	}

	dataTD := make([]complex128, n)
	tplTD := make([]complex128, n)
	for i, w := range taper {
		dataTD[i] = complex(data[i]*w, 0)
		if i < len(plus) {
			tplTD[i] = complex(plus[i]*w, cross[i]*w)
		}
	}

	dataFD, err := fft.Complex(dataTD)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	tplFD, err := fft.Complex(tplTD)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	df := sampleRate / float64(n)
	scale := complex(1/sampleRate, 0)
	optimal := make([]complex128, n)
	sigmaSq := 0.0
	for k := range optimal {
		f := float64(min(k, n-k)) * df
		p := est.Evaluate(f)
		if !(p > 0) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: PSD at %g Hz is %v", ErrInvalidInput, f, p)
		}
		d := dataFD[k] * scale
		t := tplFD[k] * scale
		tplFD[k] = t
		optimal[k] = d * cmplx.Conj(t) / complex(p, 0)
		sigmaSq += (real(t)*real(t) + imag(t)*imag(t)) / p
	}
	sigma := math.Sqrt(sigmaSq * df)
	if !(sigma > 0) {
		return nil, fmt.Errorf("%w: template has no power", ErrInvalidInput)
	}

	optTime, err := fft.InverseComplex(optimal)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	// Roll by n/2 so zero lag sits in the middle of the series.
	half := n / 2
	norm := complex(2*sampleRate/sigma, 0)
	complexSNR := make([]complex128, n)
	for i, v := range optTime {
		complexSNR[(i+half)%n] = v * norm
	}

	res := &Result{
		Freqs:       fft.Freqs(n, 1/sampleRate),
		TemplateFFT: tplFD[:fft.Bins(n)],
		Sigma:       sigma,
		SNR:         make([]float64, n),
	}
	for i, z := range complexSNR {
		res.SNR[i] = cmplx.Abs(z)
		if res.SNR[i] > res.SNRMax {
			res.SNRMax, res.Peak = res.SNR[i], i
		}
	}
	if !(res.SNRMax > 0) {
		return nil, fmt.Errorf("%w: data has no overlap with the template", ErrInvalidInput)
	}
	res.Phase = cmplx.Phase(complexSNR[res.Peak])
	res.EffDistance = sigma / res.SNRMax
	return res, nil
}
