// Package stats summarises conditioned strain: sample moments in the time
// domain and spectral flatness of a density, used to check how white a
// whitened series is.
package stats

import "math"

// Summary holds time-domain statistics of a series.
type Summary struct {
	Len  int
	Mean float64
	RMS  float64
	// Peak is max |x|.
	Peak float64
	// Crest is Peak / RMS, 0 for a silent series.
	Crest    float64
	Variance float64
	Skewness float64
	// Kurtosis is the excess kurtosis, 0 for Gaussian noise.
	Kurtosis float64
}

// Summarize computes the statistics of x in one pass. Moments use Welford's
// update so that series with a large offset keep their precision.
func Summarize(x []float64) Summary {
	s := Summary{Len: len(x)}
	if len(x) == 0 {
		return s
	}

	var m welford
	var sumSq float64
	for _, v := range x {
		m.add(v)
		sumSq += v * v
		if a := math.Abs(v); a > s.Peak {
			s.Peak = a
		}
	}

	s.Mean, s.Variance, s.Skewness, s.Kurtosis = m.result()
	s.RMS = math.Sqrt(sumSq / float64(len(x)))
	if s.RMS > 0 {
		s.Crest = s.Peak / s.RMS
	}
	return s
}

// Moments returns the mean, population variance, skewness and excess
// kurtosis of x.
func Moments(x []float64) (mean, variance, skewness, kurtosis float64) {
	var m welford
	for _, v := range x {
		m.add(v)
	}
	return m.result()
}

// welford accumulates the first four central moments.
type welford struct {
	n          int
	mean       float64
	m2, m3, m4 float64
}

func (w *welford) add(x float64) {
	prev := float64(w.n)
	w.n++
	n := float64(w.n)

	delta := x - w.mean
	dn := delta / n
	dn2 := dn * dn
	term := delta * dn * prev

	// Order matters: m4 reads m3 and m2, m3 reads m2.
	w.m4 += term*dn2*(n*n-3*n+3) + 6*dn2*w.m2 - 4*dn*w.m3
	w.m3 += term*dn*(n-2) - 3*dn*w.m2
	w.m2 += term
	w.mean += dn
}

func (w *welford) result() (mean, variance, skewness, kurtosis float64) {
	if w.n == 0 {
		return 0, 0, 0, 0
	}
	n := float64(w.n)
	variance = w.m2 / n
	if variance > 0 {
		skewness = (w.m3 / n) / (variance * math.Sqrt(variance))
		kurtosis = (w.m4/n)/(variance*variance) - 3
	}
	return w.mean, variance, skewness, kurtosis
}
