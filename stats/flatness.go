package stats

import "math"

// Flatness returns the Wiener entropy of a power density: the geometric mean
// divided by the arithmetic mean. It is 1 for a perfectly white density and
// tends to 0 for line spectra. Any zero value gives 0.
func Flatness(density []float64) float64 {
	if len(density) == 0 {
		return 0
	}

	var sumLin, sumLog float64
	for _, v := range density {
		if !(v > 0) {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	n := float64(len(density))
	return math.Exp(sumLog/n) / (sumLin / n)
}

// BandFlatness is Flatness restricted to the bins with lo <= f <= hi.
// freqs and density must have the same length; otherwise 0 is returned.
func BandFlatness(freqs, density []float64, lo, hi float64) float64 {
	if len(freqs) != len(density) {
		return 0
	}

	var band []float64
	for i, f := range freqs {
		if f >= lo && f <= hi {
			band = append(band, density[i])
		}
	}
	return Flatness(band)
}
