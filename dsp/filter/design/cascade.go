package design

import (
	"math"

	"github.com/cwbudde/algo-ligo/dsp/filter/biquad"
)

// ButterworthLP designs an order-pole Butterworth low-pass cascade. Odd
// orders end with a first-order section. It returns nil for order <= 0 or
// a cutoff outside (0, sampleRate/2).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return butterworth(freq, order, sampleRate, Lowpass, firstOrderLP)
}

// ButterworthHP designs an order-pole Butterworth high-pass cascade. Odd
// orders end with a first-order section. It returns nil for order <= 0 or
// a cutoff outside (0, sampleRate/2).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return butterworth(freq, order, sampleRate, Highpass, firstOrderHP)
}

func butterworth(freq float64, order int, sampleRate float64,
	second func(freq, q, sampleRate float64) biquad.Coefficients,
	first func(k float64) biquad.Coefficients,
) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, second(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, first(math.Tan(math.Pi*freq/sampleRate)))
	}
	return sections
}

// butterworthQ is the quality factor of the index-th pole pair of an
// order-pole Butterworth prototype.
func butterworthQ(order, index int) float64 {
	s := math.Sin(math.Pi * float64(2*index+1) / (2 * float64(order)))
	if s == 0 {
		return defaultQ
	}
	return 1 / (2 * s)
}

// firstOrderLP and firstOrderHP take the prewarped cutoff k = tan(pi*f/fs).
func firstOrderLP(k float64) biquad.Coefficients {
	norm := 1 / (1 + k)
	return biquad.Coefficients{B0: k * norm, B1: k * norm, A1: (k - 1) * norm}
}

func firstOrderHP(k float64) biquad.Coefficients {
	norm := 1 / (1 + k)
	return biquad.Coefficients{B0: norm, B1: -norm, A1: (k - 1) * norm}
}
