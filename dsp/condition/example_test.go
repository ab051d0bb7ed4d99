package condition_test

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ligo/dsp/condition"
	"github.com/cwbudde/algo-ligo/dsp/psd"
	"github.com/cwbudde/algo-ligo/dsp/spectrum"
)

func ExampleShift() {
	x := make([]float64, 4096)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 200 * float64(i) / 4096)
	}

	y, err := condition.Shift(x, 100, 4096)
	if err != nil {
		panic(err)
	}

	peak, _ := spectrum.PeakFrequency(y, 4096)
	fmt.Printf("%d samples, peak %.0f Hz\n", len(y), peak)
	// Output:
	// 4096 samples, peak 300 Hz
}

func ExampleWhiten() {
	rng := rand.New(rand.NewSource(7))
	x := make([]float64, 4096)
	for i := range x {
		x[i] = rng.NormFloat64() * 2e-21
	}

	// Noise of std sigma sampled every dt has a flat PSD of 2*sigma^2*dt.
	dt := 1.0 / 4096
	white, err := condition.Whiten(x, psd.Flat(2*2e-21*2e-21*dt), dt)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%d samples, equals x/sigma: %v\n", len(white), math.Abs(x[0]/2e-21-white[0]) < 1e-9)
	// Output:
	// 4096 samples, equals x/sigma: true
}
