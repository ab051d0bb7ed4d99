package condition

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ligo/internal/testutil"
)

func rms(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func TestBandpassKeepsBand(t *testing.T) {
	const fs = 4096.0

	tests := []struct {
		name    string
		freq    float64
		wantMin float64
		wantMax float64
	}{
		{"in band", 100, 0.69, 0.72},
		{"below band", 10, 0, 1e-3},
		{"above band", 1000, 0, 1e-3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x := testutil.DeterministicSine(tc.freq, fs, 1, 4*int(fs))

			y, err := Bandpass(x, 43, 300, fs, 4)
			if err != nil {
				t.Fatalf("Bandpass error: %v", err)
			}
			if len(y) != len(x) {
				t.Fatalf("len=%d want %d", len(y), len(x))
			}

			// Skip one second at each end where the filter settles.
			got := rms(y[int(fs) : 3*int(fs)])
			if got < tc.wantMin || got > tc.wantMax {
				t.Fatalf("rms=%v want in [%v, %v]", got, tc.wantMin, tc.wantMax)
			}
		})
	}
}

func TestBandpassOddOrder(t *testing.T) {
	const fs = 4096.0

	for _, tc := range []struct {
		freq     float64
		min, max float64
	}{
		{100, 0.69, 0.72},
		{10, 0, 1e-3},
	} {
		x := testutil.DeterministicSine(tc.freq, fs, 1, 4*int(fs))
		y, err := Bandpass(x, 43, 300, fs, 3)
		if err != nil {
			t.Fatalf("Bandpass error: %v", err)
		}
		if got := rms(y[int(fs) : 3*int(fs)]); got < tc.min || got > tc.max {
			t.Fatalf("%v Hz: rms=%v want in [%v, %v]", tc.freq, got, tc.min, tc.max)
		}
	}
}

func TestBandpassZeroPhase(t *testing.T) {
	const fs = 4096.0
	x := testutil.DeterministicSine(120, fs, 1, 4*int(fs))

	y, err := Bandpass(x, 43, 300, fs, 4)
	if err != nil {
		t.Fatalf("Bandpass error: %v", err)
	}

	// In the pass band the forward-backward output lines up with the input.
	for i := int(fs); i < 3*int(fs); i++ {
		if math.Abs(y[i]-x[i]) > 0.01 {
			t.Fatalf("sample %d: got %v want %v", i, y[i], x[i])
		}
	}
}

func TestBandpassDoesNotModifyInput(t *testing.T) {
	x := testutil.DeterministicNoise(2, 1, 512)
	orig := append([]float64(nil), x...)

	if _, err := Bandpass(x, 20, 200, 1024, 2); err != nil {
		t.Fatalf("Bandpass error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, x, orig, 0)
}

func TestBandpassPreconditions(t *testing.T) {
	x := make([]float64, 64)

	tests := []struct {
		name   string
		x      []float64
		lo, hi float64
		fs     float64
		order  int
	}{
		{"short", []float64{1}, 10, 100, 1024, 4},
		{"zero rate", x, 10, 100, 0, 4},
		{"reversed band", x, 100, 10, 1024, 4},
		{"above nyquist", x, 10, 600, 1024, 4},
		{"zero low edge", x, 0, 100, 1024, 4},
		{"zero order", x, 10, 100, 1024, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Bandpass(tc.x, tc.lo, tc.hi, tc.fs, tc.order)
			if !errors.Is(err, ErrNumericalPrecondition) {
				t.Fatalf("err=%v, want ErrNumericalPrecondition", err)
			}
		})
	}
}

func TestReflectPad(t *testing.T) {
	got := reflectPad([]float64{1, 2, 4}, 2)
	want := []float64{-2, 0, 1, 2, 4, 6, 7}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}
