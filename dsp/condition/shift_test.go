package condition

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ligo/dsp/spectrum"
	"github.com/cwbudde/algo-ligo/internal/testutil"
)

func TestShiftMovesPeakFrequency(t *testing.T) {
	// 200 Hz sine, 1 s at 4096 Hz, shifted by +100 Hz peaks near 300 Hz.
	const fs = 4096.0
	x := testutil.DeterministicSine(200, fs, 1, 4096)

	y, err := Shift(x, 100, fs)
	if err != nil {
		t.Fatalf("Shift error: %v", err)
	}

	peak, err := spectrum.PeakFrequency(y, fs)
	if err != nil {
		t.Fatalf("PeakFrequency error: %v", err)
	}
	if math.Abs(peak-300) >= 5 {
		t.Fatalf("peak=%.2f Hz, want ~300 Hz", peak)
	}
}

func TestShiftPeakWithinOneBin(t *testing.T) {
	tests := []struct {
		name      string
		f0, shift float64
		fs        float64
		n         int
	}{
		{name: "audible", f0: 150, shift: 400, fs: 4096, n: 8192},
		{name: "fractional shift", f0: 60, shift: 33.3, fs: 1024, n: 2048},
		{name: "non power of two", f0: 40, shift: 25, fs: 1000, n: 3000},
		{name: "downward", f0: 300, shift: -100, fs: 4096, n: 4096},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := testutil.DeterministicSine(tt.f0, tt.fs, 1, tt.n)

			y, err := Shift(x, tt.shift, tt.fs)
			if err != nil {
				t.Fatalf("Shift error: %v", err)
			}
			if len(y) != tt.n {
				t.Fatalf("len=%d want %d", len(y), tt.n)
			}

			peak, err := spectrum.PeakFrequency(y, tt.fs)
			if err != nil {
				t.Fatalf("PeakFrequency error: %v", err)
			}

			df := tt.fs / float64(tt.n)
			if math.Abs(peak-(tt.f0+tt.shift)) > df {
				t.Fatalf("peak=%v want %v within %v", peak, tt.f0+tt.shift, df)
			}
		})
	}
}

func TestShiftOddLengthRoundsToEven(t *testing.T) {
	x := testutil.GaussianNoise(4, 1, 1001)

	y, err := Shift(x, 10, 1000)
	if err != nil {
		t.Fatalf("Shift error: %v", err)
	}
	if len(y) != 1000 {
		t.Fatalf("len=%d want 1000", len(y))
	}
}

func TestShiftZeroIsIdentityForEvenLength(t *testing.T) {
	x := testutil.GaussianNoise(8, 1, 512)

	y, err := Shift(x, 0, 512)
	if err != nil {
		t.Fatalf("Shift error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, y, x, 1e-9)
}

func TestShiftBeyondBandIsSilence(t *testing.T) {
	x := testutil.DeterministicSine(100, 1024, 1, 1024)

	for _, shift := range []float64{513, 5000, -600} {
		y, err := Shift(x, shift, 1024)
		if err != nil {
			t.Fatalf("shift=%v: Shift error: %v", shift, err)
		}
		if len(y) != 1024 {
			t.Fatalf("shift=%v: len=%d", shift, len(y))
		}
		for i, v := range y {
			if v != 0 {
				t.Fatalf("shift=%v: y[%d]=%v want 0", shift, i, v)
			}
		}
	}
}

func TestShiftDoesNotMutateInput(t *testing.T) {
	x := testutil.DeterministicSine(200, 4096, 1, 4096)
	orig := append([]float64(nil), x...)

	if _, err := Shift(x, 100, 4096); err != nil {
		t.Fatalf("Shift error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, x, orig, 0)
}

func TestShiftPreconditions(t *testing.T) {
	tests := []struct {
		name  string
		x     []float64
		shift float64
		fs    float64
	}{
		{name: "empty", x: nil, shift: 1, fs: 1},
		{name: "single sample", x: []float64{1}, shift: 1, fs: 1},
		{name: "zero rate", x: []float64{1, 2}, shift: 1, fs: 0},
		{name: "nan shift", x: []float64{1, 2}, shift: math.NaN(), fs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Shift(tt.x, tt.shift, tt.fs)
			if !errors.Is(err, ErrNumericalPrecondition) {
				t.Fatalf("err=%v, want ErrNumericalPrecondition", err)
			}
		})
	}
}

func TestRotateBins(t *testing.T) {
	in := []complex128{1, 2 + 1i, 3, 4 - 2i, 5}

	tests := []struct {
		name  string
		nbins int
		want  []complex128
	}{
		{name: "zero", nbins: 0, want: []complex128{1, 2 + 1i, 3, 4 - 2i, 5}},
		{name: "up two", nbins: 2, want: []complex128{0, 0, 1, 2 + 1i, 3}},
		{name: "down one", nbins: -1, want: []complex128{2 + 1i, 3, 4 - 2i, 5, 0}},
		{name: "full", nbins: 5, want: []complex128{0, 0, 0, 0, 0}},
		{name: "full negative", nbins: -7, want: []complex128{0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotateBins(in, tt.nbins)
			for k := range tt.want {
				if got[k] != tt.want[k] {
					t.Fatalf("bin %d: got %v want %v", k, got[k], tt.want[k])
				}
			}
		})
	}
}

func BenchmarkShift(b *testing.B) {
	x := testutil.GaussianNoise(1, 1, 32*4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Shift(x, 400, 4096); err != nil {
			b.Fatal(err)
		}
	}
}
