package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ligo/dsp/filter/biquad"
)

const fs = 4096.0

func TestLowpassHighpass(t *testing.T) {
	lp := Lowpass(300, defaultQ, fs)
	hp := Highpass(300, defaultQ, fs)

	tests := []struct {
		name   string
		c      biquad.Coefficients
		freq   float64
		wantDB float64
		tol    float64
	}{
		{"lowpass dc", lp, 0, 0, 1e-9},
		{"lowpass cutoff", lp, 300, -3.0103, 1e-3},
		{"highpass nyquist", hp, fs / 2, 0, 1e-9},
		{"highpass cutoff", hp, 300, -3.0103, 1e-3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.MagnitudeDB(tc.freq, fs); math.Abs(got-tc.wantDB) > tc.tol {
				t.Fatalf("magnitude=%v dB want %v", got, tc.wantDB)
			}
		})
	}

	if db := lp.MagnitudeDB(1500, fs); db > -20 {
		t.Fatalf("lowpass stopband=%v dB", db)
	}
	if db := hp.MagnitudeDB(30, fs); db > -30 {
		t.Fatalf("highpass stopband=%v dB", db)
	}
}

func TestInvalidCutoff(t *testing.T) {
	for _, f := range []float64{0, -10, fs / 2, fs, math.NaN()} {
		if c := Lowpass(f, defaultQ, fs); c != (biquad.Coefficients{}) {
			t.Fatalf("Lowpass(%v)=%+v, want zero", f, c)
		}
		if ButterworthHP(f, 4, fs) != nil {
			t.Fatalf("ButterworthHP(%v) not nil", f)
		}
	}
	if ButterworthLP(100, 0, fs) != nil {
		t.Fatal("order 0 not rejected")
	}
}

func TestButterworthCascade(t *testing.T) {
	for order := 1; order <= 8; order++ {
		lp := ButterworthLP(300, order, fs)
		hp := ButterworthHP(300, order, fs)
		if want := (order + 1) / 2; len(lp) != want || len(hp) != want {
			t.Fatalf("order %d: sections lp=%d hp=%d want %d", order, len(lp), len(hp), want)
		}

		last := lp[len(lp)-1]
		if first := last.B2 == 0 && last.A2 == 0; first != (order%2 != 0) {
			t.Fatalf("order %d: first-order tail=%v", order, first)
		}

		lpc, hpc := biquad.NewChain(lp), biquad.NewChain(hp)
		if lpc.Order() != order {
			t.Fatalf("order %d: chain order=%d", order, lpc.Order())
		}

		// Every Butterworth order is 3 dB down at the cutoff.
		if db := lpc.MagnitudeDB(300, fs); math.Abs(db+3.0103) > 1e-3 {
			t.Fatalf("order %d: lowpass cutoff=%v dB", order, db)
		}
		if db := hpc.MagnitudeDB(300, fs); math.Abs(db+3.0103) > 1e-3 {
			t.Fatalf("order %d: highpass cutoff=%v dB", order, db)
		}
		if db := lpc.MagnitudeDB(1, fs); math.Abs(db) > 1e-4 {
			t.Fatalf("order %d: lowpass passband=%v dB", order, db)
		}
	}
}

func TestButterworthRolloff(t *testing.T) {
	// Past the cutoff an order-n section falls at least 6n dB per octave;
	// the bilinear warp towards Nyquist makes it somewhat steeper.
	for _, order := range []int{2, 3, 4} {
		c := biquad.NewChain(ButterworthLP(100, order, fs))
		drop := c.MagnitudeDB(400, fs) - c.MagnitudeDB(800, fs)
		if n := float64(order); drop < 6*n || drop > 7.5*n {
			t.Fatalf("order %d: octave drop=%v dB", order, drop)
		}
	}
}
