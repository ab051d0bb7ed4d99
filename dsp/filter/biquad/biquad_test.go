package biquad

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ligo/internal/testutil"
)

func twoSections() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestSectionImpulse(t *testing.T) {
	s := NewSection(Coefficients{B0: 1, B1: 0.5, A1: -0.5})

	got := []float64{s.ProcessSample(1), s.ProcessSample(0), s.ProcessSample(0)}
	// y[n] = x[n] + 0.5x[n-1] + 0.5y[n-1]
	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 1, 0.5}, 1e-15)
}

func TestSectionBlockMatchesSamples(t *testing.T) {
	c := twoSections()[0]
	x := testutil.DeterministicNoise(3, 1, 64)

	ref := NewSection(c)
	want := make([]float64, len(x))
	for i, v := range x {
		want[i] = ref.ProcessSample(v)
	}

	s := NewSection(c)
	got := append([]float64(nil), x...)
	s.ProcessBlock(got[:20])
	s.ProcessBlock(got[20:])

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)
	if s.State() != ref.State() {
		t.Fatalf("state=%v want %v", s.State(), ref.State())
	}

	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("state after Reset=%v", s.State())
	}
}

func TestChainMatchesManualCascade(t *testing.T) {
	coeffs := twoSections()
	s1, s2 := NewSection(coeffs[0]), NewSection(coeffs[1])
	c := NewChain(coeffs, WithGain(2))

	for i, x := range []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8} {
		want := s2.ProcessSample(s1.ProcessSample(2 * x))
		if got := c.ProcessSample(x); math.Abs(got-want) > 1e-15 {
			t.Fatalf("sample %d: got %v want %v", i, got, want)
		}
	}

	c.Reset()
	block := []float64{1, 0, 0, 0}
	c.ProcessBlock(block)
	c.Reset()
	if got := c.ProcessSample(1); got != block[0] {
		t.Fatalf("after Reset got %v want %v", got, block[0])
	}
}

func TestChainOrder(t *testing.T) {
	c := NewChain(append(twoSections(), Coefficients{B0: 0.5, B1: 0.5}))
	if c.NumSections() != 3 || c.Order() != 5 {
		t.Fatalf("sections=%d order=%d", c.NumSections(), c.Order())
	}
}

func TestResponse(t *testing.T) {
	c := twoSections()[0]

	// DC gain is sum(b)/(1+sum(a)).
	want := (0.25 + 0.5 + 0.25) / (1 - 0.2 + 0.04)
	if got := real(c.Response(0, 1000)); math.Abs(got-want) > 1e-12 {
		t.Fatalf("DC response=%v want %v", got, want)
	}

	// b = [1 2 1]/4 has a double zero at Nyquist.
	if db := c.MagnitudeDB(500, 1000); db > -200 {
		t.Fatalf("Nyquist magnitude=%v dB", db)
	}

	coeffs := twoSections()
	chain := NewChain(coeffs, WithGain(0.5))
	got := chain.MagnitudeDB(100, 1000)
	sum := 20*math.Log10(0.5) + coeffs[0].MagnitudeDB(100, 1000) + coeffs[1].MagnitudeDB(100, 1000)
	if math.Abs(got-sum) > 1e-9 {
		t.Fatalf("chain magnitude=%v want %v", got, sum)
	}
}
