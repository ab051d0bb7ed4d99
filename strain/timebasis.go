package strain

import "math"

// TimeBasis is the sample-time representation of a recording: either
// [Expanded] or [Compact].
type TimeBasis interface {
	// Len returns the number of sample times.
	Len() int
	// Step returns the sampling interval in seconds.
	Step() float64
	// At returns the GPS time of sample i.
	At(i int) float64
	// Expand returns the full per-sample time vector as a new slice.
	Expand() []float64

	timeBasis()
}

// Compact is the {start, stop, dt} metadata of a recording. Sample i is at
// Start + i*Dt for i in [0, Len()).
type Compact struct {
	Start float64
	Stop  float64
	Dt    float64
}

// Len returns round((Stop-Start)/Dt).
func (c Compact) Len() int {
	if c.Dt <= 0 || c.Stop <= c.Start {
		return 0
	}
	return int(math.Round((c.Stop - c.Start) / c.Dt))
}

// Step returns Dt.
func (c Compact) Step() float64 { return c.Dt }

// At returns Start + i*Dt.
func (c Compact) At(i int) float64 { return c.Start + float64(i)*c.Dt }

// Duration returns Stop - Start in seconds.
func (c Compact) Duration() float64 { return c.Stop - c.Start }

// Expand materialises the time vector. Each entry is computed directly from
// its index so rounding does not accumulate.
func (c Compact) Expand() []float64 {
	out := make([]float64, c.Len())
	for i := range out {
		out[i] = c.At(i)
	}
	return out
}

func (Compact) timeBasis() {}

// Expanded is an explicit per-sample time vector.
type Expanded struct {
	Times []float64
}

// Len returns len(Times).
func (e Expanded) Len() int { return len(e.Times) }

// Step returns the spacing of the first two samples, or 0 for fewer than two.
func (e Expanded) Step() float64 {
	if len(e.Times) < 2 {
		return 0
	}
	return e.Times[1] - e.Times[0]
}

// At returns Times[i].
func (e Expanded) At(i int) float64 { return e.Times[i] }

// Expand returns a copy of Times.
func (e Expanded) Expand() []float64 { return append([]float64(nil), e.Times...) }

func (Expanded) timeBasis() {}
