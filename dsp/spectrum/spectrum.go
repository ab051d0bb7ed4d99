package spectrum

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cwbudde/algo-ligo/internal/fft"
	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// PeakBin returns the index of the largest value, the first one on ties.
// It returns -1 for empty input.
func PeakBin(values []float64) int {
	if len(values) == 0 {
		return -1
	}

	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

// PeakFrequency returns the centre frequency in Hz of the one-sided DFT bin
// with the largest magnitude in x.
func PeakFrequency(x []float64, sampleRate float64) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("peak frequency sampleRate must be > 0: %f", sampleRate)
	}

	bins, err := fft.Forward(x)
	if err != nil {
		return 0, fmt.Errorf("peak frequency: %w", err)
	}

	k := PeakBin(Magnitude(bins))
	return float64(k) * sampleRate / float64(len(x)), nil
}

// InterpolateAt interpolates y(x) linearly at q. Queries outside
// [x[0], x[len-1]] return the end values, as numpy.interp does.
//
// x must be non-empty, strictly increasing and as long as y; callers
// validate this once.
func InterpolateAt(x, y []float64, q float64) float64 {
	if q <= x[0] {
		return y[0]
	}
	if q >= x[len(x)-1] {
		return y[len(y)-1]
	}

	j := sort.SearchFloat64s(x, q)
	x0, x1 := x[j-1], x[j]
	t := (q - x0) / (x1 - x0)
	return y[j-1] + t*(y[j]-y[j-1])
}
