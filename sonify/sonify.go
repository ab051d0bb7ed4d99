// Package sonify exports conditioned strain as 16-bit mono PCM WAV audio.
package sonify

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/youpy/go-wav"

	"github.com/cwbudde/algo-ligo/dsp/core"
	"github.com/cwbudde/algo-ligo/dsp/signal"
)

// Headroom is the fraction of int16 full scale used by the loudest sample.
const Headroom = 0.9

// ErrInvalidInput is returned for empty input or a non-positive sample rate.
var ErrInvalidInput = errors.New("sonify: invalid input")

// Quantize scales samples so the largest magnitude maps to
// Headroom*math.MaxInt16 and truncates to int16. All-zero input yields
// silence.
func Quantize(samples []float64) ([]int16, error) {
	if i := core.FirstNonFinite(samples); i >= 0 {
		return nil, fmt.Errorf("%w: sample %d is %v", ErrInvalidInput, i, samples[i])
	}

	norm, err := signal.Normalize(samples, Headroom*math.MaxInt16)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	out := make([]int16, len(norm))
	for i, v := range norm {
		out[i] = int16(v)
	}
	return out, nil
}

// Encode writes samples as a mono 16-bit WAV stream with the given rate.
func Encode(w io.Writer, sampleRate float64, samples []float64) error {
	if len(samples) == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidInput)
	}
	if !(sampleRate > 0) || sampleRate > math.MaxUint32 {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidInput, sampleRate)
	}

	pcm, err := Quantize(samples)
	if err != nil {
		return err
	}
	frames := make([]wav.Sample, len(pcm))
	for i, v := range pcm {
		frames[i] = wav.Sample{Values: [2]int{int(v)}}
	}

	writer := wav.NewWriter(w, uint32(len(frames)), 1, uint32(math.Round(sampleRate)), 16)
	if err := writer.WriteSamples(frames); err != nil {
		return fmt.Errorf("sonify: write samples: %w", err)
	}
	return nil
}

// WriteWAV encodes samples into the file at path, replacing it if present.
func WriteWAV(path string, sampleRate float64, samples []float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sonify: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("sonify: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Encode(bw, sampleRate, samples); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("sonify: %w", err)
	}
	return nil
}
