package plot

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"math/cmplx"
	"os"

	"github.com/cwbudde/algo-ligo/dsp/core"
)

const (
	defaultWidth  = 1000
	defaultHeight = 640

	minFrequency = 20.0
	minASD       = 1e-24
	maxASD       = 1e-20
)

// ErrInvalidInput is returned for inconsistent or empty curve data.
var ErrInvalidInput = errors.New("plot: invalid input")

// Detector colours, matching the usual H1 red / L1 green convention.
var detectorColors = map[string]color.RGBA{
	"H1": {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	"L1": {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
}

var (
	fallbackColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	templateColor = color.RGBA{A: 0xff}
	gridColor     = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
)

// ASDConfig describes one figure.
type ASDConfig struct {
	// Path is the PNG file written by ASDTemplate.
	Path string
	// Detector labels the curve and selects its colour.
	Detector string
	// Title is drawn above the axes. Empty means "<Detector> ASD".
	Title string
	// SampleRate sets the upper frequency limit to SampleRate/2.
	SampleRate float64

	// Freqs and PSD give the noise curve; PSD is a power density.
	Freqs []float64
	PSD   []float64

	// TemplateFreqs and Template give an optional template spectrum, scaled
	// by 1/EffDistance. EffDistance defaults to 1.
	TemplateFreqs []float64
	Template      []complex128
	EffDistance   float64

	// Width and Height of the image in pixels.
	Width  int
	Height int
}

// TemplateCurve returns |template(f)|*sqrt(|f|)/dEff, the template amplitude
// in the units of an ASD.
func TemplateCurve(freqs []float64, template []complex128, dEff float64) ([]float64, error) {
	if len(freqs) != len(template) {
		return nil, fmt.Errorf("%w: %d frequencies for %d template bins", ErrInvalidInput, len(freqs), len(template))
	}
	if !(dEff > 0) {
		return nil, fmt.Errorf("%w: effective distance %v", ErrInvalidInput, dEff)
	}

	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = cmplx.Abs(template[i]) * math.Sqrt(math.Abs(f)) / dEff
	}
	return out, nil
}

// ASDTemplate renders cfg and writes it as PNG to cfg.Path.
func ASDTemplate(cfg ASDConfig) (err error) {
	if cfg.Path == "" {
		return fmt.Errorf("%w: no output path", ErrInvalidInput)
	}

	img, err := Render(cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.Path)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("plot: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := png.Encode(bw, img); err != nil {
		return fmt.Errorf("plot: encode png: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	return nil
}

// Render draws the figure described by cfg.
func Render(cfg ASDConfig) (*image.RGBA, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	asd := make([]float64, len(cfg.PSD))
	for i, p := range cfg.PSD {
		asd[i] = math.Sqrt(math.Max(p, 0))
	}

	var tpl []float64
	if len(cfg.Template) > 0 {
		var err error
		tpl, err = TemplateCurve(cfg.TemplateFreqs, cfg.Template, cfg.EffDistance)
		if err != nil {
			return nil, err
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	ax := newAxes(img.Bounds(), minFrequency, cfg.SampleRate/2, minASD, maxASD)
	ax.drawGrid(img)

	curveColor, ok := detectorColors[cfg.Detector]
	if !ok {
		curveColor = fallbackColor
	}
	ax.drawCurve(img, cfg.Freqs, asd, curveColor)
	if tpl != nil {
		ax.drawCurve(img, cfg.TemplateFreqs, tpl, templateColor)
	}
	ax.drawFrame(img)

	ann, err := newAnnotator()
	if err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}
	defer ann.Close()

	legend := []legendEntry{{label: cfg.Detector + " ASD", color: curveColor}}
	if tpl != nil {
		legend = append(legend, legendEntry{label: "template(f)*sqrt(f)", color: templateColor})
	}
	if err := ann.annotate(img, ax, cfg.Title, legend); err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}

	return img, nil
}

func (cfg *ASDConfig) validate() error {
	if len(cfg.Freqs) == 0 || len(cfg.Freqs) != len(cfg.PSD) {
		return fmt.Errorf("%w: %d frequencies for %d PSD values", ErrInvalidInput, len(cfg.Freqs), len(cfg.PSD))
	}
	if !(cfg.SampleRate/2 > minFrequency) || !core.IsFinite(cfg.SampleRate) {
		return fmt.Errorf("%w: sample rate %v leaves no band above %v Hz", ErrInvalidInput, cfg.SampleRate, minFrequency)
	}
	if len(cfg.Template) > 0 && len(cfg.Template) != len(cfg.TemplateFreqs) {
		return fmt.Errorf("%w: %d template frequencies for %d bins", ErrInvalidInput, len(cfg.TemplateFreqs), len(cfg.Template))
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidInput, cfg.Width, cfg.Height)
	}
	return nil
}

func (cfg *ASDConfig) setDefaults() {
	if cfg.Width == 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = defaultHeight
	}
	if cfg.EffDistance == 0 {
		cfg.EffDistance = 1
	}
	if cfg.Title == "" {
		cfg.Title = cfg.Detector + " ASD"
	}
}
