package strain

import (
	"fmt"

	"github.com/cwbudde/algo-ligo/dsp/core"
)

const pathTemplate = "template"

// Template is a waveform template in its two polarisations, sampled like
// the strain it is matched against.
type Template struct {
	Plus  []float64
	Cross []float64
}

// LoadTemplate reads a LOSC template file, whose "template" dataset holds
// the plus and cross polarisations as a 2xN array.
func LoadTemplate(path string) (*Template, error) {
	src, err := open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tpl, err := TemplateFromSource(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tpl, nil
}

// TemplateFromSource reads the template dataset of src.
func TemplateFromSource(src Source) (*Template, error) {
	if !src.Has(pathTemplate) {
		return nil, fmt.Errorf("%w: missing %s", ErrFormat, pathTemplate)
	}

	data, err := src.Float64s(pathTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFormat, pathTemplate, err)
	}
	if len(data) < 2 || len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %s has %d values, want two equal rows", ErrFormat, pathTemplate, len(data))
	}
	if i := core.FirstNonFinite(data); i >= 0 {
		return nil, fmt.Errorf("%w: template value %d is %v", ErrFormat, i, data[i])
	}

	n := len(data) / 2
	return &Template{Plus: data[:n:n], Cross: data[n:]}, nil
}

// Len returns the number of samples per polarisation.
func (t *Template) Len() int { return len(t.Plus) }
