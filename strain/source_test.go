package strain

import (
	"errors"
	"fmt"
	"maps"
)

var errNoObject = errors.New("no such object")

// memSource is an in-memory container laid out like a LOSC file.
type memSource struct {
	floats  map[string][]float64
	ints    map[string][]int64
	strings map[string][]string
	attrs   map[string]float64
}

// newMemSource builds a container with seconds*rate strain samples starting
// at GPS start. All DQ bits and all injection bits are set.
func newMemSource(start int64, seconds, rate int) *memSource {
	n := seconds * rate
	data := make([]float64, n)
	for i := range data {
		data[i] = 1e-21 * float64(i%17-8)
	}

	dq := make([]int64, seconds)
	inj := make([]int64, seconds)
	for i := range dq {
		dq[i] = 0x7f
		inj[i] = 0x1f
	}

	return &memSource{
		floats: map[string][]float64{
			pathStrain: data,
		},
		ints: map[string][]int64{
			pathGPSStart: {start},
			pathDuration: {int64(seconds)},
			pathDQMask:   dq,
			pathInjMask:  inj,
		},
		strings: map[string][]string{
			pathDetector: {"H1"},
			pathDQNames:  append([]string(nil), simpleShortNames...),
			pathInjNames: append([]string(nil), injectionShortNames...),
		},
		attrs: map[string]float64{
			pathStrain + "@" + attrSpacing: 1 / float64(rate),
		},
	}
}

func (m *memSource) clone() *memSource {
	c := &memSource{
		floats:  maps.Clone(m.floats),
		ints:    maps.Clone(m.ints),
		strings: maps.Clone(m.strings),
		attrs:   maps.Clone(m.attrs),
	}
	return c
}

func (m *memSource) remove(path string) {
	delete(m.floats, path)
	delete(m.ints, path)
	delete(m.strings, path)
}

func (m *memSource) Has(path string) bool {
	_, f := m.floats[path]
	_, i := m.ints[path]
	_, s := m.strings[path]
	return f || i || s
}

func (m *memSource) Len(path string) (int, error) {
	if v, ok := m.floats[path]; ok {
		return len(v), nil
	}
	if v, ok := m.ints[path]; ok {
		return len(v), nil
	}
	if v, ok := m.strings[path]; ok {
		return len(v), nil
	}
	return 0, fmt.Errorf("%s: %w", path, errNoObject)
}

func (m *memSource) Float64s(path string) ([]float64, error) {
	if v, ok := m.floats[path]; ok {
		return append([]float64(nil), v...), nil
	}
	if v, ok := m.ints[path]; ok {
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s: %w", path, errNoObject)
}

func (m *memSource) Ints(path string) ([]int64, error) {
	if v, ok := m.ints[path]; ok {
		return append([]int64(nil), v...), nil
	}
	return nil, fmt.Errorf("%s: %w", path, errNoObject)
}

func (m *memSource) Strings(path string) ([]string, error) {
	if v, ok := m.strings[path]; ok {
		if v == nil {
			return nil, fmt.Errorf("%s: undecodable", path)
		}
		return append([]string(nil), v...), nil
	}
	return nil, fmt.Errorf("%s: %w", path, errNoObject)
}

func (m *memSource) Attr(path, name string) (float64, error) {
	if v, ok := m.attrs[path+"@"+name]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%s@%s: %w", path, name, errNoObject)
}
