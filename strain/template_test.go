package strain

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"gonum.org/v1/hdf5"

	"github.com/cwbudde/algo-ligo/internal/testutil"
)

func writeTemplate(t *testing.T, path string, plus, cross []float64) {
	t.Helper()

	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	space, err := hdf5.CreateSimpleDataspace([]uint{2, uint(len(plus))}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer space.Close()

	ds, err := f.CreateDataset(pathTemplate, hdf5.T_NATIVE_DOUBLE, space)
	if err != nil {
		t.Fatal(err)
	}
	defer ds.Close()

	rows := append(append([]float64(nil), plus...), cross...)
	if err := ds.Write(&rows); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.hdf5")
	plus := testutil.DeterministicSine(50, 4096, 1e-21, 512)
	cross := testutil.DeterministicSine(80, 4096, 2e-21, 512)
	writeTemplate(t, path, plus, cross)

	tpl, err := LoadTemplate(path)
	if err != nil {
		t.Fatal(err)
	}
	if tpl.Len() != 512 {
		t.Fatalf("Len=%d, want 512", tpl.Len())
	}
	testutil.RequireSliceNearlyEqual(t, tpl.Plus, plus, 0)
	testutil.RequireSliceNearlyEqual(t, tpl.Cross, cross, 0)
}

func TestLoadTemplateMissing(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "absent.hdf5"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestTemplateFromSource(t *testing.T) {
	m := &memSource{floats: map[string][]float64{
		pathTemplate: {1, 2, 3, 4, 5, 6},
	}}

	tpl, err := TemplateFromSource(m)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, tpl.Plus, []float64{1, 2, 3}, 0)
	testutil.RequireSliceNearlyEqual(t, tpl.Cross, []float64{4, 5, 6}, 0)

	// Growing Plus must not overwrite Cross.
	tpl.Plus = append(tpl.Plus, 99)
	if tpl.Cross[0] != 4 {
		t.Fatalf("Cross[0]=%v after append to Plus", tpl.Cross[0])
	}
}

func TestTemplateFromSourceErrors(t *testing.T) {
	tests := []struct {
		name   string
		floats map[string][]float64
	}{
		{"missing", map[string][]float64{}},
		{"empty", map[string][]float64{pathTemplate: {}}},
		{"odd length", map[string][]float64{pathTemplate: {1, 2, 3}}},
		{"non-finite", map[string][]float64{pathTemplate: {1, math.NaN(), 3, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TemplateFromSource(&memSource{floats: tt.floats})
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("err=%v, want ErrFormat", err)
			}
		})
	}
}
