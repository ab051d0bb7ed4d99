package strain

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/hdf5"
)

var errUnsupportedType = errors.New("strain: unsupported hdf5 datatype")

// HDF5File is a [Source] backed by an HDF5 file opened read-only.
type HDF5File struct {
	f *hdf5.File
}

// OpenHDF5 opens path for reading. The caller must Close the file.
func OpenHDF5(path string) (*HDF5File, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	return &HDF5File{f: f}, nil
}

// Close releases the file handle.
func (h *HDF5File) Close() error {
	return h.f.Close()
}

// Has reports whether every link along path exists.
func (h *HDF5File) Has(path string) bool {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i := range parts {
		if !h.f.LinkExists(strings.Join(parts[:i+1], "/")) {
			return false
		}
	}
	return true
}

// Len returns the number of elements of the dataset at path without
// reading its data.
func (h *HDF5File) Len(path string) (int, error) {
	ds, err := h.f.OpenDataset(path)
	if err != nil {
		return 0, err
	}
	defer ds.Close()

	space := ds.Space()
	defer space.Close()

	return space.SimpleExtentNPoints(), nil
}

// Float64s reads an integer or floating-point dataset.
func (h *HDF5File) Float64s(path string) ([]float64, error) {
	var out []float64
	err := h.read(path, func(ds *hdf5.Dataset, dtype *hdf5.Datatype, n int) error {
		switch dtype.Class() {
		case hdf5.T_FLOAT:
			v, err := readFloats(ds, dtype, n)
			out = v
			return err
		case hdf5.T_INTEGER:
			v, err := readInts(ds, dtype, n)
			if err != nil {
				return err
			}
			out = make([]float64, n)
			for i, x := range v {
				out[i] = float64(x)
			}
			return nil
		}
		return errUnsupportedType
	})
	return out, err
}

// Ints reads an integer dataset.
func (h *HDF5File) Ints(path string) ([]int64, error) {
	var out []int64
	err := h.read(path, func(ds *hdf5.Dataset, dtype *hdf5.Datatype, n int) error {
		if dtype.Class() != hdf5.T_INTEGER {
			return errUnsupportedType
		}
		v, err := readInts(ds, dtype, n)
		out = v
		return err
	})
	return out, err
}

// Strings reads a fixed-length string dataset. Trailing NUL padding is
// removed. Variable-length strings are not supported.
func (h *HDF5File) Strings(path string) ([]string, error) {
	var out []string
	err := h.read(path, func(ds *hdf5.Dataset, dtype *hdf5.Datatype, n int) error {
		size := dtype.Size()
		if dtype.Class() != hdf5.T_STRING || size == 0 {
			return errUnsupportedType
		}
		raw := make([]byte, int(size)*n)
		if err := ds.Read(&raw); err != nil {
			return err
		}
		out = make([]string, n)
		for i := range out {
			s := strings.TrimRight(string(raw[i*int(size):(i+1)*int(size)]), "\x00 ")
			if !printable(s) {
				return fmt.Errorf("%w: entry %d is not a fixed-length string", errUnsupportedType, i)
			}
			out[i] = s
		}
		return nil
	})
	return out, err
}

// Attr reads a numeric attribute of the dataset at path.
func (h *HDF5File) Attr(path, name string) (float64, error) {
	ds, err := h.f.OpenDataset(path)
	if err != nil {
		return 0, err
	}
	defer ds.Close()

	attr, err := ds.OpenAttribute(name)
	if err != nil {
		return 0, err
	}
	defer attr.Close()

	var v float64
	if err := attr.Read(&v, hdf5.T_NATIVE_DOUBLE); err != nil {
		return 0, err
	}
	return v, nil
}

type readFunc func(ds *hdf5.Dataset, dtype *hdf5.Datatype, n int) error

// read opens the dataset at path and hands its stored type to fn.
// Dataset.Read uses the stored type as the memory type, so numeric
// datasets are only read into Go buffers when the stored type equals the
// matching native type.
func (h *HDF5File) read(path string, fn readFunc) error {
	ds, err := h.f.OpenDataset(path)
	if err != nil {
		return err
	}
	defer ds.Close()

	dtype, err := ds.Datatype()
	if err != nil {
		return err
	}
	defer dtype.Close()

	space := ds.Space()
	defer space.Close()

	n := space.SimpleExtentNPoints()
	if n <= 0 {
		return fmt.Errorf("strain: %s is empty", path)
	}

	if err := fn(ds, dtype, n); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func readFloats(ds *hdf5.Dataset, dtype *hdf5.Datatype, n int) ([]float64, error) {
	switch {
	case dtype.Equal(hdf5.T_NATIVE_DOUBLE):
		buf := make([]float64, n)
		return buf, ds.Read(&buf)
	case dtype.Equal(hdf5.T_NATIVE_FLOAT):
		buf := make([]float32, n)
		if err := ds.Read(&buf); err != nil {
			return nil, err
		}
		return widen(buf, func(v float32) float64 { return float64(v) }), nil
	}
	return nil, fmt.Errorf("%w: float of %d bytes is not a native type", errUnsupportedType, dtype.Size())
}

func readInts(ds *hdf5.Dataset, dtype *hdf5.Datatype, n int) ([]int64, error) {
	switch {
	case dtype.Equal(hdf5.T_NATIVE_INT64):
		out := make([]int64, n)
		return out, ds.Read(&out)
	case dtype.Equal(hdf5.T_NATIVE_INT32):
		return readWidened[int32](ds, n)
	case dtype.Equal(hdf5.T_NATIVE_UINT32):
		return readWidened[uint32](ds, n)
	case dtype.Equal(hdf5.T_NATIVE_INT16):
		return readWidened[int16](ds, n)
	case dtype.Equal(hdf5.T_NATIVE_UINT16):
		return readWidened[uint16](ds, n)
	case dtype.Equal(hdf5.T_NATIVE_INT8):
		return readWidened[int8](ds, n)
	case dtype.Equal(hdf5.T_NATIVE_UINT8):
		return readWidened[uint8](ds, n)
	}
	return nil, fmt.Errorf("%w: integer of %d bytes is not a native type", errUnsupportedType, dtype.Size())
}

type narrowInt interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32
}

func readWidened[T narrowInt](ds *hdf5.Dataset, n int) ([]int64, error) {
	buf := make([]T, n)
	if err := ds.Read(&buf); err != nil {
		return nil, err
	}
	return widen(buf, func(v T) int64 { return int64(v) }), nil
}

func widen[T, U any](in []T, conv func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = conv(v)
	}
	return out
}

func printable(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return false
		}
	}
	return true
}
