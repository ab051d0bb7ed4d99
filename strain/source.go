package strain

// Source gives the loader read access to the objects of a detector data
// container, addressed by slash-separated paths such as "strain/Strain".
type Source interface {
	// Has reports whether an object exists at path.
	Has(path string) bool
	// Len returns the element count of the dataset at path without
	// decoding its values.
	Len(path string) (int, error)
	// Float64s reads a numeric dataset as float64 values.
	Float64s(path string) ([]float64, error)
	// Ints reads an integer dataset.
	Ints(path string) ([]int64, error)
	// Strings reads a string dataset. Scalar datasets yield one element.
	Strings(path string) ([]string, error)
	// Attr reads a numeric attribute attached to the object at path.
	Attr(path, name string) (float64, error)
}

const (
	pathStrain   = "strain/Strain"
	attrSpacing  = "Xspacing"
	pathGPSStart = "meta/GPSstart"
	pathDuration = "meta/Duration"
	pathDetector = "meta/Detector"
	pathDQMask   = "quality/simple/DQmask"
	pathDQNames  = "quality/simple/DQShortnames"
	pathInjMask  = "quality/injections/Injmask"
	pathInjNames = "quality/injections/InjShortnames"
)
