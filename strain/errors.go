package strain

import "errors"

var (
	// ErrNotFound is returned when the input file does not exist.
	ErrNotFound = errors.New("strain: file not found")

	// ErrFormat is returned for containers that are structurally invalid or
	// internally inconsistent.
	ErrFormat = errors.New("strain: invalid format")
)
