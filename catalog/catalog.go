// Package catalog reads the LOSC event catalog that maps event names to the
// per-detector strain files and the event parameters used to condition them.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
)

var (
	// ErrUnknownEvent is returned for event names absent from the catalog.
	ErrUnknownEvent = errors.New("catalog: unknown event")

	// ErrUnknownDetector is returned when an event lists no file for a detector.
	ErrUnknownDetector = errors.New("catalog: no file for detector")

	// ErrNoTemplate is returned for events without a waveform template.
	ErrNoTemplate = errors.New("catalog: no template")
)

// Event is one catalog entry. File names are relative to the catalog file.
type Event struct {
	Name       string     `json:"name"`
	FileH1     string     `json:"fn_H1"`
	FileL1     string     `json:"fn_L1"`
	Template   string     `json:"fn_template"`
	SampleRate float64    `json:"fs"`
	GPSTime    float64    `json:"tevent"`
	UTC        string     `json:"utcevent"`
	Band       [2]float64 `json:"fband"`
	MinFreq    float64    `json:"f_min"`
	Mass1      float64    `json:"m1"`
	Mass2      float64    `json:"m2"`
	Approx     string     `json:"approx"`
}

// File returns the strain file name recorded for detector ("H1" or "L1").
func (e Event) File(detector string) (string, error) {
	var name string
	switch detector {
	case "H1":
		name = e.FileH1
	case "L1":
		name = e.FileL1
	}
	if name == "" {
		return "", fmt.Errorf("%w: %s has none for %q", ErrUnknownDetector, e.Name, detector)
	}
	return name, nil
}

// Detectors returns the detectors the event has files for.
func (e Event) Detectors() []string {
	var out []string
	if e.FileH1 != "" {
		out = append(out, "H1")
	}
	if e.FileL1 != "" {
		out = append(out, "L1")
	}
	return out
}

// Catalog is a set of events read from one JSON file.
type Catalog struct {
	// Dir is the directory file names are resolved against.
	Dir    string
	events map[string]Event
}

// Load reads the catalog at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Dir = filepath.Dir(path)
	return c, nil
}

// Parse decodes a catalog from r. Entries without a "name" field take the
// name of their key.
func Parse(r io.Reader) (*Catalog, error) {
	var raw map[string]Event
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("catalog: no events")
	}

	for key, ev := range raw {
		if ev.Name == "" {
			ev.Name = key
			raw[key] = ev
		}
	}
	return &Catalog{events: raw}, nil
}

// Names returns the event names in sorted order.
func (c *Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c.events))
}

// Event looks up an event by name.
func (c *Catalog) Event(name string) (Event, error) {
	ev, ok := c.events[name]
	if !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
	return ev, nil
}

// Path returns the strain file of event for detector, joined with Dir.
func (c *Catalog) Path(event, detector string) (string, error) {
	ev, err := c.Event(event)
	if err != nil {
		return "", err
	}
	name, err := ev.File(detector)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.Dir, name), nil
}

// TemplatePath returns the waveform template file of event, joined with Dir.
func (c *Catalog) TemplatePath(event string) (string, error) {
	ev, err := c.Event(event)
	if err != nil {
		return "", err
	}
	if ev.Template == "" {
		return "", fmt.Errorf("%w: %s", ErrNoTemplate, ev.Name)
	}
	return filepath.Join(c.Dir, ev.Template), nil
}
