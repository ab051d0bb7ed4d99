package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-ligo/dsp/window"
)

// Config holds the settings of one gwsonify run.
type Config struct {
	Catalog   string   `yaml:"catalog"`
	Event     string   `yaml:"event"`
	Detectors []string `yaml:"detectors"`
	OutputDir string   `yaml:"outputDir"`

	// ShiftHz moves the whitened sound up in frequency for audibility.
	ShiftHz float64 `yaml:"shiftHz"`
	// SegmentSeconds is the Welch segment length; segments overlap by half.
	SegmentSeconds float64 `yaml:"segmentSeconds"`
	Window         string  `yaml:"window"`
	// SoundSeconds is the half-width of the sound cut around the event.
	SoundSeconds float64 `yaml:"soundSeconds"`

	// Bandpass limits the sound to the band listed in the catalog.
	Bandpass bool `yaml:"bandpass"`
	// Template runs the catalog's waveform template through a matched
	// filter and overlays it on the ASD plot.
	Template bool `yaml:"template"`

	Plot    bool `yaml:"plot"`
	Workers int  `yaml:"workers"`
	Verbose bool `yaml:"verbose"`
}

// NewConfig returns the defaults.
func NewConfig() *Config {
	return &Config{
		Catalog:        "data/BBH_events_v3.json",
		Event:          "GW150914",
		OutputDir:      ".",
		ShiftHz:        400,
		SegmentSeconds: 4,
		Window:         "hann",
		SoundSeconds:   2,
		Bandpass:       true,
		Template:       true,
		Plot:           true,
		Workers:        2,
	}
}

// NewConfigFromArgs parses command-line arguments. A file given with
// -config is applied over the defaults first; flags set explicitly on the
// command line take precedence over the file.
func NewConfigFromArgs(args []string) (*Config, error) {
	def := NewConfig()
	fs := flag.NewFlagSet("gwsonify", flag.ContinueOnError)

	var (
		configPath string
		detectors  string
		flagged    = *def
	)
	fs.StringVar(&configPath, "config", "", "YAML configuration file")
	fs.StringVar(&flagged.Catalog, "catalog", def.Catalog, "Path to the event catalog JSON")
	fs.StringVar(&flagged.Event, "event", def.Event, "Event name in the catalog")
	fs.StringVar(&detectors, "detectors", "", "Comma-separated detectors (default: all in the catalog entry)")
	fs.StringVar(&flagged.OutputDir, "out", def.OutputDir, "Output directory")
	fs.Float64Var(&flagged.ShiftHz, "shift", def.ShiftHz, "Frequency shift of the sound in Hz")
	fs.Float64Var(&flagged.SegmentSeconds, "segment", def.SegmentSeconds, "Welch segment length in seconds")
	fs.StringVar(&flagged.Window, "window", def.Window, "Welch window [rectangular, hann, hamming, blackman, tukey]")
	fs.Float64Var(&flagged.SoundSeconds, "sound", def.SoundSeconds, "Seconds of sound on each side of the event")
	fs.BoolVar(&flagged.Bandpass, "bandpass", def.Bandpass, "Band-pass the whitened strain to the event's catalog band")
	fs.BoolVar(&flagged.Template, "template", def.Template, "Matched-filter the strain against the event's template")
	fs.BoolVar(&flagged.Plot, "plot", def.Plot, "Write an ASD plot per detector")
	fs.IntVar(&flagged.Workers, "workers", def.Workers, "Detectors processed concurrently")
	fs.BoolVar(&flagged.Verbose, "verbose", def.Verbose, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c := def
	if configPath != "" {
		loaded, err := LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "catalog":
			c.Catalog = flagged.Catalog
		case "event":
			c.Event = flagged.Event
		case "detectors":
			c.Detectors = splitList(detectors)
		case "out":
			c.OutputDir = flagged.OutputDir
		case "shift":
			c.ShiftHz = flagged.ShiftHz
		case "segment":
			c.SegmentSeconds = flagged.SegmentSeconds
		case "window":
			c.Window = flagged.Window
		case "sound":
			c.SoundSeconds = flagged.SoundSeconds
		case "bandpass":
			c.Bandpass = flagged.Bandpass
		case "template":
			c.Template = flagged.Template
		case "plot":
			c.Plot = flagged.Plot
		case "workers":
			c.Workers = flagged.Workers
		case "verbose":
			c.Verbose = flagged.Verbose
		}
	})

	if err := Validate(c); err != nil {
		fs.Usage()
		return nil, err
	}
	return c, nil
}

// LoadFile reads a YAML configuration over the defaults.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	c, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return c, nil
}

// LoadFromReader decodes YAML from r over the defaults. Unknown keys are
// rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	c := NewConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return c, nil
}

// Validate reports every invalid setting of c.
func Validate(c *Config) error {
	var errs []error

	if c.Catalog == "" {
		errs = append(errs, errors.New("catalog path is required"))
	}
	if c.Event == "" {
		errs = append(errs, errors.New("event name is required"))
	}
	for _, d := range c.Detectors {
		if d != "H1" && d != "L1" {
			errs = append(errs, fmt.Errorf("detector %q is invalid; valid values: H1, L1", d))
		}
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.SegmentSeconds <= 0 {
		errs = append(errs, fmt.Errorf("segment length %v must be > 0", c.SegmentSeconds))
	}
	if _, err := window.ParseType(c.Window); err != nil {
		errs = append(errs, err)
	}
	if c.SoundSeconds <= 0 {
		errs = append(errs, fmt.Errorf("sound half-width %v must be > 0", c.SoundSeconds))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers %d must be >= 1", c.Workers))
	}

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
