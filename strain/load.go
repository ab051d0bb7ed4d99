package strain

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/cwbudde/algo-ligo/dsp/core"
)

// Option configures [Load] and [LoadSource].
type Option func(*config)

type config struct {
	timeVector     bool
	strain         bool
	requireQuality bool
	logger         *slog.Logger
}

func defaultConfig() config {
	return config{
		timeVector: true,
		strain:     true,
		logger:     slog.New(slog.DiscardHandler),
	}
}

// WithTimeVector selects an [Expanded] time vector (true, the default) or
// the [Compact] metadata record (false).
func WithTimeVector(expand bool) Option {
	return func(c *config) {
		c.timeVector = expand
	}
}

// WithStrain selects whether strain samples are decoded (the default).
// Without strain only metadata and quality channels are returned.
func WithStrain(read bool) Option {
	return func(c *config) {
		c.strain = read
	}
}

// WithRequiredQuality makes a container without quality channels an error.
func WithRequiredQuality() Option {
	return func(c *config) {
		c.requireQuality = true
	}
}

// WithLogger sets the logger used to report recoverable oddities such as
// undecodable channel names.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Load reads the LOSC HDF5 file at path for the given detector label.
//
// It fails with [ErrNotFound] if path does not exist and with [ErrFormat]
// if the file lacks the strain or metadata of the detector, or if its
// contents are inconsistent.
func Load(path, detector string, opts ...Option) (*Recording, error) {
	src, err := open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	rec, err := LoadSource(src, detector, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// open maps a missing path to ErrNotFound and an unreadable container to
// ErrFormat.
func open(path string) (*HDF5File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("strain: stat %s: %w", path, err)
	}

	src, err := OpenHDF5(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrFormat, path, err)
	}
	return src, nil
}

// LoadSource runs the loader over an already opened container.
func LoadSource(src Source, detector string, opts ...Option) (*Recording, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	for _, p := range []string{pathStrain, pathGPSStart, pathDuration} {
		if !src.Has(p) {
			return nil, fmt.Errorf("%w: detector %s: missing %s", ErrFormat, detector, p)
		}
	}

	if err := checkDetector(src, detector, cfg.logger); err != nil {
		return nil, err
	}

	meta, err := readMeta(src)
	if err != nil {
		return nil, err
	}

	rec := &Recording{
		Detector: detector,
		Meta:     meta,
		Time:     meta,
	}

	count, err := src.Len(pathStrain)
	if err != nil {
		return nil, fmt.Errorf("%w: size of %s: %v", ErrFormat, pathStrain, err)
	}
	if want := meta.Len(); count != want {
		return nil, fmt.Errorf("%w: %d strain samples, but (stop-start)/dt = %d", ErrFormat, count, want)
	}

	if cfg.strain {
		data, err := src.Float64s(pathStrain)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrFormat, pathStrain, err)
		}
		if len(data) != count {
			return nil, fmt.Errorf("%w: read %d of %d strain samples", ErrFormat, len(data), count)
		}
		if i := core.FirstNonFinite(data); i >= 0 {
			return nil, fmt.Errorf("%w: strain sample %d is %v", ErrFormat, i, data[i])
		}
		rec.Strain = data
	}

	if cfg.timeVector {
		rec.Time = Expanded{Times: meta.Expand()}
	}

	rec.Quality, err = readQuality(src, meta, cfg.logger)
	if err != nil {
		return nil, err
	}
	if len(rec.Quality) == 0 && cfg.requireQuality {
		return nil, fmt.Errorf("%w: no quality channels", ErrFormat)
	}

	return rec, nil
}

func checkDetector(src Source, detector string, logger *slog.Logger) error {
	if detector == "" || !src.Has(pathDetector) {
		return nil
	}

	labels, err := src.Strings(pathDetector)
	if err != nil || len(labels) == 0 {
		logger.Warn("cannot decode detector label, skipping check", "path", pathDetector, "err", err)
		return nil
	}

	if got := strings.TrimSpace(labels[0]); got != detector {
		return fmt.Errorf("%w: file holds detector %s, requested %s", ErrFormat, got, detector)
	}
	return nil
}

func readMeta(src Source) (Compact, error) {
	dt, err := src.Attr(pathStrain, attrSpacing)
	if err != nil {
		return Compact{}, fmt.Errorf("%w: read %s@%s: %v", ErrFormat, pathStrain, attrSpacing, err)
	}

	start, err := readScalar(src, pathGPSStart)
	if err != nil {
		return Compact{}, err
	}
	duration, err := readScalar(src, pathDuration)
	if err != nil {
		return Compact{}, err
	}

	if !(dt > 0) || math.IsInf(dt, 0) {
		return Compact{}, fmt.Errorf("%w: sampling interval %v", ErrFormat, dt)
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return Compact{}, fmt.Errorf("%w: duration %v", ErrFormat, duration)
	}

	meta := Compact{Start: start, Stop: start + duration, Dt: dt}

	// The declared span must hold a whole number of samples.
	ratio := duration / dt
	if math.Abs(ratio-math.Round(ratio)) > 1e-6*math.Max(1, ratio) {
		return Compact{}, fmt.Errorf("%w: duration %v is not a multiple of dt %v", ErrFormat, duration, dt)
	}
	return meta, nil
}

func readScalar(src Source, path string) (float64, error) {
	v, err := src.Float64s(path)
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %v", ErrFormat, path, err)
	}
	if len(v) != 1 || !core.IsFinite(v[0]) {
		return 0, fmt.Errorf("%w: %s must be one finite number, got %v", ErrFormat, path, v)
	}
	return v[0], nil
}

func readQuality(src Source, meta Compact, logger *slog.Logger) (QualityChannels, error) {
	q := QualityChannels{}

	groups := []struct {
		mask, names string
		fallback    []string
	}{
		{mask: pathDQMask, names: pathDQNames, fallback: simpleShortNames},
		{mask: pathInjMask, names: pathInjNames, fallback: injectionShortNames},
	}

	for _, g := range groups {
		if !src.Has(g.mask) {
			continue
		}

		mask, err := src.Ints(g.mask)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrFormat, g.mask, err)
		}

		names := g.fallback
		if src.Has(g.names) {
			stored, err := src.Strings(g.names)
			if err == nil && len(stored) > 0 {
				names = trimAll(stored)
			} else {
				logger.Warn("cannot decode channel names, using LOSC defaults", "path", g.names, "err", err)
			}
		}

		decodeMask(q, mask, names)
	}

	if data, ok := q[DataChannel]; ok {
		q[DefaultChannel] = append([]int(nil), data...)
	}

	seconds := core.WholeSeconds(meta.Start, meta.Stop)
	for _, name := range q.Names() {
		if n := len(q[name]); n != seconds {
			return nil, fmt.Errorf("%w: quality channel %s has %d entries, duration is %d s", ErrFormat, name, n, seconds)
		}
	}

	return q, nil
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(strings.TrimRight(s, "\x00"))
	}
	return out
}
