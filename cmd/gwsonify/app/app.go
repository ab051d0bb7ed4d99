package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-ligo/catalog"
	"github.com/cwbudde/algo-ligo/dsp/condition"
	"github.com/cwbudde/algo-ligo/dsp/core"
	"github.com/cwbudde/algo-ligo/dsp/match"
	"github.com/cwbudde/algo-ligo/dsp/psd"
	"github.com/cwbudde/algo-ligo/dsp/spectrum"
	"github.com/cwbudde/algo-ligo/dsp/window"
	"github.com/cwbudde/algo-ligo/plot"
	"github.com/cwbudde/algo-ligo/sonify"
	"github.com/cwbudde/algo-ligo/stats"
	"github.com/cwbudde/algo-ligo/strain"
)

// Run processes every configured detector of the event. Detectors run
// concurrently, at most cfg.Workers at a time; the first failure cancels the
// rest.
func Run(ctx context.Context, cfg *Config, logger *slog.Logger) error {
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return err
	}
	ev, err := cat.Event(cfg.Event)
	if err != nil {
		return err
	}

	detectors := cfg.Detectors
	if len(detectors) == 0 {
		detectors = ev.Detectors()
	}
	if len(detectors) == 0 {
		return fmt.Errorf("event %s lists no detector files", ev.Name)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var tpl *strain.Template
	if cfg.Template {
		if tpl, err = loadTemplate(cat, ev.Name, logger.With("event", ev.Name)); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, det := range detectors {
		g.Go(func() error {
			return processDetector(gctx, cfg, cat, ev, tpl, det, logger.With("event", ev.Name, "detector", det))
		})
	}
	return g.Wait()
}

// loadTemplate reads the event's waveform template. Events without a
// template, or whose template file is absent, yield nil.
func loadTemplate(cat *catalog.Catalog, event string, logger *slog.Logger) (*strain.Template, error) {
	path, err := cat.TemplatePath(event)
	if errors.Is(err, catalog.ErrNoTemplate) {
		logger.Info("no template listed, skipping matched filter")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tpl, err := strain.LoadTemplate(path)
	if errors.Is(err, strain.ErrNotFound) {
		logger.Warn("template file missing, skipping matched filter", "file", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	logger.Info("loaded template", "file", filepath.Base(path), "samples", humanize.Comma(int64(tpl.Len())))
	return tpl, nil
}

func processDetector(ctx context.Context, cfg *Config, cat *catalog.Catalog, ev catalog.Event, tpl *strain.Template, det string, logger *slog.Logger) error {
	path, err := cat.Path(ev.Name, det)
	if err != nil {
		return err
	}

	rec, err := strain.Load(path, det, strain.WithTimeVector(false), strain.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("loading %s: %w", det, err)
	}
	logger.Info("loaded strain",
		"file", filepath.Base(path),
		"samples", humanize.Comma(int64(len(rec.Strain))),
		"rate", humanize.SI(rec.SampleRate(), "Hz"),
		"seconds", rec.Duration(),
		"good_segments", len(rec.GoodSegments()))

	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := Condition(rec, ev.GPSTime, ev.Band, cfg)
	if err != nil {
		return fmt.Errorf("conditioning %s: %w", det, err)
	}
	logger.Info("conditioned strain",
		"whiteness", fmt.Sprintf("%.3f", res.Whiteness),
		"whiteness_db", fmt.Sprintf("%.2f", core.LinearPowerToDB(res.Whiteness)),
		"sound_samples", humanize.Comma(int64(len(res.Sound))),
		"shift", humanize.SI(cfg.ShiftHz, "Hz"),
		"shifted_peak", humanize.SI(res.ShiftedPeakHz, "Hz"))
	logger.Debug("sound statistics",
		"psd_bins", res.PSD.Len(),
		"variance", res.SoundStats.Variance,
		"kurtosis", res.SoundStats.Kurtosis,
		"crest", res.SoundStats.Crest)

	if tpl != nil {
		if res.Match, err = match.Filter(rec.Strain, tpl.Plus, tpl.Cross, res.PSD, rec.SampleRate()); err != nil {
			return fmt.Errorf("matching %s: %w", det, err)
		}
		logger.Info("matched template",
			"snr", fmt.Sprintf("%.2f", res.Match.SNRMax),
			"gps", fmt.Sprintf("%.4f", rec.Meta.Start+float64(res.Match.Peak)*rec.Meta.Dt),
			"eff_distance", fmt.Sprintf("%.3g", res.Match.EffDistance))
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	written, err := writeOutputs(cfg, ev.Name, rec, res)
	if err != nil {
		return fmt.Errorf("writing %s outputs: %w", det, err)
	}
	for _, name := range written {
		attrs := []any{"file", name}
		if fi, err := os.Stat(name); err == nil {
			attrs = append(attrs, "size", humanize.Bytes(uint64(fi.Size())))
		}
		logger.Info("wrote output", attrs...)
	}
	return nil
}

const (
	whitenessMinHz = 20
	bandpassOrder  = 4
)

// Result holds the conditioned data of one detector.
type Result struct {
	// PSD is the Welch estimate of the full recording.
	PSD *psd.Table
	// Whitened is the whole recording whitened against PSD.
	Whitened []float64
	// Sound is the whitened, band-passed strain around the event.
	Sound []float64
	// Shifted is Sound moved up by the configured shift.
	Shifted []float64
	// Whiteness is the spectral flatness of Whitened above 20 Hz; close to
	// 1 when the PSD estimate matches the noise.
	Whiteness float64
	// SoundStats summarises Sound.
	SoundStats stats.Summary
	// ShiftedPeakHz is the strongest frequency of Shifted.
	ShiftedPeakHz float64
	// Match is the matched filter output against the event template, nil
	// when no template was run.
	Match *match.Result
}

// Condition whitens rec against its own Welch PSD, band-passes the whitened
// strain to band when cfg.Bandpass is set and band is non-empty, cuts
// cfg.SoundSeconds on either side of eventTime and shifts the cut by
// cfg.ShiftHz. An event time outside the recording uses the whole recording.
func Condition(rec *strain.Recording, eventTime float64, band [2]float64, cfg *Config) (*Result, error) {
	fs := rec.SampleRate()

	wt, err := window.ParseType(cfg.Window)
	if err != nil {
		return nil, err
	}
	nfft := int(cfg.SegmentSeconds * fs)

	est, err := psd.Estimate(rec.Strain, fs,
		psd.WithSegmentLength(nfft),
		psd.WithOverlap(nfft/2),
		psd.WithWindow(wt))
	if err != nil {
		return nil, fmt.Errorf("estimating psd: %w", err)
	}

	white, err := condition.Whiten(rec.Strain, est, rec.Meta.Dt)
	if err != nil {
		return nil, fmt.Errorf("whitening: %w", err)
	}

	filtered := white
	if cfg.Bandpass && band[1] > band[0] && band[0] > 0 {
		filtered, err = condition.Bandpass(white, band[0], band[1], fs, bandpassOrder)
		if err != nil {
			return nil, fmt.Errorf("band-passing: %w", err)
		}
	}

	sound := filtered
	if eventTime >= rec.Meta.Start && eventTime < rec.Meta.Stop {
		whitened := *rec
		whitened.Strain = filtered
		sound, err = whitened.Slice(strain.Segment{
			Start: eventTime - cfg.SoundSeconds,
			Stop:  eventTime + cfg.SoundSeconds,
		})
		if err != nil {
			return nil, err
		}
	}

	shifted, err := condition.Shift(sound, cfg.ShiftHz, fs)
	if err != nil {
		return nil, fmt.Errorf("shifting: %w", err)
	}

	peak, err := spectrum.PeakFrequency(shifted, fs)
	if err != nil {
		return nil, fmt.Errorf("locating shifted peak: %w", err)
	}

	wf, wp, err := psd.Welch(white, fs, psd.WithSegmentLength(nfft), psd.WithOverlap(nfft/2), psd.WithWindow(wt))
	if err != nil {
		return nil, fmt.Errorf("estimating whitened psd: %w", err)
	}

	return &Result{
		PSD:           est,
		Whitened:      white,
		Sound:         sound,
		Shifted:       shifted,
		Whiteness:     stats.BandFlatness(wf, wp, whitenessMinHz, fs/2),
		SoundStats:    stats.Summarize(sound),
		ShiftedPeakHz: peak,
	}, nil
}

func writeOutputs(cfg *Config, event string, rec *strain.Recording, res *Result) ([]string, error) {
	fs := rec.SampleRate()
	prefix := filepath.Join(cfg.OutputDir, event+"_"+rec.Detector)

	var written []string

	whitened := prefix + "_whitened.wav"
	if err := sonify.WriteWAV(whitened, fs, res.Sound); err != nil {
		return written, err
	}
	written = append(written, whitened)

	shifted := prefix + "_shifted.wav"
	if err := sonify.WriteWAV(shifted, fs, res.Shifted); err != nil {
		return written, err
	}
	written = append(written, shifted)

	if !cfg.Plot {
		return written, nil
	}

	asd := prefix + "_ASD.png"
	pc := plot.ASDConfig{
		Path:       asd,
		Detector:   rec.Detector,
		Title:      fmt.Sprintf("%s ASD around %s", rec.Detector, event),
		SampleRate: fs,
		Freqs:      res.PSD.Frequencies(),
		PSD:        res.PSD.Densities(),
	}
	if m := res.Match; m != nil {
		pc.TemplateFreqs = m.Freqs
		pc.Template = m.TemplateFFT
		pc.EffDistance = m.EffDistance
	}
	if err := plot.ASDTemplate(pc); err != nil {
		return written, err
	}
	return append(written, asd), nil
}
