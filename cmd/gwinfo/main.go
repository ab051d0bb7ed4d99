// Command gwinfo prints the metadata and data-quality summary of LOSC strain
// files without decoding the strain itself.
//
// Usage:
//
//	gwinfo [flags] file.hdf5 ...
//
// The detector of each file is taken from its LOSC name
// (H-H1_LOSC_4_V2-1126259446-32.hdf5 is H1) unless -detector is given.
//
// Examples:
//
//	gwinfo data/H-H1_LOSC_4_V2-1126259446-32.hdf5
//	gwinfo -segments -channel CBC_CAT2 data/*.hdf5
//	gwinfo -channels data/L-L1_LOSC_4_V2-1126259446-32.hdf5
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cwbudde/algo-ligo/strain"
)

func main() {
	detector := flag.String("detector", "", "detector label for every file (default: from the file name)")
	channel := flag.String("channel", strain.DefaultChannel, "quality channel used for good-data seconds and segments")
	segments := flag.Bool("segments", false, "list the segments where the channel is set")
	channels := flag.Bool("channels", false, "list the quality channels of each file")
	verbose := flag.Bool("verbose", false, "log undecodable channel names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gwinfo [flags] file.hdf5 ...\n\n")
		fmt.Fprintf(os.Stderr, "Prints duration, sampling and data-quality summary of LOSC strain files.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gwinfo data/H-H1_LOSC_4_V2-1126259446-32.hdf5\n")
		fmt.Fprintf(os.Stderr, "  gwinfo -segments -channel CBC_CAT2 data/*.hdf5\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var infos []fileInfo
	failed := false
	for _, path := range flag.Args() {
		det := *detector
		if det == "" {
			det = detectorFromName(path)
		}

		rec, err := strain.Load(path, det,
			strain.WithStrain(false),
			strain.WithTimeVector(false),
			strain.WithLogger(logger.With("file", path)))
		if err != nil {
			logger.Error(err.Error())
			failed = true
			continue
		}
		infos = append(infos, summarize(path, rec, *channel))
	}

	if err := printSummary(os.Stdout, infos); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *channels {
		printChannels(os.Stdout, infos)
	}
	if *segments {
		printSegments(os.Stdout, infos)
	}
	if failed {
		os.Exit(1)
	}
}

type fileInfo struct {
	name     string
	rec      *strain.Recording
	channel  string
	segments []strain.Segment
	// good is -1 when the channel is absent.
	good int
}

func summarize(path string, rec *strain.Recording, channel string) fileInfo {
	info := fileInfo{name: filepath.Base(path), rec: rec, channel: channel, good: -1}
	if segs, ok := rec.Quality.Segments(channel, rec.Meta.Start); ok {
		info.segments = segs
		info.good = 0
		for _, s := range segs {
			info.good += int(s.Duration())
		}
	}
	return info
}

// detectorFromName extracts the detector of a LOSC file name such as
// H-H1_LOSC_4_V2-1126259446-32.hdf5. It returns "" when the name does not
// follow that pattern, which disables the label check.
func detectorFromName(path string) string {
	base := filepath.Base(path)
	_, rest, ok := strings.Cut(base, "-")
	if !ok {
		return ""
	}
	det, _, ok := strings.Cut(rest, "_")
	if !ok || len(det) != 2 {
		return ""
	}
	return det
}

func printSummary(w io.Writer, infos []fileInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "File\tDetector\tGPS Start\tDuration\tRate\tSamples\tGood [s]\tSegments\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "----\t--------\t---------\t--------\t----\t-------\t--------\t--------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, info := range infos {
		rec := info.rec
		good := "-"
		if info.good >= 0 {
			good = fmt.Sprintf("%d/%d", info.good, rec.Seconds())
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.0f\t%s\t%s\t%s\t%s\t%d\n",
			info.name,
			orDash(rec.Detector),
			rec.Meta.Start,
			time.Duration(rec.Duration()*float64(time.Second)),
			humanize.SI(rec.SampleRate(), "Hz"),
			humanize.Comma(int64(rec.Meta.Len())),
			good,
			len(info.segments),
		); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	return tw.Flush()
}

func printChannels(w io.Writer, infos []fileInfo) {
	for _, info := range infos {
		fmt.Fprintf(w, "\n%s channels:\n", info.name)
		for _, name := range info.rec.Quality.Names() {
			flags := info.rec.Quality[name]
			set := 0
			for _, f := range flags {
				if f != 0 {
					set++
				}
			}
			fmt.Fprintf(w, "  %-20s %d/%d s\n", name, set, len(flags))
		}
	}
}

func printSegments(w io.Writer, infos []fileInfo) {
	for _, info := range infos {
		fmt.Fprintf(w, "\n%s %s segments:\n", info.name, info.channel)
		if info.good < 0 {
			fmt.Fprintf(w, "  channel not present\n")
			continue
		}
		for _, s := range info.segments {
			fmt.Fprintf(w, "  [%.0f, %.0f) %s\n", s.Start, s.Stop, time.Duration(s.Duration()*float64(time.Second)))
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
