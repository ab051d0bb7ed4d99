// Command gwsonify turns the strain around a catalogued gravitational-wave
// event into audio. For every detector it estimates the noise PSD, whitens
// the strain, cuts a few seconds around the event and writes the whitened
// and frequency-shifted sound as WAV files, optionally with an ASD plot.
//
// Usage:
//
//	gwsonify -catalog data/BBH_events_v3.json -event GW150914 -out sounds
//	gwsonify -config gwsonify.yaml -shift 300
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-ligo/cmd/gwsonify/app"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	config, err := app.NewConfigFromArgs(os.Args[1:])
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	if config.Verbose {
		level.Set(slog.LevelDebug)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err = app.Run(ctx, config, logger); err != nil {
		logger.Error(err.Error())

		cancel()
		os.Exit(1)
	}
}
