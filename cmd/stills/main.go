// Command stills writes a preview image for every artwork timecode of an editorial XML file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bcc-code/bcc-media-stills/analytics"
	"github.com/bcc-code/bcc-media-stills/environment"
	"github.com/bcc-code/bcc-media-stills/services/ffmpeg"
	"github.com/bcc-code/bcc-media-stills/services/stills"
	"github.com/bcc-code/bcc-media-stills/timecode"
	"github.com/bcc-code/bcc-media-stills/utils"
	"github.com/davecgh/go-spew/spew"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	_ = godotenv.Load()

	cfg, err := environment.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stills: %v\n", err)
		return 1
	}

	opts, err := parseFlags(args, cfg, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = zerolog.LevelDebugValue
	}
	stdout := utils.NewLogger(level, os.Stdout)
	stderr := utils.NewLogger(level, os.Stderr)

	err = opts.resolveInputs(utils.NewPrompter(os.Stdin, os.Stdout), isatty.IsTerminal(os.Stdin.Fd()))
	if err != nil {
		stderr.Error().Err(err).Msg("Usage: stills [flags] <video> <xml>")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RudderstackWriteKey != "" {
		analytics.Init(analytics.Config{
			WriteKey:  cfg.RudderstackWriteKey,
			DataPlane: cfg.RudderstackDataPlane,
			Verbose:   opts.Verbose,
		})
		defer analytics.GetService().Close()
	}

	if opts.Temporal {
		return runWorkflow(ctx, cfg, opts, stdout, stderr)
	}
	return runLocal(ctx, cfg, opts, stdout, stderr)
}

func runLocal(ctx context.Context, cfg environment.Config, opts options, stdout, stderr zerolog.Logger) int {
	params := stills.Params{
		VideoPath:  opts.VideoPath,
		XMLPath:    opts.XMLPath,
		OutputDir:  opts.OutputDir,
		DropFrame:  opts.DropFrame,
		ReportPath: opts.ReportPath,
	}
	if opts.Rate != "" {
		rate, err := timecode.ParseRate(opts.Rate)
		if err != nil {
			stderr.Error().Err(err).Msg("Oops, something went wrong")
			return 1
		}
		params.Rate = &rate
	}

	runner := &stills.Runner{
		Probe: func(ctx context.Context, path string) (*ffmpeg.FFProbeResult, error) {
			return ffmpeg.ProbeFile(ctx, cfg.FFprobePath, path)
		},
		Dispatcher: &stills.Dispatcher{
			Extractor:   ffmpeg.NewStillExtractor(cfg.FFmpegPath),
			Concurrency: opts.Concurrency,
			Stdout:      stdout,
			Stderr:      stderr,
		},
		Log: stdout,
	}

	summary, err := runner.Run(ctx, params)
	if opts.Verbose && summary != nil && summary.Probe != nil {
		spew.Fdump(os.Stdout, summary.Probe.Streams)
	}
	if err != nil {
		stderr.Error().Err(err).Msg("Oops, something went wrong")
		return 1
	}

	analytics.GetService().StillsExtracted(summary.RunID, len(summary.Results), summary.Failed(), summary.Rate.Value)

	if summary.Failed() > 0 {
		return 1
	}
	return 0
}
