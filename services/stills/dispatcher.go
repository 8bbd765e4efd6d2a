package stills

import (
	"context"
	"fmt"
	"time"

	"github.com/ansel1/merry/v2"
	"github.com/bcc-code/bcc-media-stills/services/ffmpeg"
	"github.com/bcc-code/bcc-media-stills/timecode"
	"github.com/bcc-code/bcc-media-stills/utils"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=dispatcher.go -destination=mocks/extractor.go -package=mocks

// Extractor grabs a single frame from a video.
type Extractor interface {
	ExtractStill(ctx context.Context, input ffmpeg.StillInput) (*ffmpeg.StillResult, error)
}

// Job is one still to extract.
type Job struct {
	Index      int
	Timecode   string
	Runtime    string
	OutputPath string
}

type Result struct {
	Job
	Err      error
	Stderr   string
	Duration time.Duration
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Jobs builds one job per converted timecode, in order.
func Jobs(outputDir string, converted []timecode.Converted) []Job {
	jobs := make([]Job, len(converted))
	for i, c := range converted {
		jobs[i] = Job{
			Index:      c.Index,
			Timecode:   c.Raw,
			Runtime:    c.Runtime,
			OutputPath: ffmpeg.StillOutputPath(outputDir, c.Runtime),
		}
	}
	return jobs
}

// Dispatcher runs extraction jobs on a bounded pool.
type Dispatcher struct {
	Extractor   Extractor
	Concurrency int
	// Stdout receives one line per extracted still, Stderr one line per failure.
	Stdout zerolog.Logger
	Stderr zerolog.Logger
}

// Dispatch extracts a still for every converted timecode and waits for all of them.
// A failing job never stops the others. Results are in input order.
func (d *Dispatcher) Dispatch(ctx context.Context, videoPath, outputDir string, converted []timecode.Converted) []Result {
	jobs := Jobs(outputDir, converted)
	results := make([]Result, len(jobs))

	var g errgroup.Group
	g.SetLimit(max(1, d.Concurrency))

	for i, job := range jobs {
		g.Go(func() error {
			results[i] = d.run(ctx, videoPath, job)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (d *Dispatcher) run(ctx context.Context, videoPath string, job Job) Result {
	start := time.Now()
	err := d.extract(ctx, videoPath, job)
	result := Result{
		Job:      job,
		Err:      err,
		Stderr:   utils.Stderr(err),
		Duration: time.Since(start),
	}
	Observe(result.OK(), result.Duration)

	if result.OK() {
		d.Stdout.Info().
			Str("timecode", job.Timecode).
			Str("output", job.OutputPath).
			Msgf("Printed the preview image for %s", job.Runtime)
		return result
	}

	d.Stderr.Error().
		Err(err).
		Int("exit_code", utils.ExitCode(err)).
		Str("timecode", job.Timecode).
		Str("stderr", result.Stderr).
		Msgf("Oops, no preview image for %s", job.Runtime)
	return result
}

func (d *Dispatcher) extract(ctx context.Context, videoPath string, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = merry.New(fmt.Sprintf("extracting %s panicked: %v", job.Runtime, r))
		}
	}()

	_, err = d.Extractor.ExtractStill(ctx, ffmpeg.StillInput{
		FilePath:   videoPath,
		Timecode:   job.Runtime,
		OutputPath: job.OutputPath,
	})
	return err
}
