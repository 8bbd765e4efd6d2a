package activities

import (
	"context"
	"os"
	"time"

	"github.com/ansel1/merry/v2"
	"github.com/bcc-code/bcc-media-stills/common"
	"github.com/bcc-code/bcc-media-stills/common/artwork"
	"github.com/bcc-code/bcc-media-stills/environment"
	"github.com/bcc-code/bcc-media-stills/services/ffmpeg"
	"github.com/bcc-code/bcc-media-stills/services/stills"
	"github.com/bcc-code/bcc-media-stills/utils"
	"github.com/cbsinteractive/pkg/video"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

type StillActivities struct{}

var Stills = StillActivities{}

// nonRetryable marks errors that will fail the same way on every attempt.
func nonRetryable(err error) error {
	if err == nil || !common.Fatal(err) {
		return err
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), "STILLS_FATAL", err)
}

type ProbeFrameRateInput struct {
	FilePath string
}

type ProbeFrameRateResult struct {
	FPS      int
	Duration float64
	Exact    video.Framerate
	Stream   int
}

// ProbeFrameRate runs ffprobe on the file and resolves the frame rate of its video stream.
func (StillActivities) ProbeFrameRate(ctx context.Context, input ProbeFrameRateInput) (*ProbeFrameRateResult, error) {
	log := activity.GetLogger(ctx)
	log.Info("Starting ProbeFrameRate", "file", input.FilePath)

	if _, err := os.Stat(input.FilePath); err != nil {
		return nil, nonRetryable(merry.Wrap(common.ErrIO, merry.WithMessagef("video %s: %s", input.FilePath, err), merry.WithCause(err)))
	}

	info, err := ffmpeg.ProbeFile(ctx, environment.GetFFprobePath(), input.FilePath)
	if err != nil {
		return nil, err
	}

	rate, err := ffmpeg.ResolveFrameRate(info)
	if err != nil {
		return nil, nonRetryable(err)
	}

	return &ProbeFrameRateResult{
		FPS:      rate.FPS,
		Duration: info.DurationSeconds(),
		Exact:    rate.Exact,
		Stream:   rate.Stream,
	}, nil
}

type ScanTimecodesInput struct {
	XMLPath string
}

func (StillActivities) ScanTimecodes(ctx context.Context, input ScanTimecodesInput) ([]string, error) {
	activity.GetLogger(ctx).Info("Starting ScanTimecodes", "file", input.XMLPath)

	timecodes, err := artwork.ScanFile(input.XMLPath)
	if err != nil {
		return nil, nonRetryable(err)
	}
	return timecodes, nil
}

type CreateOutputDirInput struct {
	Path string
}

func (StillActivities) CreateOutputDir(_ context.Context, input CreateOutputDirInput) (any, error) {
	err := os.MkdirAll(input.Path, 0o755)
	if err != nil {
		return nil, merry.Wrap(common.ErrIO, merry.WithMessagef("couldn't create %s: %s", input.Path, err), merry.WithCause(err))
	}
	return nil, nil
}

type ExtractStillInput struct {
	FilePath  string
	Timecode  string
	OutputDir string
}

// ExtractStillResult reports the outcome of one extraction. Error is empty on success.
type ExtractStillResult struct {
	OutputPath string
	Error      string
	Stderr     string
}

// ExtractStill grabs the frame at input.Timecode. ffmpeg failures are returned in the result so the
// workflow can report them without the activity being retried.
func (StillActivities) ExtractStill(ctx context.Context, input ExtractStillInput) (*ExtractStillResult, error) {
	activity.RecordHeartbeat(ctx, input.Timecode)

	stop := simpleHeartBeater(ctx)
	defer close(stop)

	start := time.Now()
	outputPath := ffmpeg.StillOutputPath(input.OutputDir, input.Timecode)
	_, err := ffmpeg.NewStillExtractor(environment.GetFFmpegPath()).ExtractStill(ctx, ffmpeg.StillInput{
		FilePath:   input.FilePath,
		Timecode:   input.Timecode,
		OutputPath: outputPath,
	})

	stills.Observe(err == nil, time.Since(start))

	result := &ExtractStillResult{OutputPath: outputPath}
	if err != nil {
		activity.GetLogger(ctx).Error("Oops, no preview image", "timecode", input.Timecode, "error", err, "exit_code", utils.ExitCode(err))
		result.Error = err.Error()
		result.Stderr = utils.Stderr(err)
	}
	return result, nil
}
