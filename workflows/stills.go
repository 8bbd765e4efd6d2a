package workflows

import (
	"github.com/bcc-code/bcc-media-stills/activities"
	"github.com/bcc-code/bcc-media-stills/environment"
	"github.com/bcc-code/bcc-media-stills/services/ffmpeg"
	"github.com/bcc-code/bcc-media-stills/timecode"
	wfutils "github.com/bcc-code/bcc-media-stills/utils/workflows"
	"github.com/samber/lo"
	"go.temporal.io/sdk/workflow"
)

// ExtractStillsParams is the input to the ExtractStills workflow
type ExtractStillsParams struct {
	VideoPath   string
	XMLPath     string
	OutputDir   string
	Concurrency int
	DropFrame   bool
	// Rate is one of timecode.Rates, empty to use the probed frame rate.
	Rate string
}

type StillOutcome struct {
	Timecode   string
	Runtime    string
	OutputPath string
	Error      string
	Stderr     string
}

type ExtractStillsResult struct {
	FPS       int
	Rate      string
	Timecodes []string
	Stills    []StillOutcome
	Failed    int
}

// ExtractStills grabs one still per artwork timecode in the XML file from the video.
func ExtractStills(ctx workflow.Context, params ExtractStillsParams) (*ExtractStillsResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting ExtractStills")

	options := wfutils.GetDefaultActivityOptions()
	ctx = workflow.WithActivityOptions(ctx, options)

	if params.OutputDir == "" {
		params.OutputDir = environment.DefaultOutputDir
	}

	converter := timecode.Converter{DropFrame: params.DropFrame}
	if params.Rate != "" {
		rate, err := timecode.ParseRate(params.Rate)
		if err != nil {
			return nil, err
		}
		converter.Override = &rate
	}

	probe, err := wfutils.Execute(ctx, activities.Stills.ProbeFrameRate, activities.ProbeFrameRateInput{
		FilePath: params.VideoPath,
	}).Result(ctx)
	if err != nil {
		if converter.Override == nil {
			return nil, err
		}
		logger.Warn("Probe failed, continuing with the given rate", "rate", converter.Override.Value, "error", err)
		probe = &activities.ProbeFrameRateResult{}
	}

	timecodes, err := wfutils.Execute(ctx, activities.Stills.ScanTimecodes, activities.ScanTimecodesInput{
		XMLPath: params.XMLPath,
	}).Result(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("Found artwork timecodes", "timecodes", timecodes)

	rate, err := converter.Rate(probe.FPS)
	if err != nil {
		return nil, err
	}
	converted, err := converter.Convert(timecodes, probe.FPS)
	if err != nil {
		return nil, err
	}

	err = wfutils.Execute(ctx, activities.Stills.CreateOutputDir, activities.CreateOutputDirInput{
		Path: params.OutputDir,
	}).Wait(ctx)
	if err != nil {
		return nil, err
	}

	stills := make([]StillOutcome, len(converted))
	selector := workflow.NewSelector(ctx)
	limit := max(1, params.Concurrency)
	running := 0

	for i, c := range converted {
		if running >= limit {
			selector.Select(ctx)
			running--
		}

		stills[i] = StillOutcome{
			Timecode:   c.Raw,
			Runtime:    c.Runtime,
			OutputPath: ffmpeg.StillOutputPath(params.OutputDir, c.Runtime),
		}

		future := wfutils.Execute(ctx, activities.Stills.ExtractStill, activities.ExtractStillInput{
			FilePath:  params.VideoPath,
			Timecode:  c.Runtime,
			OutputDir: params.OutputDir,
		})
		selector.AddFuture(future.Future, func(f workflow.Future) {
			var result activities.ExtractStillResult
			err := f.Get(ctx, &result)
			if err != nil {
				stills[i].Error = err.Error()
				return
			}
			stills[i].Error = result.Error
			stills[i].Stderr = result.Stderr
		})
		running++
	}

	for ; running > 0; running-- {
		selector.Select(ctx)
	}

	failed := lo.CountBy(stills, func(s StillOutcome) bool { return s.Error != "" })
	logger.Info("Finished ExtractStills", "stills", len(stills), "failed", failed)

	return &ExtractStillsResult{
		FPS:       probe.FPS,
		Rate:      rate.Value,
		Timecodes: timecodes,
		Stills:    stills,
		Failed:    failed,
	}, nil
}
