package stills

import (
	"context"
	"math/big"
	"os"

	"github.com/ansel1/merry/v2"
	"github.com/bcc-code/bcc-media-stills/common"
	"github.com/bcc-code/bcc-media-stills/common/artwork"
	"github.com/bcc-code/bcc-media-stills/services/ffmpeg"
	"github.com/bcc-code/bcc-media-stills/timecode"
	tcrange "github.com/cbsinteractive/pkg/timecode"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

type Params struct {
	VideoPath string
	XMLPath   string
	OutputDir string
	DropFrame bool
	// Rate replaces the rate derived from the probed frame rate.
	Rate       *timecode.Rate
	ReportPath string
}

type ProbeFunc func(ctx context.Context, path string) (*ffmpeg.FFProbeResult, error)

type Summary struct {
	RunID     string
	Probe     *ffmpeg.FFProbeResult
	FrameRate ffmpeg.ResolvedRate
	Rate      timecode.Rate
	Timecodes []string
	Converted []timecode.Converted
	Results   []Result
	Warnings  []string
}

// Failed is the number of stills that could not be extracted.
func (s *Summary) Failed() int {
	return lo.CountBy(s.Results, func(r Result) bool { return !r.OK() })
}

// Runner runs probe, scan, convert and extraction for one video.
type Runner struct {
	Probe      ProbeFunc
	Dispatcher *Dispatcher
	Log        zerolog.Logger
}

// Run extracts one still per artwork timecode in params.XMLPath.
//
// Probe, scan and conversion errors are returned before anything is extracted. Failed extractions
// are reported in Summary.Results and never returned as an error.
func (r *Runner) Run(ctx context.Context, params Params) (*Summary, error) {
	summary := &Summary{RunID: uuid.NewString()}
	log := r.Log.With().Str("run", summary.RunID).Logger()

	if _, err := os.Stat(params.VideoPath); err != nil {
		return summary, merry.Wrap(common.ErrIO, merry.WithMessagef("video %s: %s", params.VideoPath, err), merry.WithCause(err))
	}

	info, err := r.Probe(ctx, params.VideoPath)
	if err != nil {
		if params.Rate == nil {
			return summary, err
		}
		log.Warn().Err(err).Msg("Probe failed, continuing with the given rate")
	}
	summary.Probe = info

	if info != nil {
		resolved, err := ffmpeg.ResolveFrameRate(info)
		if err != nil {
			if params.Rate == nil {
				return summary, err
			}
			log.Warn().Err(err).Msg("Couldn't resolve the frame rate, continuing with the given rate")
		}
		summary.FrameRate = resolved
		log.Debug().Int("fps", resolved.FPS).Int("stream", resolved.Stream).Msg("Resolved frame rate")
	}

	summary.Timecodes, err = artwork.ScanFile(params.XMLPath)
	if err != nil {
		return summary, err
	}
	log.Info().Strs("timecodes", summary.Timecodes).Msgf("Found %d artwork timecodes", len(summary.Timecodes))

	converter := timecode.Converter{DropFrame: params.DropFrame, Override: params.Rate}
	summary.Rate, err = converter.Rate(summary.FrameRate.FPS)
	if err != nil {
		return summary, err
	}
	summary.Converted, err = converter.Convert(summary.Timecodes, summary.FrameRate.FPS)
	if err != nil {
		return summary, err
	}

	summary.Warnings = warnings(summary, params.OutputDir)
	for _, w := range summary.Warnings {
		log.Warn().Msg(w)
	}

	err = os.MkdirAll(params.OutputDir, 0o755)
	if err != nil {
		return summary, merry.Wrap(common.ErrIO, merry.WithMessagef("couldn't create %s: %s", params.OutputDir, err), merry.WithCause(err))
	}

	summary.Results = r.Dispatcher.Dispatch(ctx, params.VideoPath, params.OutputDir, summary.Converted)

	if params.ReportPath != "" {
		err = WriteReport(params.ReportPath, summary.Results)
		if err != nil {
			log.Error().Err(err).Msg("Couldn't write report")
		}
	}

	log.Info().
		Int("stills", len(summary.Results)).
		Int("failed", summary.Failed()).
		Msg("Done")

	return summary, nil
}

// warnings lists conversions that will probably not produce the expected still.
func warnings(summary *Summary, outputDir string) []string {
	var warnings []string

	if exact := summary.FrameRate.Exact; !exact.Empty() {
		stream := big.NewRat(int64(exact.Numerator), int64(exact.Denominator))
		if stream.Cmp(summary.Rate.Rational()) != 0 {
			warnings = append(warnings, "stream frame rate "+stream.RatString()+" is not exactly "+summary.Rate.Value+", runtimes may drift")
		}
	}

	duration := summary.Probe.DurationSeconds()
	bounds := tcrange.Range{0, duration}

	seen := mapset.NewThreadUnsafeSet[string]()
	for _, job := range Jobs(outputDir, summary.Converted) {
		if !seen.Add(job.OutputPath) {
			warnings = append(warnings, "duplicate timecode "+job.Timecode+", "+job.OutputPath+" is written more than once")
		}
	}

	if duration <= 0 {
		return warnings
	}
	for _, c := range summary.Converted {
		at, _ := c.Timecode.Seconds().Float64()
		if !(tcrange.Splice{{at, at}}).In(bounds) {
			warnings = append(warnings, "timecode "+c.Raw+" ("+c.Runtime+") is outside the video "+bounds.String())
		}
	}

	return warnings
}
