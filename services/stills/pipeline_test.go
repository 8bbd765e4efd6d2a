package stills

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bcc-code/bcc-media-stills/common"
	"github.com/bcc-code/bcc-media-stills/services/ffmpeg"
	"github.com/bcc-code/bcc-media-stills/services/stills/mocks"
	"github.com/bcc-code/bcc-media-stills/timecode"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	video  string
	xml    string
	outDir string
}

func newFixture(t *testing.T, timecodes ...string) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		video:  filepath.Join(dir, "movie.mov"),
		xml:    filepath.Join(dir, "edit.xml"),
		outDir: filepath.Join(dir, "tmp-previews"),
	}
	require.NoError(t, os.WriteFile(f.video, []byte("not really a movie"), 0o644))

	var doc strings.Builder
	doc.WriteString("<xmeml>")
	for _, tc := range timecodes {
		doc.WriteString("<marker><artwork_time>" + tc + "</artwork_time></marker>")
	}
	doc.WriteString("</xmeml>")
	require.NoError(t, os.WriteFile(f.xml, []byte(doc.String()), 0o644))
	return f
}

func probeReturning(rate, duration string) ProbeFunc {
	return func(context.Context, string) (*ffmpeg.FFProbeResult, error) {
		return ffmpeg.ParseProbe([]byte(`{"streams":[{"codec_type":"video","r_frame_rate":"` + rate + `"}],"format":{"duration":"` + duration + `"}}`))
	}
}

func newRunner(extractor Extractor, probe ProbeFunc) *Runner {
	return &Runner{
		Probe: probe,
		Dispatcher: &Dispatcher{
			Extractor:   extractor,
			Concurrency: 2,
			Stdout:      zerolog.Nop(),
			Stderr:      zerolog.Nop(),
		},
		Log: zerolog.Nop(),
	}
}

func TestRun(t *testing.T) {
	f := newFixture(t, "00:00:01:00", "00:00:01:00", "1:2:3", "00:00:02:12")
	ctrl := gomock.NewController(t)
	extractor := mocks.NewMockExtractor(ctrl)
	extractor.EXPECT().ExtractStill(gomock.Any(), gomock.Any()).Return(&ffmpeg.StillResult{}, nil).Times(3)

	report := filepath.Join(t.TempDir(), "report.csv")
	summary, err := newRunner(extractor, probeReturning("25/1", "60.0")).Run(context.Background(), Params{
		VideoPath:  f.video,
		XMLPath:    f.xml,
		OutputDir:  f.outDir,
		ReportPath: report,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, timecode.Rate25, summary.Rate)
	assert.Equal(t, []string{"00:00:01:00", "00:00:01:00", "00:00:02:12"}, summary.Timecodes)
	require.Len(t, summary.Results, 3)
	assert.Equal(t, "00:00:02.48", summary.Results[2].Runtime)
	assert.Zero(t, summary.Failed())

	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "duplicate timecode 00:00:01:00")

	assert.DirExists(t, f.outDir)
	assert.FileExists(t, report)
}

func TestRun_UnsupportedRateStartsNoJobs(t *testing.T) {
	f := newFixture(t, "01:02:03:04")
	ctrl := gomock.NewController(t)
	extractor := mocks.NewMockExtractor(ctrl)

	summary, err := newRunner(extractor, probeReturning("31/1", "10")).Run(context.Background(), Params{
		VideoPath: f.video,
		XMLPath:   f.xml,
		OutputDir: f.outDir,
	})

	assert.True(t, errors.Is(err, common.ErrUnsupportedRate))
	assert.Empty(t, summary.Results)
	assert.NoDirExists(t, f.outDir)
}

func TestRun_BadTimecodeStartsNoJobs(t *testing.T) {
	f := newFixture(t, "00:00:01:00", "00:00:01:99")
	ctrl := gomock.NewController(t)

	_, err := newRunner(mocks.NewMockExtractor(ctrl), probeReturning("24/1", "10")).Run(context.Background(), Params{
		VideoPath: f.video,
		XMLPath:   f.xml,
		OutputDir: f.outDir,
	})

	assert.True(t, errors.Is(err, common.ErrTimecodeParse))
	assert.NoDirExists(t, f.outDir)
}

func TestRun_MissingVideo(t *testing.T) {
	f := newFixture(t)
	probeCalled := false

	_, err := newRunner(nil, func(context.Context, string) (*ffmpeg.FFProbeResult, error) {
		probeCalled = true
		return nil, nil
	}).Run(context.Background(), Params{
		VideoPath: f.video + ".missing",
		XMLPath:   f.xml,
		OutputDir: f.outDir,
	})

	assert.True(t, errors.Is(err, common.ErrIO))
	assert.False(t, probeCalled)
}

func TestRun_MissingXML(t *testing.T) {
	f := newFixture(t)

	_, err := newRunner(nil, probeReturning("24/1", "10")).Run(context.Background(), Params{
		VideoPath: f.video,
		XMLPath:   f.xml + ".missing",
		OutputDir: f.outDir,
	})

	assert.True(t, errors.Is(err, common.ErrIO))
}

func TestRun_ProbeFailure(t *testing.T) {
	f := newFixture(t, "00:00:01:00")
	probe := func(context.Context, string) (*ffmpeg.FFProbeResult, error) {
		return nil, common.ErrExternalTool
	}

	_, err := newRunner(nil, probe).Run(context.Background(), Params{
		VideoPath: f.video,
		XMLPath:   f.xml,
		OutputDir: f.outDir,
	})

	assert.True(t, errors.Is(err, common.ErrExternalTool))
}

func TestRun_RateOverride(t *testing.T) {
	f := newFixture(t, "00:01:00;02")
	ctrl := gomock.NewController(t)
	extractor := mocks.NewMockExtractor(ctrl)
	extractor.EXPECT().
		ExtractStill(gomock.Any(), ffmpeg.StillInput{
			FilePath:   f.video,
			Timecode:   "00:01:00.06",
			OutputPath: filepath.Join(f.outDir, "00:01:00.06.jpg"),
		}).
		Return(&ffmpeg.StillResult{}, nil)

	probe := func(context.Context, string) (*ffmpeg.FFProbeResult, error) {
		return nil, common.ErrExternalTool
	}
	rate := timecode.Rate29_97DF

	summary, err := newRunner(extractor, probe).Run(context.Background(), Params{
		VideoPath: f.video,
		XMLPath:   f.xml,
		OutputDir: f.outDir,
		Rate:      &rate,
	})

	require.NoError(t, err)
	assert.Equal(t, timecode.Rate29_97DF, summary.Rate)
	assert.Zero(t, summary.Failed())
}

func TestRun_RateOverrideWithUnresolvableRate(t *testing.T) {
	f := newFixture(t, "00:00:01:00")
	ctrl := gomock.NewController(t)
	extractor := mocks.NewMockExtractor(ctrl)
	extractor.EXPECT().ExtractStill(gomock.Any(), gomock.Any()).Return(&ffmpeg.StillResult{}, nil)

	logs := &bytes.Buffer{}
	runner := newRunner(extractor, probeReturning("0/0", "10"))
	runner.Log = zerolog.New(logs)

	rate := timecode.Rate25
	summary, err := runner.Run(context.Background(), Params{
		VideoPath: f.video,
		XMLPath:   f.xml,
		OutputDir: f.outDir,
		Rate:      &rate,
	})

	require.NoError(t, err)
	assert.Equal(t, timecode.Rate25, summary.Rate)
	assert.Equal(t, "00:00:01.0", summary.Converted[0].Runtime)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), "Couldn't resolve the frame rate")
}

func TestRun_Warnings(t *testing.T) {
	f := newFixture(t, "00:00:01:00", "01:00:00:00")
	ctrl := gomock.NewController(t)
	extractor := mocks.NewMockExtractor(ctrl)
	extractor.EXPECT().ExtractStill(gomock.Any(), gomock.Any()).Return(&ffmpeg.StillResult{}, nil).Times(2)

	summary, err := newRunner(extractor, probeReturning("2997/100", "120.5")).Run(context.Background(), Params{
		VideoPath: f.video,
		XMLPath:   f.xml,
		OutputDir: f.outDir,
	})

	require.NoError(t, err)
	assert.Equal(t, timecode.Rate29_97, summary.Rate)
	require.Len(t, summary.Warnings, 2)
	assert.Contains(t, summary.Warnings[0], "2997/100 is not exactly 29.97")
	assert.Contains(t, summary.Warnings[1], "timecode 01:00:00:00 (01:00:03.6) is outside the video")
}

func TestRun_FailedStillsAreNotAnError(t *testing.T) {
	f := newFixture(t, "00:00:01:00", "00:00:02:00")
	ctrl := gomock.NewController(t)
	extractor := mocks.NewMockExtractor(ctrl)
	extractor.EXPECT().ExtractStill(gomock.Any(), gomock.Any()).Return(nil, common.ErrExternalTool)
	extractor.EXPECT().ExtractStill(gomock.Any(), gomock.Any()).Return(&ffmpeg.StillResult{}, nil)

	summary, err := newRunner(extractor, probeReturning("24000/1001", "10")).Run(context.Background(), Params{
		VideoPath: f.video,
		XMLPath:   f.xml,
		OutputDir: f.outDir,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed())
}
