package activities

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bcc-code/bcc-media-stills/services/stills"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"
)

func runExtractStill(t *testing.T, input ExtractStillInput) ExtractStillResult {
	t.Helper()

	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	env.RegisterActivity(Stills.ExtractStill)

	val, err := env.ExecuteActivity(Stills.ExtractStill, input)
	require.NoError(t, err)

	var result ExtractStillResult
	require.NoError(t, val.Get(&result))
	return result
}

func TestExtractStill_FailureIsCounted(t *testing.T) {
	t.Setenv("FFMPEG_PATH", "/bin/false")
	failed := stills.StillsExtractedTotal.WithLabelValues("failed")
	before := testutil.ToFloat64(failed)

	result := runExtractStill(t, ExtractStillInput{
		FilePath:  "/media/movie.mov",
		Timecode:  "00:00:01.0",
		OutputDir: t.TempDir(),
	})

	assert.NotEmpty(t, result.Error)
	assert.Equal(t, before+1, testutil.ToFloat64(failed))
}

func TestExtractStill_SuccessIsCounted(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := filepath.Join(dir, "ffmpeg")
	require.NoError(t, os.WriteFile(ffmpeg, []byte("#!/bin/sh\nfor last; do :; done\necho jpg > \"$last\"\n"), 0o755))
	t.Setenv("FFMPEG_PATH", ffmpeg)

	ok := stills.StillsExtractedTotal.WithLabelValues("ok")
	before := testutil.ToFloat64(ok)

	result := runExtractStill(t, ExtractStillInput{
		FilePath:  "/media/movie.mov",
		Timecode:  "00:00:02.5",
		OutputDir: dir,
	})

	assert.Empty(t, result.Error)
	assert.Equal(t, filepath.Join(dir, "00:00:02.5.jpg"), result.OutputPath)
	assert.FileExists(t, result.OutputPath)
	assert.Equal(t, before+1, testutil.ToFloat64(ok))
}
