package testutils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type VideoGeneratorParams struct {
	Duration float64
	// FrameRate is passed to ffmpeg as is, e.g. "24000/1001" or "25".
	FrameRate string
	Width     int
	Height    int
}

// RequireTool returns the path of the named binary, skipping the test when it is not installed.
func RequireTool(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not installed", name)
	}
	return path
}

// GenerateVideoFile writes a test pattern video to outFile.
func GenerateVideoFile(t *testing.T, outFile string, videoParams VideoGeneratorParams) string {
	t.Helper()
	ffmpeg := RequireTool(t, "ffmpeg")

	require.NoError(t, os.MkdirAll(filepath.Dir(outFile), 0755))
	args := []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("testsrc=size=%dx%d:rate=%s:duration=%f", videoParams.Width, videoParams.Height, videoParams.FrameRate, videoParams.Duration),
		"-c:v", "mpeg4",
		"-pix_fmt", "yuv420p",
		"-y", outFile,
	}

	out, err := exec.Command(ffmpeg, args...).CombinedOutput()
	require.NoError(t, err, string(out))

	return outFile
}
