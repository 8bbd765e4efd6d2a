package ffmpeg

import (
	"context"
	"os/exec"
	"path/filepath"

	"github.com/bcc-code/bcc-media-stills/utils"
)

type StillInput struct {
	FilePath   string
	Timecode   string
	OutputPath string
}

type StillResult struct {
	OutputPath string
}

// StillOutputPath is where the still for timecode ends up inside outputDir.
func StillOutputPath(outputDir, timecode string) string {
	return filepath.Join(outputDir, timecode+".jpg")
}

// StillArguments seeks to the timecode, grabs one frame and overwrites the output.
func StillArguments(input StillInput) []string {
	return []string{
		"-ss", input.Timecode,
		"-i", input.FilePath,
		"-frames:v", "1",
		"-y",
		input.OutputPath,
	}
}

// StillExtractor runs ffmpeg to grab single frames.
type StillExtractor struct {
	Binary string
}

func NewStillExtractor(binary string) *StillExtractor {
	return &StillExtractor{Binary: binary}
}

// ExtractStill writes a single frame at input.Timecode to input.OutputPath.
// Errors carry ffmpeg's stderr, see utils.Stderr.
func (e *StillExtractor) ExtractStill(ctx context.Context, input StillInput) (*StillResult, error) {
	cmd := exec.CommandContext(ctx, e.Binary, StillArguments(input)...)

	_, err := utils.ExecuteCmd(cmd, nil)
	if err != nil {
		return nil, err
	}

	return &StillResult{
		OutputPath: input.OutputPath,
	}, nil
}
