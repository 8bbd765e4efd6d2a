package ffmpeg

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ansel1/merry/v2"
	"github.com/bcc-code/bcc-media-stills/cache"
	"github.com/bcc-code/bcc-media-stills/common"
	"github.com/bcc-code/bcc-media-stills/utils"
)

type FFProbeStream struct {
	Index        int    `json:"index"`
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	FieldOrder   string `json:"field_order"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	TimeBase     string `json:"time_base"`
	Duration     string `json:"duration"`
	NbFrames     string `json:"nb_frames"`
	Disposition  struct {
		Default     int `json:"default"`
		AttachedPic int `json:"attached_pic"`
		StillImage  int `json:"still_image"`
	} `json:"disposition"`
	Tags struct {
		Language string `json:"language"`
		Timecode string `json:"timecode"`
	} `json:"tags"`
}

type FFProbeResult struct {
	Streams []FFProbeStream `json:"streams"`
	Format  struct {
		Filename   string `json:"filename"`
		NbStreams  int    `json:"nb_streams"`
		FormatName string `json:"format_name"`
		StartTime  string `json:"start_time"`
		Duration   string `json:"duration"`
		Size       string `json:"size"`
		BitRate    string `json:"bit_rate"`
		Tags       struct {
			Timecode string `json:"timecode"`
		} `json:"tags"`
	} `json:"format"`
}

// DurationSeconds returns the container duration, or 0 when ffprobe did not report one.
func (r *FFProbeResult) DurationSeconds() float64 {
	if r == nil {
		return 0
	}
	d, _ := strconv.ParseFloat(strings.TrimSpace(r.Format.Duration), 64)
	return d
}

func probeArguments(path string) []string {
	return []string{
		"-hide_banner",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}
}

func doProbe(ctx context.Context, binary, path string) (*FFProbeResult, error) {
	cmd := exec.CommandContext(ctx, binary, probeArguments(path)...)

	result, err := utils.ExecuteCmd(cmd, nil)
	if err != nil {
		return nil, merry.Wrap(err, merry.WithMessagef("couldn't execute ffprobe %s, %s", path, err.Error()))
	}

	return ParseProbe([]byte(result))
}

// ParseProbe decodes ffprobe's JSON output.
func ParseProbe(data []byte) (*FFProbeResult, error) {
	var info FFProbeResult
	err := json.Unmarshal(data, &info)
	if err != nil {
		return nil, merry.Wrap(common.ErrParse, merry.WithMessagef("invalid ffprobe output: %s", err), merry.WithCause(err))
	}
	return &info, nil
}

// ProbeFile returns information about the specified video file. Requires ffprobe present.
func ProbeFile(ctx context.Context, binary, filePath string) (*FFProbeResult, error) {
	return cache.GetOrSet("probe:"+filePath, func() (*FFProbeResult, error) {
		return doProbe(ctx, binary, filePath)
	})
}
