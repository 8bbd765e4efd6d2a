package ffmpeg

import (
	"math"
	"strconv"
	"strings"

	"github.com/ansel1/merry/v2"
	"github.com/bcc-code/bcc-media-stills/common"
	"github.com/cbsinteractive/pkg/video"
	"github.com/samber/lo"
)

// UnknownFrameRate is what ffprobe reports for streams without a frame rate (audio, data).
const UnknownFrameRate = "0/0"

// ResolvedRate is the frame rate of the stream used for timecode conversion.
type ResolvedRate struct {
	// FPS is the floored frames per second, e.g. 23 for 24000/1001.
	FPS int
	// Exact is the rational rate. Empty when r_frame_rate was not an integer fraction.
	Exact video.Framerate
	// Stream is the ffprobe index of the stream the rate was read from.
	Stream int
}

// ResolveFrameRate picks the stream that carries the video frame rate and parses its r_frame_rate.
//
// The first non-cover-art video stream wins. Probe output without any codec_type falls back to
// stream order: the first stream unless its rate is "0/0", in which case the second.
func ResolveFrameRate(info *FFProbeResult) (ResolvedRate, error) {
	if info == nil || len(info.Streams) == 0 {
		return ResolvedRate{}, merry.Wrap(common.ErrIndex, merry.WithMessage("probe result has no streams"))
	}

	typed := lo.SomeBy(info.Streams, func(s FFProbeStream) bool {
		return s.CodecType != ""
	})

	if typed {
		stream, found := lo.Find(info.Streams, func(s FFProbeStream) bool {
			return s.CodecType == "video" && s.Disposition.AttachedPic == 0
		})
		if !found {
			return ResolvedRate{}, merry.Wrap(common.ErrIndex, merry.WithMessage("probe result has no video stream"))
		}
		return resolveStream(stream.Index, stream.RFrameRate)
	}

	index := 0
	if info.Streams[0].RFrameRate == UnknownFrameRate {
		if len(info.Streams) < 2 {
			return ResolvedRate{}, merry.Wrap(common.ErrIndex, merry.WithMessage("first stream has no frame rate and there is no second stream"))
		}
		index = 1
	}
	return resolveStream(index, info.Streams[index].RFrameRate)
}

func resolveStream(index int, rate string) (ResolvedRate, error) {
	fps, exact, err := ParseFrameRate(rate)
	if err != nil {
		return ResolvedRate{}, merry.Wrap(err, merry.WithMessagef("stream %d: %s", index, err.Error()))
	}
	return ResolvedRate{
		FPS:    fps,
		Exact:  exact,
		Stream: index,
	}, nil
}

// ParseFrameRate parses an r_frame_rate value, "N/D" or a bare integer, into floor(N/D).
func ParseFrameRate(rate string) (int, video.Framerate, error) {
	rate = strings.TrimSpace(rate)
	if rate == "" {
		return 0, video.Framerate{}, merry.Wrap(common.ErrParse, merry.WithMessage("r_frame_rate is missing"))
	}

	if !strings.Contains(rate, "/") {
		fps, err := strconv.Atoi(rate)
		if err != nil {
			return 0, video.Framerate{}, merry.Wrap(common.ErrParse, merry.WithMessagef("invalid r_frame_rate %q", rate), merry.WithCause(err))
		}
		return fps, video.Framerate{Numerator: fps, Denominator: 1}, nil
	}

	parts := strings.Split(rate, "/")
	if len(parts) != 2 {
		return 0, video.Framerate{}, merry.Wrap(common.ErrParse, merry.WithMessagef("invalid r_frame_rate %q", rate))
	}

	numerator, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, video.Framerate{}, merry.Wrap(common.ErrParse, merry.WithMessagef("invalid r_frame_rate numerator %q", rate), merry.WithCause(err))
	}
	denominator, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, video.Framerate{}, merry.Wrap(common.ErrParse, merry.WithMessagef("invalid r_frame_rate denominator %q", rate), merry.WithCause(err))
	}
	if denominator == 0 {
		return 0, video.Framerate{}, merry.Wrap(common.ErrParse, merry.WithMessagef("r_frame_rate %q has no usable denominator", rate))
	}

	fps := math.Floor(numerator / denominator)
	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps > math.MaxInt32 || fps < math.MinInt32 {
		return 0, video.Framerate{}, merry.Wrap(common.ErrParse, merry.WithMessagef("r_frame_rate %q is out of range", rate))
	}

	var exact video.Framerate
	if numerator == math.Trunc(numerator) && denominator == math.Trunc(denominator) {
		exact = video.Framerate{Numerator: int(numerator), Denominator: int(denominator)}
	}

	return int(fps), exact, nil
}
