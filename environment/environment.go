package environment

import (
	"os"

	"github.com/kelseyhightower/envconfig"
)

const (
	QueueWorker = "stills"
	QueueDebug  = "debug"

	DefaultOutputDir   = "./tmp-previews"
	DefaultConcurrency = 4
)

// Config holds the process configuration. Everything comes from the
// environment; command line flags override it in cmd/stills.
type Config struct {
	TemporalHostPort  string `envconfig:"TEMPORAL_HOST_PORT" default:"localhost:7233"`
	TemporalNamespace string `envconfig:"TEMPORAL_NAMESPACE" default:"default"`

	FFmpegPath  string `envconfig:"FFMPEG_PATH" default:"ffmpeg"`
	FFprobePath string `envconfig:"FFPROBE_PATH" default:"ffprobe"`

	OutputDir   string `envconfig:"STILLS_OUTPUT_DIR" default:"./tmp-previews"`
	Concurrency int    `envconfig:"STILLS_CONCURRENCY" default:"4"`
	DropFrame   bool   `envconfig:"STILLS_DROP_FRAME" default:"false"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9102"`

	RudderstackWriteKey  string `envconfig:"RUDDERSTACK_WRITE_KEY"`
	RudderstackDataPlane string `envconfig:"RUDDERSTACK_DATA_PLANE_URL"`
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, err
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	return cfg, nil
}

var queue = os.Getenv("QUEUE")

func GetQueue() string {
	if queue != "" {
		return queue
	}
	return QueueWorker
}

func GetWorkerQueue() string {
	if queue == QueueDebug {
		return QueueDebug
	}
	return QueueWorker
}

func GetFFmpegPath() string {
	if ffmpegPath := os.Getenv("FFMPEG_PATH"); ffmpegPath != "" {
		return ffmpegPath
	}
	return "ffmpeg"
}

func GetFFprobePath() string {
	if ffprobePath := os.Getenv("FFPROBE_PATH"); ffprobePath != "" {
		return ffprobePath
	}
	return "ffprobe"
}
