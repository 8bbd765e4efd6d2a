package main

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/bcc-code/bcc-media-stills/activities"
	"github.com/bcc-code/bcc-media-stills/analytics"
	"github.com/bcc-code/bcc-media-stills/environment"
	"github.com/bcc-code/bcc-media-stills/utils"
	wfutils "github.com/bcc-code/bcc-media-stills/utils/workflows"
	"github.com/bcc-code/bcc-media-stills/workflows"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
)

var stillActivities = activities.GetStillActivities()

var workerWorkflows = workflows.WorkerWorkflows

func main() {
	_ = godotenv.Load()

	cfg, err := environment.Load()
	if err != nil {
		panic(err)
	}

	logger := utils.NewLogger(cfg.LogLevel, os.Stderr)

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
		Logger:    utils.NewTemporalLogger(logger),
	})

	if err != nil {
		panic(err)
	}

	defer c.Close()

	analytics.Init(analytics.Config{
		WriteKey:  cfg.RudderstackWriteKey,
		DataPlane: cfg.RudderstackDataPlane,
	})
	defer analytics.GetService().Close()

	identity := os.Getenv("IDENTITY")
	if identity == "" {
		identity = "stills-worker"
	}

	activityCountString := os.Getenv("ACTIVITY_COUNT")
	if activityCountString == "" {
		activityCountString = strconv.Itoa(cfg.Concurrency)
	}

	activityCount, err := strconv.Atoi(activityCountString)
	if err != nil {
		panic(err)
	}

	startMetricsServer(cfg.MetricsAddr, logger)

	workerOptions := worker.Options{
		DeadlockDetectionTimeout:           time.Minute * 5,
		DisableRegistrationAliasing:        true,
		Identity:                           identity,
		MaxConcurrentActivityExecutionSize: activityCount,
		Interceptors:                       []interceptor.WorkerInterceptor{&wfutils.MetricsWorkerInterceptor{}},
	}

	registerWorker(c, environment.GetQueue(), workerOptions, logger)
}

func startMetricsServer(addr string, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("metrics server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()

	return srv
}

func registerWorker(c client.Client, queue string, options worker.Options, logger zerolog.Logger) {
	w := worker.New(c, queue, options)

	switch queue {
	case environment.QueueDebug:
		fallthrough
	case environment.QueueWorker:
		for _, a := range stillActivities {
			w.RegisterActivity(a)
		}

		for _, wf := range workerWorkflows {
			w.RegisterWorkflow(wf)
		}
	default:
		logger.Fatal().Str("queue", queue).Msg("Unknown queue")
	}

	err := w.Run(worker.InterruptCh())

	logger.Info().Err(err).Msg("Worker finished")
}
