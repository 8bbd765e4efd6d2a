package stills

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StillsExtractedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stills_extracted_total",
		Help: "Total number of still extractions, by status",
	}, []string{"status"})

	StillExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stills_extraction_duration_seconds",
		Help:    "Duration of a single still extraction",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
)

// Observe records one extraction, in the CLI pool as well as in the worker activity.
func Observe(ok bool, duration time.Duration) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	StillsExtractedTotal.WithLabelValues(status).Inc()
	StillExtractionDuration.Observe(duration.Seconds())
}
