package analytics

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	r "github.com/rudderlabs/analytics-go/v4"
)

var (
	Instance *Service
	once     sync.Once
)

// Init sets up the shared Service. Without a write key and data plane the service stays disabled.
func Init(config Config) {
	once.Do(func() {
		Instance = newService(config)
	})
}

// GetService returns the shared Service, or nil when Init was never called.
func GetService() *Service {
	return Instance
}

type Service struct {
	rudderClient r.Client
}

type Config struct {
	WriteKey  string
	DataPlane string
	Verbose   bool
}

func newService(config Config) *Service {
	if config.WriteKey == "" || config.DataPlane == "" {
		log.Warn().Msg("Rudderstack is not configured, no analytics will be sent")
		return &Service{}
	}

	c, err := r.NewWithConfig(config.WriteKey,
		r.Config{
			DataPlaneUrl: config.DataPlane,
			Interval:     1 * time.Second,
			BatchSize:    100,
			Verbose:      config.Verbose,
			DisableGzip:  false,
		})

	if err != nil {
		log.Error().Err(err).Msg("Failed to create rudderstack client, no analytics will be sent")
		return &Service{}
	}

	return &Service{
		rudderClient: c,
	}
}

// Enabled reports whether events are sent anywhere.
func (s *Service) Enabled() bool {
	return s != nil && s.rudderClient != nil
}

func (s *Service) Close() {
	if !s.Enabled() {
		return
	}
	if err := s.rudderClient.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to flush analytics")
	}
}

func (s *Service) track(event string, properties map[string]interface{}) {
	if !s.Enabled() {
		return
	}

	err := s.rudderClient.Enqueue(r.Track{
		Event:      event,
		UserId:     "analytics",
		Properties: properties,
	})

	if err != nil {
		log.Warn().Err(err).Str("event", event).Msg("Failed to enqueue analytics event")
	}
}

func (s *Service) ActivityFinished(activityName string, workflowID string, queue string, succeeded bool, executionTime int64) {
	s.track("ActivityFinished", map[string]interface{}{
		"activityName":  activityName,
		"workflowId":    workflowID,
		"queue":         queue,
		"succeeded":     succeeded,
		"executionTime": executionTime,
	})
}

// StillsExtracted is sent once per finished run.
func (s *Service) StillsExtracted(runID string, stills int, failed int, rate string) {
	s.track("StillsExtracted", map[string]interface{}{
		"runId":  runID,
		"stills": stills,
		"failed": failed,
		"rate":   rate,
	})
}
