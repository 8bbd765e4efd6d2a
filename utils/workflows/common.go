package wfutils

import (
	"time"

	"github.com/bcc-code/bcc-media-stills/environment"
	"go.temporal.io/sdk/workflow"
)

func GetDefaultActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		RetryPolicy:            &NoRetryPolicy,
		StartToCloseTimeout:    time.Hour * 1,
		ScheduleToCloseTimeout: time.Hour * 12,
		HeartbeatTimeout:       time.Minute * 1,
		TaskQueue:              environment.GetWorkerQueue(),
	}
}
