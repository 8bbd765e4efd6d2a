package wfutils

import (
	"context"
	"time"

	"github.com/bcc-code/bcc-media-stills/analytics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/interceptor"
)

var ActivityDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "stills_activity_duration_seconds",
	Help:    "Duration of worker activities, by activity and status",
	Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
}, []string{"activity", "status"})

// WORKER INTERCEPTORS

type MetricsWorkerInterceptor struct {
	interceptor.WorkerInterceptorBase
}

func (c *MetricsWorkerInterceptor) InterceptActivity(
	ctx context.Context,
	next interceptor.ActivityInboundInterceptor,
) interceptor.ActivityInboundInterceptor {
	return &MetricsActivityInboundInterceptor{
		ActivityInboundInterceptorBase: interceptor.ActivityInboundInterceptorBase{
			Next: next,
		},
	}
}

// ACTIVITY INTERCEPTOR

type MetricsActivityInboundInterceptor struct {
	interceptor.ActivityInboundInterceptorBase
}

func (c *MetricsActivityInboundInterceptor) ExecuteActivity(
	ctx context.Context, in *interceptor.ExecuteActivityInput,
) (any, error) {
	info := activity.GetInfo(ctx)
	startTime := time.Now()

	result, err := c.Next.ExecuteActivity(ctx, in)

	duration := time.Since(startTime)

	status := "Success"
	if err != nil {
		status = "Failure"
	}

	ActivityDuration.WithLabelValues(info.ActivityType.Name, status).Observe(duration.Seconds())

	analytics.GetService().ActivityFinished(
		info.ActivityType.Name,
		info.WorkflowExecution.ID,
		info.TaskQueue,
		err == nil,
		duration.Milliseconds(),
	)

	return result, err
}
