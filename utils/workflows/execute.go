package wfutils

import (
	"context"

	"github.com/bcc-code/bcc-media-stills/activities"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// NoRetryPolicy runs an activity exactly once. Failed stills are reported, not retried.
var NoRetryPolicy = temporal.RetryPolicy{
	MaximumAttempts: 1,
}

type Future[TR any] struct {
	workflow.Future
}

// Result returns the result of the future
func (f Future[TR]) Result(ctx workflow.Context) (TR, error) {
	var result TR
	err := f.Get(ctx, &result)
	return result, err
}

// Wait waits until the task is done
func (f Future[TR]) Wait(ctx workflow.Context) error {
	return f.Get(ctx, nil)
}

// Execute executes the specified activity with the correct task queue
func Execute[T any, TR any](ctx workflow.Context, activity func(context.Context, T) (TR, error), params T) Future[TR] {
	options := workflow.GetActivityOptions(ctx)
	options.TaskQueue = activities.GetQueueForActivity(activity)
	if options.RetryPolicy == nil {
		options.RetryPolicy = &NoRetryPolicy
	}

	ctx = workflow.WithActivityOptions(ctx, options)
	return Future[TR]{
		workflow.ExecuteActivity(ctx, activity, params),
	}
}
