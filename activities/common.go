package activities

import (
	"context"
	"time"

	"go.temporal.io/sdk/activity"
)

const heartbeatInterval = time.Second * 15

func simpleHeartBeater(ctx context.Context) chan struct{} {
	stopChan := make(chan struct{})

	go func() {
		timer := time.NewTicker(heartbeatInterval)
		defer timer.Stop()

		for {
			select {
			case <-timer.C:
				activity.RecordHeartbeat(ctx)
				if ctx.Err() != nil {
					return
				}
			case <-stopChan:
				return
			}
		}
	}()

	return stopChan
}
