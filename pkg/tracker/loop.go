package tracker

import (
	"context"
	"time"
)

// runEvery calls fn straight away and then waits out the rest of interval
// after each call, so a slow refresh never overlaps the next one.
func runEvery(ctx context.Context, interval time.Duration, fn func()) error {
	for {
		startTime := time.Now()

		fn()

		executionDuration := time.Since(startTime)
		waitTime := interval - executionDuration
		if waitTime < 0 {
			waitTime = 0
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}
