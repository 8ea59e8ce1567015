package worker

import (
	"context"
	"time"
)

// Every submits a fresh job from newJob to p once per interval until ctx is
// done. A tick is skipped when the queue is full. Every blocks; run it in its
// own goroutine.
func Every(ctx context.Context, p *Pool, interval time.Duration, newJob func() Job) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.TrySubmit(newJob())
		}
	}
}
