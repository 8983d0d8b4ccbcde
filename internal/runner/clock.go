package runner

import (
	"context"
	"time"
)

// Clock provides the time source and the frame pacing of the run loop.
type Clock interface {
	Now() time.Time
	// Sleep blocks for the duration or until the context is done.
	Sleep(ctx context.Context, d time.Duration) error
}

type wallClock struct{}

// WallClock returns a clock backed by the system time.
func WallClock() Clock {
	return wallClock{}
}

func (wallClock) Now() time.Time {
	return time.Now()
}

func (wallClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
