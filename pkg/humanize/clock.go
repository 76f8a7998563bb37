package humanize

import (
	"context"
	"time"
)

// Clock is the time source for every pause and quiet-period measurement.
// Production code uses RealClock; tests inject a clock that advances on Sleep.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock is a Clock backed by the wall clock
type RealClock struct{}

// Now returns the current wall-clock time
func (RealClock) Now() time.Time { return time.Now() }

// Sleep waits for d or until ctx is done
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
