package humanize

import (
	"context"
	"sync"
	"time"
)

// ManualClock is a Clock whose time only moves when Sleep is
// called. It never blocks, which lets tests run full scroll sessions
// instantly.
type ManualClock struct {
	mu    sync.Mutex
	now   time.Time
	slept time.Duration
	naps  int
}

// NewManualClock returns a ManualClock starting at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the simulated time
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the simulated time by d unless ctx is already done
func (c *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.now = c.now.Add(d)
		c.slept += d
	}
	c.naps++
	return nil
}

// Slept returns the total simulated time spent in Sleep
func (c *ManualClock) Slept() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slept
}

// Naps returns how many times Sleep was called
func (c *ManualClock) Naps() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.naps
}
