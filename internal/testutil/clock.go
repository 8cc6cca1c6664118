package testutil

import (
	"sync"
	"time"
)

// FakeClock is a controllable time source for run and reducer tests.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock starts a FakeClock at start, normalized to UTC.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start.UTC()}
}

// Now returns the current fake time. It matches the func() time.Time
// shape used by run dependencies.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the fake time forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Since reports how far the clock has moved past start.
func (c *FakeClock) Since(start time.Time) time.Duration {
	return c.Now().Sub(start)
}
