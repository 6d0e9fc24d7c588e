package clock

import (
	"sync"
	"time"
)

// FakeClock is a manually driven Clock for tests. It never ticks on its
// own; tests pin it at construction and move it with Advance.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock pins the clock at t, normalized to UTC like the system
// clock it stands in for.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock by d. A negative d moves it backward.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
