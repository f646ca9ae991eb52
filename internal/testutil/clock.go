package testutil

import (
	"sync"
	"time"
)

// FixedClock is a settable clock for tests.
//
// It satisfies clock.Clock, so period queries can be evaluated against a
// pinned calendar year instead of the wall clock.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at now.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// ClockAtYear returns a clock frozen at noon on 1 July of year.
func ClockAtYear(year int) *FixedClock {
	return NewFixedClock(time.Date(year, time.July, 1, 12, 0, 0, 0, time.Local))
}

// Now returns the frozen time.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to now.
func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// AddYears advances (or rewinds, for negative n) the clock by n years.
func (c *FixedClock) AddYears(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(n, 0, 0)
}
