// Package testutil provides deterministic time and ID sources for tests.
package testutil

import (
	"sync"
	"time"
)

// FixedClock is a thread-safe wall clock frozen at a settable instant.
//
// Production code takes time from a `func() time.Time` field; tests plug
// in clock.Now to pin timestamps, TTL expiry, and cutoff classification
// to exact instants.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// Now returns the frozen instant. It has the same signature as time.Now
// so it can be assigned directly to a clock field.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d. Negative d moves it backward.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
