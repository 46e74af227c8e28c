package testutil

import (
	"time"
)

// FixedClock implements shell.Clock with a pinned instant.
type FixedClock struct {
	Instant time.Time
}

// NewFixedClock pins the clock to the given instant.
func NewFixedClock(instant time.Time) *FixedClock {
	return &FixedClock{Instant: instant}
}

// Now returns the pinned instant.
func (c *FixedClock) Now() time.Time {
	return c.Instant
}

// Advance moves the pinned instant forward.
func (c *FixedClock) Advance(d time.Duration) {
	c.Instant = c.Instant.Add(d)
}
