package todo

import "time"

// IDGenerator hands out task ids. Successive NextID calls return strictly
// increasing values, all greater than the last Seed.
type IDGenerator interface {
	NextID() int64
	Seed(min int64)
}

// ClockIDs derives ids from wall-clock milliseconds.
type ClockIDs struct {
	now  func() time.Time
	last int64
}

// NewClockIDs returns a generator reading time from now. A nil now uses
// time.Now.
func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

// NextID returns the current Unix millisecond, or last+1 if the clock has
// not advanced past the previous id.
func (c *ClockIDs) NextID() int64 {
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

// Seed raises the floor for future ids.
func (c *ClockIDs) Seed(min int64) {
	if min > c.last {
		c.last = min
	}
}

// Counter returns 1, 2, 3, ... and is meant for tests and deterministic
// fixtures.
type Counter struct {
	last int64
}

// NextID returns the next integer.
func (c *Counter) NextID() int64 {
	c.last++
	return c.last
}

// Seed raises the floor for future ids.
func (c *Counter) Seed(min int64) {
	if min > c.last {
		c.last = min
	}
}
