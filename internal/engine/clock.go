package engine

import "sync/atomic"

// Clock is a monotonic logical day counter.
//
// Day numbers come from this clock rather than wall time, so replaying a run
// produces identical day numbers.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// although a single run only ever advances it from one goroutine.
type Clock struct {
	day atomic.Int64
}

// NewClock creates a clock at day 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock positioned at a specific day.
// Used to continue a run from its last recorded snapshot.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.day.Store(start)
	return c
}

// Next advances the clock and returns the new day.
func (c *Clock) Next() int64 {
	return c.day.Add(1)
}

// Current returns the current day without advancing.
func (c *Clock) Current() int64 {
	return c.day.Load()
}
