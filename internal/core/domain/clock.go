package domain

import "time"

// Clock abstracts the notion of "now" so the posting service and the
// recalculation engine can decide historical-vs-same-day deterministically
// in tests.
type Clock interface {
	Now() time.Time
	// Today returns the current calendar date at midnight UTC.
	Today() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time   { return time.Now().UTC() }
func (realClock) Today() time.Time { return DateOnly(time.Now()) }

// NewRealClock returns a Clock backed by the system time.
func NewRealClock() Clock {
	return realClock{}
}

// FixedClock is a Clock pinned to a single instant, for tests.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time   { return c.Instant }
func (c FixedClock) Today() time.Time { return DateOnly(c.Instant) }
