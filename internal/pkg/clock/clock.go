package clock

import (
	"sync"
	"time"
)

// Clock is the time source injected into services.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// Real returns the wall clock.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

// Fixed is a controllable clock for tests.
type Fixed struct {
	mu      sync.Mutex
	current time.Time
}

func NewFixed(start time.Time) *Fixed {
	return &Fixed{current: start}
}

func (c *Fixed) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Set updates the clock to the provided time.
func (c *Fixed) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward and returns the updated time.
func (c *Fixed) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	c.mu.Unlock()
	return updated
}

// DayKey truncates t to midnight UTC of its calendar date in loc.
func DayKey(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
