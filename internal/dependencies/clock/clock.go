package clock

import (
	"time"

	"cloud.google.com/go/civil"
)

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current local time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the calendar date of the clock's current time in its own location
func Today(c Clock) civil.Date {
	return civil.DateOf(c.Now())
}
