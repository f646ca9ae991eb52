// Package clock provides the "current time" source used by period queries.
package clock

import "time"

// Clock reports the current time. The store asks it for the current year
// when filtering by period, so tests can pin the calendar.
type Clock interface {
	Now() time.Time
}

// Real implements Clock with the system wall clock.
type Real struct{}

// Now returns time.Now().
func (Real) Now() time.Time {
	return time.Now()
}

// Year returns the calendar year of c.Now() in local time.
func Year(c Clock) int {
	if c == nil {
		c = Real{}
	}
	return c.Now().Year()
}
