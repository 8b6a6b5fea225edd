// Package clock provides the time source used when computing days since last work.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// System implements Clock using time.Now.
type System struct{}

// New creates a new System clock.
func New() System {
	return System{}
}

// Now returns the current local time. Work dates are stored as local shop dates,
// so day differences are taken in the local zone.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
