// Package clock abstracts the wall clock so time-dependent state can be
// driven deterministically in tests.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// System reads the real clock. Times it returns carry Go's monotonic
// reading, so elapsed-time comparisons are immune to wall-clock jumps.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}
