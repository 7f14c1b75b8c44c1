package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// It decides which date "today" is when the widget loads and when the
// background worker refreshes the snapshot.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the calendar date of c.Now().
func Today(c Clock) CalendarDate {
	return DateOf(c.Now())
}
