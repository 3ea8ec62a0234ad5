// Package timeutil holds the clock and the schedule arithmetic the workday
// calculator is built on. Nothing here performs I/O.
package timeutil

import (
	"time"
)

// DateLayout is the calendar key of a day record
const DateLayout = "2006-01-02"

// Clock supplies the current local instant
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock returns a clock for loc, falling back to time.Local when loc is nil
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{Location: loc}
}

// Now returns the current instant in the clock's location
func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// FixedClock always reports the same instant. Tests move it with Set and Advance.
type FixedClock struct {
	T time.Time
}

// Now returns the frozen instant
func (c *FixedClock) Now() time.Time {
	return c.T
}

// Set moves the clock to t
func (c *FixedClock) Set(t time.Time) {
	c.T = t
}

// Advance moves the clock forward by d
func (c *FixedClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}

// CurrentTimestamp returns the current local instant ISO-8601 encoded
func CurrentTimestamp(clock Clock) string {
	return clock.Now().Format(time.RFC3339Nano)
}

// TodayKey returns the current local date as YYYY-MM-DD
func TodayKey(clock Clock) string {
	return DateKey(clock.Now())
}

// DateKey formats the calendar date of t
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// OnDay returns hour:minute on the calendar date of day, seconds zeroed
func OnDay(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// FormatClock renders t as HH:MM
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
