package sim

import "time"

var epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

const stepDays = 30

// Clock is the virtual calendar of the simulation. It is a value:
// Advance returns a new Clock, the Scheduler holds the authoritative one.
type Clock struct {
	date time.Time
}

func NewClock() Clock { return Clock{date: epoch} }

func ClockAt(date time.Time) Clock { return Clock{date: date} }

func (c Clock) Date() time.Time { return c.date }

// Month returns the simulated month name, e.g. "January".
func (c Clock) Month() string { return c.date.Format("January") }

func (c Clock) Year() int { return c.date.Year() }

// Advance moves the virtual date by one 30-day step. Consecutive steps
// can land in the same calendar month (Jan 1 -> Jan 31); the billing
// ledger's upsert handles the replay.
func (c Clock) Advance() Clock {
	return Clock{date: c.date.AddDate(0, 0, stepDays)}
}
