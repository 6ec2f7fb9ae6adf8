package domain

import "time"

// DayBoundary defines the "login day": a 24h window that starts at ResetHour
// in Location rather than at midnight.
type DayBoundary struct {
	Location  *time.Location
	ResetHour int
}

func (b DayBoundary) loc() *time.Location {
	if b.Location == nil {
		return time.UTC
	}
	return b.Location
}

// Day returns the date of the login day containing t, as midnight UTC.
func (b DayBoundary) Day(t time.Time) time.Time {
	local := t.In(b.loc())
	start := time.Date(local.Year(), local.Month(), local.Day(), b.ResetHour, 0, 0, 0, b.loc())
	if local.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}

// NextReset returns the first reset instant strictly after t.
func (b DayBoundary) NextReset(t time.Time) time.Time {
	local := t.In(b.loc())
	next := time.Date(local.Year(), local.Month(), local.Day(), b.ResetHour, 0, 0, 0, b.loc())
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
