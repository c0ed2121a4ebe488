// Package dateutil holds calendar-date helpers. Dates are carried as time.Time at
// midnight UTC and serialized as YYYY-MM-DD.
package dateutil

import (
	"time"

	"github.com/jinzhu/now"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// Truncate drops the clock part of t, keeping t's calendar date, at midnight UTC.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SubtractMonths moves t back by n calendar months. When the target month is shorter
// the day is clamped to its last day (May 31 - 3 months = Feb 28/29), never rolled
// over into the following month the way time.AddDate does.
func SubtractMonths(t time.Time, n int) time.Time {
	t = Truncate(t)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -n, 0)
	last := now.With(first).EndOfMonth().Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func Format(t time.Time) string { return t.UTC().Format(Layout) }

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
