// internal/domain/dates.go
package domain

import "time"

const DateLayout = "2006-01-02"

// Date returns the calendar date y-m-d at midnight UTC. Out-of-range months and
// days are normalized the same way time.Date does.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the clock part of t, keeping the calendar date as seen in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
