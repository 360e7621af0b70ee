package util

import (
	"time"
)

// DayFormat is the canonical layout for persisted bar dates.
const DayFormat = "2006-01-02"

// ParseDay tries the canonical day layout, then day+time layouts the TA
// request format allows. Returns (t, true) if any worked.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DayFormat, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of t's ISO week, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	d := Day(t)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // Sunday belongs to the week started the previous Monday
	}
	return d.AddDate(0, 0, -(wd - 1))
}

// MonthStart returns the first day of t's month, at midnight UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day (UTC).
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
