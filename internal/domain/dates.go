package domain

import "time"

// DateLayout is the calendar-day format used throughout the snapshot.
const DateLayout = "2006-01-02"

// DateOf formats the local calendar day of t.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar day in loc, or time.Local when loc is nil.
// ok is false for
// empty or malformed values.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays shifts a calendar day string by n days. Malformed input is returned unchanged.
func AddDays(day string, n int) string {
	t, ok := ParseDate(day, time.UTC)
	if !ok {
		return day
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// DaysBetween returns the whole number of days from a to b (b - a).
func DaysBetween(a, b string) int {
	ta, okA := ParseDate(a, time.UTC)
	tb, okB := ParseDate(b, time.UTC)
	if !okA || !okB {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// Yesterday returns the calendar day before day.
func Yesterday(day string) string {
	return AddDays(day, -1)
}
