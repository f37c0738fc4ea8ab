package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string into midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day returns the calendar date of t (in t's location) as midnight UTC.
// Schedule dates are civil dates, so every comparison happens on this normalized form.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar date by n days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// Today returns the current calendar date in loc (UTC when loc is nil).
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Day(now.In(loc))
}

// EachDay calls fn for every calendar date in [start, end], ascending.
func EachDay(start, end time.Time, fn func(day time.Time)) {
	for cur := Day(start); !cur.After(Day(end)); cur = cur.AddDate(0, 0, 1) {
		fn(cur)
	}
}
