package engine

import "time"

// DateOnly strips the time-of-day component, normalizing to midnight UTC.
// The engine compares and advances dates purely by calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsMonthEnd reports whether day is the last calendar day of its month.
//
// The product description talks about the "last business day", but the
// worked examples evaluate the literal calendar month end (Jan 31 even
// when it falls on a weekend), so that is what we do.
func IsMonthEnd(day time.Time) bool {
	return day.AddDate(0, 0, 1).Day() == 1
}
