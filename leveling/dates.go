package leveling

import "time"

// DateOnly truncates a timestamp to its UTC calendar day. Two timestamps
// map to the same result iff they fall on the same UTC date, which keeps
// check-in deduplication and consecutive-day detection independent of the
// caller's wall clock.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
