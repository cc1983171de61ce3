package engine

import "time"

// sameMonth reports whether a and b fall in the same calendar year and month.
func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// sameDay reports whether a and b fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// monthStart returns midnight on the first day of t's month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// previousMonth returns a time inside the calendar month before t's month.
func previousMonth(t time.Time) time.Time {
	return monthStart(t).AddDate(0, 0, -1)
}

// daysInMonth returns the number of days in t's month.
func daysInMonth(t time.Time) int {
	return monthStart(t).AddDate(0, 1, -1).Day()
}

// dayKey buckets t to its calendar day for map keys.
func dayKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
