package domain

import (
	"time"
)

// DateLayout is the wire format for calendar dates (no time, no zone).
const DateLayout = "2006-01-02"

// CivilDate drops the clock part of t and returns midnight UTC of the same
// calendar date. All plan and training days are stored in this form.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseCivilDate parses a "YYYY-MM-DD" string into a civil date.
func ParseCivilDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return CivilDate(t), nil
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
