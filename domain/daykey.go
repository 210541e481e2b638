package domain

import "time"

// DayKey identifies a calendar date with the time of day stripped. Two
// timestamps map to the same key iff they fall on the same local calendar
// date, so keys are comparable with ==.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the day key for t in t's location.
func DayOf(t time.Time) DayKey {
	y, m, d := t.Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// AddDays returns the key n calendar days after k (negative n goes back).
func (k DayKey) AddDays(n int) DayKey {
	return DayOf(time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.Local).AddDate(0, 0, n))
}

// Time returns local midnight of the day.
func (k DayKey) Time() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.Local)
}

// String formats the key as YYYY-MM-DD.
func (k DayKey) String() string {
	return k.Time().Format("2006-01-02")
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DayOf(a) == DayOf(b)
}
