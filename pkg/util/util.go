package util

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage form of a due date.
const DateLayout = "2006-01-02"

// displayLayout renders dates like "Jan 29, 2026".
const displayLayout = "Jan 2, 2006"

// ParseDate parses a YYYY-MM-DD due date as a local calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// FormatDate turns a stored due date into its display form. Unparseable
// values are shown as stored.
func FormatDate(due string) string {
	t, err := ParseDate(due)
	if err != nil {
		return due
	}
	return t.Format(displayLayout)
}

// DateString returns the calendar day of t in storage form.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// IsOverdue reports whether due is a day before today's date.
func IsOverdue(due string, now time.Time) bool {
	d, err := ParseDate(due)
	if err != nil {
		return false
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, d.Location())
	return d.Before(today)
}

// Tomorrow is the quick-date preset for the day after now.
func Tomorrow(now time.Time) string {
	return DateString(now.AddDate(0, 0, 1))
}

// NextSunday is the quick-date preset for the coming Sunday. On a Sunday it
// returns the following one.
func NextSunday(now time.Time) string {
	days := 7 - int(now.Weekday())
	if now.Weekday() == time.Sunday {
		days = 7
	}
	return DateString(now.AddDate(0, 0, days))
}

// NextDay returns the calendar day after due, in storage form.
func NextDay(due string) (string, error) {
	d, err := ParseDate(due)
	if err != nil {
		return "", err
	}
	return DateString(d.AddDate(0, 0, 1)), nil
}
