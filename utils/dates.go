package utils

import (
	"os"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for every stored date.
const DateLayout = "2006-01-02"

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

// ParseDate parses a YYYY-MM-DD date. Surrounding spaces are ignored.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// IsDate reports whether s is a valid calendar date in YYYY-MM-DD form.
func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns now's calendar date in now's location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// AddDays shifts an ISO date by n days. Invalid input is returned unchanged.
func AddDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return FormatDate(t.AddDate(0, 0, n))
}

// DaysBetween counts calendar days from start to end (negative if end precedes start).
func DaysBetween(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	// Both values are UTC midnights, so the division is exact.
	return int(e.Sub(s).Hours() / 24), nil
}
