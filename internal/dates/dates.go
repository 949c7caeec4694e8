// Package dates provides canonical date and time parsing helpers.
//
// This package exists to avoid duplicating parsing logic across:
// - value normalization in the engine
// - store date-range filters
// - CLI date arguments
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD date layout.
const DateLayout = "2006-01-02"

// TimeLayout is the canonical HH:MM 24-hour time layout.
const TimeLayout = "15:04"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate checks if a string is a valid YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	return time.Parse(DateLayout, s)
}

// IsValidTime checks if a string is a valid HH:MM 24-hour time.
func IsValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the most recent weekStart day at midnight, counting
// backwards from t (t itself if it falls on weekStart).
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// ParseDateArg parses a date argument which can be:
//   - a relative keyword: "today", "tomorrow", "yesterday", a weekday name,
//     or "next <weekday>"
//   - "YYYY-MM-DD" format (absolute date)
//   - empty string, which defaults to today
func ParseDateArg(arg string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(arg) == "" {
		return StartOfDay(now), nil
	}

	if resolved, ok := ResolveRelativeDateKeyword(arg, now); ok {
		return resolved, nil
	}

	parsed, err := ParseDate(strings.TrimSpace(arg))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s', use YYYY-MM-DD, today/tomorrow/yesterday, or a weekday name", arg)
	}
	return parsed, nil
}
