package dates

import (
	"strings"
	"time"
)

var relativeDayKeywords = map[string]int{
	"today":     0,
	"tomorrow":  1,
	"yesterday": -1,
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses a full weekday name (case-insensitive).
func ParseWeekday(value string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(value))]
	return wd, ok
}

// NextWeekday returns the next occurrence of wd strictly after today.
// A bare weekday name always means an upcoming day: if now already falls on
// wd, the result is a full week out, never today.
func NextWeekday(now time.Time, wd time.Weekday) time.Time {
	day := StartOfDay(now)
	offset := (int(wd) - int(day.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset)
}

// ResolveRelativeDateKeyword resolves a relative date keyword against the
// provided "now". Supported forms:
//   - "today", "tomorrow", "yesterday"
//   - a weekday name ("friday"), resolving to the next occurrence
//   - "next <weekday>", same resolution as the bare weekday name
func ResolveRelativeDateKeyword(value string, now time.Time) (time.Time, bool) {
	keyword := strings.ToLower(strings.TrimSpace(value))

	if days, ok := relativeDayKeywords[keyword]; ok {
		return StartOfDay(now).AddDate(0, 0, days), true
	}

	keyword = strings.TrimSpace(strings.TrimPrefix(keyword, "next "))
	if wd, ok := weekdayNames[keyword]; ok {
		return NextWeekday(now, wd), true
	}

	return time.Time{}, false
}
