package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// clockRegex matches "5", "5pm", "5:30", "5:30 pm", "17:00".
var clockRegex = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// ParseClockTime parses a time-of-day expression into canonical HH:MM
// 24-hour form. Accepted inputs:
//   - bare hour: "5", "17"
//   - hour and minutes: "5:30", "17:00"
//   - 12-hour with meridiem: "5pm", "5:30 pm", "12am"
//
// A bare hour defaults minutes to 00. Without a meridiem the hour is taken
// as-is in 0-23.
func ParseClockTime(s string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, ".", "")

	m := clockRegex.FindStringSubmatch(normalized)
	if m == nil {
		return "", fmt.Errorf("invalid time: %q", s)
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", fmt.Errorf("invalid time: %q", s)
	}

	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return "", fmt.Errorf("invalid minutes in time: %q", s)
		}
	}

	switch m[3] {
	case "am":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("invalid 12-hour time: %q", s)
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("invalid 12-hour time: %q", s)
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return "", fmt.Errorf("invalid hour in time: %q", s)
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
