package dates

import (
	"testing"
	"time"
)

func TestIsValidDate(t *testing.T) {
	valid := []string{"2026-01-01", "2026-12-31", "2000-02-29"}
	for _, s := range valid {
		if !IsValidDate(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []string{"", "2026-13-01", "2026-02-30", "01-01-2026", "tomorrow", "2026/01/01"}
	for _, s := range invalid {
		if IsValidDate(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestParseDateArg(t *testing.T) {
	now := time.Date(2026, time.March, 4, 14, 30, 0, 0, time.UTC) // Wednesday

	cases := []struct {
		arg  string
		want string
	}{
		{"", "2026-03-04"},
		{"today", "2026-03-04"},
		{"tomorrow", "2026-03-05"},
		{"yesterday", "2026-03-03"},
		{"friday", "2026-03-06"},
		{"next friday", "2026-03-06"},
		{"2026-06-15", "2026-06-15"},
	}
	for _, tc := range cases {
		got, err := ParseDateArg(tc.arg, now)
		if err != nil {
			t.Fatalf("ParseDateArg(%q) error: %v", tc.arg, err)
		}
		if got.Format(DateLayout) != tc.want {
			t.Errorf("ParseDateArg(%q) = %s, want %s", tc.arg, got.Format(DateLayout), tc.want)
		}
	}

	if _, err := ParseDateArg("not-a-date", now); err == nil {
		t.Fatalf("expected error for unparseable date")
	}
}

func TestStartOfWeek(t *testing.T) {
	wednesday := time.Date(2026, time.March, 4, 18, 0, 0, 0, time.UTC)

	monday := StartOfWeek(wednesday, time.Monday)
	if monday.Format(DateLayout) != "2026-03-02" {
		t.Errorf("StartOfWeek(wed, monday) = %s, want 2026-03-02", monday.Format(DateLayout))
	}

	// A week starting on the same weekday stays put.
	sameDay := StartOfWeek(wednesday, time.Wednesday)
	if sameDay.Format(DateLayout) != "2026-03-04" {
		t.Errorf("StartOfWeek(wed, wednesday) = %s, want 2026-03-04", sameDay.Format(DateLayout))
	}
}
