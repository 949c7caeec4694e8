package dates

import (
	"testing"
	"time"
)

func TestResolveRelativeDateKeyword_Instants(t *testing.T) {
	now := time.Date(2026, time.March, 4, 14, 30, 0, 0, time.UTC) // Wednesday

	today, ok := ResolveRelativeDateKeyword(" Today ", now)
	if !ok {
		t.Fatalf("expected today to resolve")
	}
	if today.Format(DateLayout) != "2026-03-04" {
		t.Fatalf("unexpected today: %s", today.Format(DateLayout))
	}

	tomorrow, ok := ResolveRelativeDateKeyword("tomorrow", now)
	if !ok {
		t.Fatalf("expected tomorrow to resolve")
	}
	if tomorrow.Format(DateLayout) != "2026-03-05" {
		t.Fatalf("unexpected tomorrow: %s", tomorrow.Format(DateLayout))
	}

	yesterday, ok := ResolveRelativeDateKeyword("yesterday", now)
	if !ok {
		t.Fatalf("expected yesterday to resolve")
	}
	if yesterday.Format(DateLayout) != "2026-03-03" {
		t.Fatalf("unexpected yesterday: %s", yesterday.Format(DateLayout))
	}

	if _, ok := ResolveRelativeDateKeyword("this-week", now); ok {
		t.Fatalf("expected this-week to be rejected")
	}
}

func TestResolveRelativeDateKeyword_Weekdays(t *testing.T) {
	now := time.Date(2026, time.March, 4, 14, 30, 0, 0, time.UTC) // Wednesday

	friday, ok := ResolveRelativeDateKeyword("friday", now)
	if !ok {
		t.Fatalf("expected friday to resolve")
	}
	if friday.Format(DateLayout) != "2026-03-06" {
		t.Fatalf("unexpected friday: %s", friday.Format(DateLayout))
	}

	// A bare weekday matching today advances a full week, never today.
	wednesday, ok := ResolveRelativeDateKeyword("wednesday", now)
	if !ok {
		t.Fatalf("expected wednesday to resolve")
	}
	if wednesday.Format(DateLayout) != "2026-03-11" {
		t.Fatalf("bare weekday on same day should be a week out, got %s", wednesday.Format(DateLayout))
	}

	nextMonday, ok := ResolveRelativeDateKeyword("next monday", now)
	if !ok {
		t.Fatalf("expected next monday to resolve")
	}
	if nextMonday.Format(DateLayout) != "2026-03-09" {
		t.Fatalf("unexpected next monday: %s", nextMonday.Format(DateLayout))
	}
}

func TestNextWeekday(t *testing.T) {
	sunday := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	if got := NextWeekday(sunday, time.Monday); got.Format(DateLayout) != "2026-03-02" {
		t.Errorf("NextWeekday(sun, monday) = %s, want 2026-03-02", got.Format(DateLayout))
	}
	if got := NextWeekday(sunday, time.Sunday); got.Format(DateLayout) != "2026-03-08" {
		t.Errorf("NextWeekday(sun, sunday) = %s, want 2026-03-08", got.Format(DateLayout))
	}
}
