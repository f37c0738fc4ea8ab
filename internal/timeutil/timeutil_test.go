package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestDayKeepsCalendarDateOfLocation(t *testing.T) {
	loc := time.FixedZone("toronto", -5*60*60)
	value := time.Date(2026, 1, 23, 22, 30, 0, 0, loc)
	got := Day(value)
	want := time.Date(2026, 1, 23, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestAddDaysCrossesMonthBoundary(t *testing.T) {
	got := AddDays(time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC), -3)
	if FormatDate(got) != "2026-02-27" {
		t.Fatalf("expected 2026-02-27, got %s", FormatDate(got))
	}
}

func TestTodayUsesLocation(t *testing.T) {
	now := time.Date(2026, 1, 24, 3, 0, 0, 0, time.UTC)
	loc := time.FixedZone("et", -5*60*60)
	if got := FormatDate(Today(now, loc)); got != "2026-01-23" {
		t.Fatalf("expected 2026-01-23 in ET, got %s", got)
	}
	if got := FormatDate(Today(now, nil)); got != "2026-01-24" {
		t.Fatalf("expected UTC date when loc nil, got %s", got)
	}
}

func TestEachDayInclusive(t *testing.T) {
	start := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 23, 0, 0, 0, 0, time.UTC)
	var days []string
	EachDay(start, end, func(d time.Time) { days = append(days, FormatDate(d)) })
	want := []string{"2026-01-20", "2026-01-21", "2026-01-22", "2026-01-23"}
	if len(days) != len(want) {
		t.Fatalf("expected %v, got %v", want, days)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, days)
		}
	}

	called := false
	EachDay(end, start, func(time.Time) { called = true })
	if called {
		t.Fatalf("expected no iteration when start is after end")
	}
}
