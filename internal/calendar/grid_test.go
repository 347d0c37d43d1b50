package calendar

import (
	"testing"
	"time"
)

func fixNow(t *testing.T, fixed time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = old })
}

func TestMonthGridSizeAndOrder(t *testing.T) {
	fixNow(t, time.Date(2026, time.August, 31, 12, 0, 0, 0, time.Local))

	for _, ref := range []time.Time{
		time.Date(2026, time.August, 15, 0, 0, 0, 0, time.Local),
		time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.Local),
		time.Date(2026, time.December, 25, 0, 0, 0, 0, time.Local),
	} {
		days := MonthGrid(ref)
		if len(days) != MonthDays {
			t.Fatalf("MonthGrid(%v) returned %d cells, want %d", ref, len(days), MonthDays)
		}
		if days[0].Date.Weekday() != time.Sunday {
			t.Fatalf("grid for %v starts on %v, want Sunday", ref, days[0].Date.Weekday())
		}
		for i := 1; i < len(days); i++ {
			if !days[i].Date.After(days[i-1].Date) {
				t.Fatalf("grid for %v not strictly ascending at %d", ref, i)
			}
			if days[i].Date.Sub(days[i-1].Date) > 25*time.Hour {
				t.Fatalf("grid for %v has a gap at %d", ref, i)
			}
		}
	}
}

func TestMonthGridCurrentMonthFlags(t *testing.T) {
	fixNow(t, time.Date(2026, time.August, 31, 12, 0, 0, 0, time.Local))

	ref := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.Local)
	for _, d := range MonthGrid(ref) {
		want := d.Date.Month() == time.September
		if d.IsCurrentMonth != want {
			t.Fatalf("cell %v: IsCurrentMonth=%v, want %v", d.Date, d.IsCurrentMonth, want)
		}
	}
}

func TestMonthGridYearRollover(t *testing.T) {
	fixNow(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.Local))

	// January grids lead with late December of the previous year.
	days := MonthGrid(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local))
	// Jan 1 2026 is a Thursday, so four December 2025 cells lead.
	if got := days[0].Date; got.Year() != 2025 || got.Month() != time.December || got.Day() != 28 {
		t.Fatalf("january grid leads with %v, want 2025-12-28", got)
	}

	// December grids trail into January of the next year.
	days = MonthGrid(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.Local))
	last := days[len(days)-1].Date
	if last.Year() != 2026 || last.Month() != time.January {
		t.Fatalf("december grid trails with %v, want January 2026", last)
	}
}

func TestMonthGridTodayFlag(t *testing.T) {
	today := time.Date(2026, time.August, 31, 9, 30, 0, 0, time.Local)
	fixNow(t, today)

	count := 0
	for _, d := range MonthGrid(today) {
		if d.IsToday {
			count++
			if !SameDay(d.Date, today) {
				t.Fatalf("IsToday set on %v", d.Date)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one today cell, got %d", count)
	}
}

func TestWeekGrid(t *testing.T) {
	fixNow(t, time.Date(2026, time.August, 31, 0, 0, 0, 0, time.Local))

	// Wednesday Sep 2 2026: week runs Sunday Aug 30 .. Saturday Sep 5.
	ref := time.Date(2026, time.September, 2, 15, 4, 0, 0, time.Local)
	days := WeekGrid(ref)
	if len(days) != 7 {
		t.Fatalf("WeekGrid returned %d cells, want 7", len(days))
	}
	if days[0].Date.Weekday() != time.Sunday {
		t.Fatalf("week starts on %v, want Sunday", days[0].Date.Weekday())
	}
	if days[0].Date.Day() != 30 || days[0].Date.Month() != time.August {
		t.Fatalf("week starts on %v, want Aug 30", days[0].Date)
	}
	for i, d := range days {
		if i > 0 && !d.Date.After(days[i-1].Date) {
			t.Fatalf("week grid not ascending at %d", i)
		}
		want := d.Date.Month() == time.September
		if d.IsCurrentMonth != want {
			t.Fatalf("cell %v: IsCurrentMonth=%v, want %v", d.Date, d.IsCurrentMonth, want)
		}
	}
}

func TestWeekGridOnSunday(t *testing.T) {
	fixNow(t, time.Date(2026, time.August, 31, 0, 0, 0, 0, time.Local))

	ref := time.Date(2026, time.September, 6, 0, 0, 0, 0, time.Local) // a Sunday
	days := WeekGrid(ref)
	if !SameDay(days[0].Date, ref) {
		t.Fatalf("week for a Sunday should start on that Sunday, got %v", days[0].Date)
	}
}
