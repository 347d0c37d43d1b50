package calendar

import "time"

// now is swappable in tests so "today" flags are deterministic.
var now = time.Now

// Day is one cell of a month or week grid. Grids are recomputed on every
// navigation or view change; nothing here is cached.
type Day struct {
	Date           time.Time
	IsCurrentMonth bool
	IsToday        bool
}

// MonthDays is the fixed size of a month grid: 6 full weeks.
const MonthDays = 42

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// MonthGrid returns the 42 cells shown for the month containing ref: the
// tail of the previous month back to the Sunday on or before the 1st, every
// day of the month itself, then the head of the next month filling the 6x7
// grid. Cells outside ref's month have IsCurrentMonth false.
func MonthGrid(ref time.Time) []Day {
	today := now()
	year, month := ref.Year(), ref.Month()

	first := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	lead := int(first.Weekday())

	days := make([]Day, 0, MonthDays)
	for i := lead; i > 0; i-- {
		d := first.AddDate(0, 0, -i)
		days = append(days, Day{Date: d, IsToday: SameDay(d, today)})
	}

	last := first.AddDate(0, 1, -1).Day()
	for i := 1; i <= last; i++ {
		d := time.Date(year, month, i, 0, 0, 0, 0, ref.Location())
		days = append(days, Day{Date: d, IsCurrentMonth: true, IsToday: SameDay(d, today)})
	}

	next := first.AddDate(0, 1, 0)
	for i := 0; len(days) < MonthDays; i++ {
		d := next.AddDate(0, 0, i)
		days = append(days, Day{Date: d, IsToday: SameDay(d, today)})
	}

	return days
}

// WeekGrid returns the 7 cells for the week containing ref, starting on the
// Sunday on or before it. IsCurrentMonth marks cells sharing ref's month,
// used only to dim cross-month days in the week header.
func WeekGrid(ref time.Time) []Day {
	today := now()
	sunday := StartOfWeek(ref)

	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		d := sunday.AddDate(0, 0, i)
		days = append(days, Day{
			Date:           d,
			IsCurrentMonth: d.Month() == ref.Month(),
			IsToday:        SameDay(d, today),
		})
	}
	return days
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// StartOfDay returns midnight of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
