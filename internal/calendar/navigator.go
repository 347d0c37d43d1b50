package calendar

import "time"

// ViewMode selects which grid the calendar shows.
type ViewMode int

const (
	ViewMonth ViewMode = iota
	ViewWeek
	ViewDay
)

// String returns the view mode name as used in config files and headers.
func (v ViewMode) String() string {
	switch v {
	case ViewWeek:
		return "week"
	case ViewDay:
		return "day"
	default:
		return "month"
	}
}

// ParseViewMode converts a config string to a ViewMode, defaulting to month.
func ParseViewMode(s string) ViewMode {
	switch s {
	case "week":
		return ViewWeek
	case "day":
		return ViewDay
	default:
		return ViewMonth
	}
}

// Navigator tracks the reference date the views are anchored on and the
// active view mode. It is an owned value passed to whoever renders, not a
// package-level singleton.
type Navigator struct {
	Reference time.Time
	Mode      ViewMode
}

// NewNavigator starts at today's date in the given mode.
func NewNavigator(mode ViewMode) Navigator {
	return Navigator{Reference: StartOfDay(now()), Mode: mode}
}

// SetMode switches views without moving the reference date.
func (n *Navigator) SetMode(mode ViewMode) {
	n.Mode = mode
}

// GoToToday resets the reference date to the current wall-clock date.
func (n *Navigator) GoToToday() {
	n.Reference = StartOfDay(now())
}

// StepPrevious moves the reference date back by one unit of the active view.
func (n *Navigator) StepPrevious() {
	n.step(-1)
}

// StepNext moves the reference date forward by one unit of the active view.
func (n *Navigator) StepNext() {
	n.step(1)
}

func (n *Navigator) step(dir int) {
	switch n.Mode {
	case ViewDay:
		n.Reference = n.Reference.AddDate(0, 0, dir)
	case ViewWeek:
		n.Reference = n.Reference.AddDate(0, 0, 7*dir)
	default:
		n.Reference = addMonthClamped(n.Reference, dir)
	}
}

// addMonthClamped steps by whole calendar months, clamping the day to the
// target month's length. Jan 31 +1 lands on Feb 28/29, never Mar 2 or 3,
// which plain AddDate normalization would produce.
func addMonthClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	target := first.AddDate(0, months, 0)
	day := t.Day()
	if last := target.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
