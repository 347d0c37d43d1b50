package model

import "time"

// DefaultColor is applied when an appointment has no color set.
const DefaultColor = "#4285F4"

// Palette is the set of colors offered by the appointment form. Freeform
// values are still accepted; this is only the suggested set.
var Palette = []string{
	"#4285F4", // blue
	"#EA4335", // red
	"#FBBC04", // yellow
	"#34A853", // green
	"#A142F4", // purple
	"#F29900", // orange
}

// Appointment is a single calendar entry. IDs are assigned by the store on
// creation and never change afterwards.
type Appointment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Location    string    `json:"location,omitempty"`
}

// NewAppointment creates an appointment with defaults applied. The ID is
// left empty so the store assigns one.
func NewAppointment(title string, start, end time.Time) Appointment {
	return Appointment{
		Title: title,
		Start: start,
		End:   end,
		Color: DefaultColor,
	}
}

// DisplayColor returns the appointment color, falling back to the default.
func (a *Appointment) DisplayColor() string {
	if a.Color == "" {
		return DefaultColor
	}
	return a.Color
}

// Duration returns the span between start and end.
func (a *Appointment) Duration() time.Duration {
	return a.End.Sub(a.Start)
}

// OverlapsWith reports whether two appointments share any instant, using
// half-open intervals: touching boundaries do not count as an overlap.
func (a *Appointment) OverlapsWith(other *Appointment) bool {
	return a.Start.Before(other.End) && a.End.After(other.Start)
}
