// Package layout converts between clock time and vertical position on a
// 24-hour timeline. The forward and inverse conversions of one view must
// share the same Scale or drags and clicks land on the wrong time.
package layout

import (
	"math"
	"time"

	"github.com/erosk616101/agenda/internal/model"
)

// Scale fixes the visual parameters of one timeline view.
type Scale struct {
	// PixelsPerMinute maps minutes-of-day to vertical units. The unit is
	// whatever the view draws in: CSS pixels, terminal rows, anything.
	PixelsPerMinute float64
	// MinHeight is the floor applied to appointment heights so short
	// entries stay clickable.
	MinHeight float64
	// SnapMinutes is the granularity clicks are rounded to.
	SnapMinutes int
}

// DefaultScale matches the week/day timeline: 0.8 px per minute (48 px per
// hour), 20 px minimum height, quarter-hour snapping.
var DefaultScale = Scale{PixelsPerMinute: 0.8, MinHeight: 20, SnapMinutes: 15}

// CellScale is the terminal rendition of the same timeline: two rows per
// hour, one row minimum, quarter-hour snapping.
var CellScale = Scale{PixelsPerMinute: 2.0 / 60.0, MinHeight: 1, SnapMinutes: 15}

// MinutesOfDay returns minutes since midnight, ignoring the date component.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// TimeToOffset returns the vertical position of an instant's time of day.
func (s Scale) TimeToOffset(t time.Time) float64 {
	return float64(MinutesOfDay(t)) * s.PixelsPerMinute
}

// DurationToHeight returns the rendered height for a start/end pair, floored
// at MinHeight. Only time of day is considered, so a span crossing midnight
// yields a negative minute difference and collapses to the floor; callers
// that care must split such appointments before rendering.
func (s Scale) DurationToHeight(start, end time.Time) float64 {
	minutes := MinutesOfDay(end) - MinutesOfDay(start)
	return math.Max(float64(minutes)*s.PixelsPerMinute, s.MinHeight)
}

// OffsetToTime is the inverse of TimeToOffset: it maps a vertical position
// to an instant on ref's date, snapped to the nearest SnapMinutes with
// seconds zeroed. A snap that rounds minutes up to 60 carries into the hour.
func (s Scale) OffsetToTime(px float64, ref time.Time) time.Time {
	total := px / s.PixelsPerMinute
	hour := int(total) / 60
	minute := int(total) % 60

	if s.SnapMinutes > 0 {
		minute = int(math.Round(float64(minute)/float64(s.SnapMinutes))) * s.SnapMinutes
		if minute == 60 {
			hour++
			minute = 0
		}
	}

	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, ref.Location())
}

// ApplyDrag translates a pointer drag into new start/end instants for an
// appointment: the vertical delta moves both ends by the same whole number
// of minutes, the column delta moves both by whole days. Duration is
// preserved exactly. Nothing is clamped or snapped beyond minute rounding;
// drags are continuous where clicks are discretized.
func (s Scale) ApplyDrag(a model.Appointment, deltaPixelsY float64, deltaDays int) (newStart, newEnd time.Time) {
	minutes := int(math.Round(deltaPixelsY / s.PixelsPerMinute))
	shift := time.Duration(minutes) * time.Minute

	newStart = a.Start.Add(shift).AddDate(0, 0, deltaDays)
	newEnd = a.End.Add(shift).AddDate(0, 0, deltaDays)
	return newStart, newEnd
}

// ColumnDelta converts a horizontal pixel delta to whole day columns.
func ColumnDelta(deltaPixelsX, columnWidth float64) int {
	if columnWidth <= 0 {
		return 0
	}
	return int(math.Round(deltaPixelsX / columnWidth))
}
