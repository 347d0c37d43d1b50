package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/erosk616101/agenda/internal/calendar"
	"github.com/erosk616101/agenda/internal/config"
	"github.com/erosk616101/agenda/internal/layout"
	"github.com/erosk616101/agenda/internal/logger"
	"github.com/erosk616101/agenda/internal/model"
	"github.com/erosk616101/agenda/internal/store"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeForm
	ModeConfirmDelete
	ModeHelp
)

// scale is the timeline geometry shared by the week and day views and their
// mouse handlers. Forward and inverse conversions must agree, so there is
// exactly one of these.
var scale = layout.CellScale

// rowsPerDay is the full height of a 24h timeline at the cell scale.
const rowsPerDay = 48

// dragState tracks an in-flight mouse drag of an appointment. Only one
// drag can be active at a time; Esc abandons it.
type dragState struct {
	active  bool
	id      string
	startX  int
	startY  int
	lastX   int
	lastY   int
}

// storeMsg delivers a fresh appointment snapshot from the store's
// subscription channel.
type storeMsg []model.Appointment

// tickMsg fires about once a minute to move the current-time indicator and
// refresh today flags.
type tickMsg time.Time

// Model is the main TUI model
type Model struct {
	store *store.Store
	cfg   *config.Config
	nav   calendar.Navigator

	appointments []model.Appointment
	apptsByDay   map[string][]model.Appointment

	storeCh   <-chan []model.Appointment
	cancelSub func()

	// UI state
	width     int
	height    int
	mode      Mode
	cursor    int // selected cell in the month grid
	apptIdx   int // selected appointment in week/day views
	scrollRow int // first visible timeline row
	drag      dragState
	form      appointmentForm
	confirmID string
	message   string
}

// NewModel creates a new TUI model
func NewModel(s *store.Store, cfg *config.Config) Model {
	logger.Info("Initializing TUI model")

	nav := calendar.NewNavigator(calendar.ParseViewMode(cfg.DefaultView))
	ch, cancel := s.Subscribe()

	m := Model{
		store:     s,
		cfg:       cfg,
		nav:       nav,
		storeCh:   ch,
		cancelSub: cancel,
		mode:      ModeNormal,
		scrollRow: 16, // start the timeline at 08:00
	}
	m.selectReference()
	return m
}

// Init starts the store subscription pump and the minute tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForStore(m.storeCh), tickCmd())
}

func waitForStore(ch <-chan []model.Appointment) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return storeMsg(snap)
	}
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// setSnapshot replaces the current appointment snapshot and the per-day
// index derived from it.
func (m *Model) setSnapshot(appointments []model.Appointment) {
	m.appointments = appointments
	m.apptsByDay = make(map[string][]model.Appointment)
	for _, a := range appointments {
		k := dayKey(a.Start)
		m.apptsByDay[k] = append(m.apptsByDay[k], a)
	}
	if n := len(m.appointmentsFor(m.nav.Reference)); m.apptIdx >= n {
		m.apptIdx = 0
	}
}

func dayKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day())
}

// appointmentsFor returns the snapshot's appointments on a calendar date,
// in start order as delivered by the store.
func (m *Model) appointmentsFor(day time.Time) []model.Appointment {
	return m.apptsByDay[dayKey(day)]
}

// selectReference moves the month cursor to the cell holding the reference
// date.
func (m *Model) selectReference() {
	for i, d := range calendar.MonthGrid(m.nav.Reference) {
		if calendar.SameDay(d.Date, m.nav.Reference) {
			m.cursor = i
			return
		}
	}
	m.cursor = 0
}

// geometry describes where the timeline body sits on screen, for mouse
// hit-testing in the week and day views.
type geometry struct {
	gutter   int // width of the hour-label gutter
	bodyTop  int // first screen row of the timeline body
	colWidth int
	cols     int
}

func (m *Model) timelineGeometry() geometry {
	g := geometry{gutter: 6, bodyTop: 3, cols: 7}
	if m.nav.Mode == calendar.ViewDay {
		g.cols = 1
	}
	if m.width > g.gutter {
		g.colWidth = (m.width - g.gutter) / g.cols
	}
	return g
}

// hitTest maps a mouse position in the timeline body to a day column and a
// timeline row, reporting false outside the body.
func (g geometry) hitTest(x, y, scrollRow int) (col, row int, ok bool) {
	if y < 0 || x < g.gutter || g.colWidth == 0 {
		return 0, 0, false
	}
	col = (x - g.gutter) / g.colWidth
	if col >= g.cols {
		return 0, 0, false
	}
	row = y + scrollRow
	if row < 0 || row >= rowsPerDay {
		return 0, 0, false
	}
	return col, row, true
}

// columnDate resolves a timeline column to its calendar date.
func (m *Model) columnDate(col int) time.Time {
	if m.nav.Mode == calendar.ViewDay {
		return calendar.StartOfDay(m.nav.Reference)
	}
	return calendar.StartOfWeek(m.nav.Reference).AddDate(0, 0, col)
}

// appointmentAt finds the appointment covering a timeline row on a given
// date, topmost first.
func (m *Model) appointmentAt(day time.Time, row int) (model.Appointment, bool) {
	for _, a := range m.appointmentsFor(day) {
		top := int(scale.TimeToOffset(a.Start))
		height := int(scale.DurationToHeight(a.Start, a.End))
		if row >= top && row < top+height {
			return a, true
		}
	}
	return model.Appointment{}, false
}

// Close tears down the store subscription.
func (m *Model) Close() {
	if m.cancelSub != nil {
		m.cancelSub()
	}
}
