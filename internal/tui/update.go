package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/erosk616101/agenda/internal/calendar"
	"github.com/erosk616101/agenda/internal/layout"
	"github.com/erosk616101/agenda/internal/logger"
	"github.com/erosk616101/agenda/internal/model"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storeMsg:
		m.setSnapshot(msg)
		// The delete target can disappear while its confirm modal is open.
		if m.mode == ModeConfirmDelete {
			if _, ok := m.store.Get(m.confirmID); !ok {
				m.confirmID = ""
				m.mode = ModeNormal
			}
		}
		return m, waitForStore(m.storeCh)

	case tickMsg:
		// Re-render only: the time indicator and today flags are computed
		// at draw time.
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case ModeForm:
			return m.updateForm(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, keys.Escape):
		if m.drag.active {
			m.drag = dragState{}
			m.message = "Drag cancelled"
		} else {
			m.message = ""
		}

	case key.Matches(msg, keys.Prev):
		m.nav.StepPrevious()
		m.selectReference()
		m.apptIdx = 0

	case key.Matches(msg, keys.Next):
		m.nav.StepNext()
		m.selectReference()
		m.apptIdx = 0

	case key.Matches(msg, keys.Today):
		m.nav.GoToToday()
		m.selectReference()
		m.apptIdx = 0

	case key.Matches(msg, keys.MonthView):
		m.nav.SetMode(calendar.ViewMonth)
		m.selectReference()

	case key.Matches(msg, keys.WeekView):
		m.nav.SetMode(calendar.ViewWeek)

	case key.Matches(msg, keys.DayView):
		m.nav.SetMode(calendar.ViewDay)

	case key.Matches(msg, keys.Left):
		m.moveCursor(-1, 0)

	case key.Matches(msg, keys.Right):
		m.moveCursor(1, 0)

	case key.Matches(msg, keys.Up):
		m.moveCursor(0, -1)

	case key.Matches(msg, keys.Down):
		m.moveCursor(0, 1)

	case key.Matches(msg, keys.Add):
		start := m.defaultStart()
		m.form = newAppointmentForm(formSeed{
			start:    start,
			duration: m.cfg.DefaultDuration,
			color:    m.cfg.DefaultColor,
		})
		m.mode = ModeForm
		return m, m.form.Focus()

	case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
		if a, ok := m.selectedAppointment(); ok {
			m.form = editAppointmentForm(a)
			m.mode = ModeForm
			return m, m.form.Focus()
		}

	case key.Matches(msg, keys.Delete):
		if a, ok := m.selectedAppointment(); ok {
			if m.cfg.ConfirmDelete {
				m.confirmID = a.ID
				m.mode = ModeConfirmDelete
			} else {
				return m, m.removeAppointment(a.ID)
			}
		}

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

// moveCursor moves either the month-grid cursor or the week/day
// appointment selection, depending on the active view.
func (m *Model) moveCursor(dx, dy int) {
	if m.nav.Mode == calendar.ViewMonth {
		next := m.cursor + dx + 7*dy
		if next >= 0 && next < calendar.MonthDays {
			m.cursor = next
		}
		return
	}

	// Timeline views: up/down selects appointments, left/right moves days.
	if dx != 0 {
		m.nav.Reference = m.nav.Reference.AddDate(0, 0, dx)
		m.apptIdx = 0
		return
	}
	n := len(m.appointmentsFor(m.nav.Reference))
	if n == 0 {
		// No selection to move; scroll the timeline instead.
		m.scroll(2 * dy)
		return
	}
	m.apptIdx += dy
	if m.apptIdx < 0 {
		m.apptIdx = 0
	}
	if m.apptIdx >= n {
		m.apptIdx = n - 1
	}
}

func (m *Model) scroll(delta int) {
	m.scrollRow += delta
	max := rowsPerDay - m.bodyHeight()
	if max < 0 {
		max = 0
	}
	if m.scrollRow > max {
		m.scrollRow = max
	}
	if m.scrollRow < 0 {
		m.scrollRow = 0
	}
}

// defaultStart picks the start time a blank form opens with: the selected
// month cell's date (or the reference date) at 9am.
func (m *Model) defaultStart() time.Time {
	day := calendar.StartOfDay(m.nav.Reference)
	if m.nav.Mode == calendar.ViewMonth {
		grid := calendar.MonthGrid(m.nav.Reference)
		if m.cursor < len(grid) {
			day = grid[m.cursor].Date
		}
	}
	return day.Add(9 * time.Hour)
}

// selectedAppointment resolves the current selection: the highlighted
// appointment in timeline views, or the first appointment of the selected
// month cell.
func (m *Model) selectedAppointment() (model.Appointment, bool) {
	if m.nav.Mode == calendar.ViewMonth {
		grid := calendar.MonthGrid(m.nav.Reference)
		if m.cursor >= len(grid) {
			return model.Appointment{}, false
		}
		appts := m.appointmentsFor(grid[m.cursor].Date)
		if len(appts) == 0 {
			return model.Appointment{}, false
		}
		return appts[0], true
	}

	appts := m.appointmentsFor(m.nav.Reference)
	if m.apptIdx < 0 || m.apptIdx >= len(appts) {
		return model.Appointment{}, false
	}
	return appts[m.apptIdx], true
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(-2)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.scroll(2)
			return m, nil
		}
	}

	if m.nav.Mode == calendar.ViewMonth {
		return m, nil
	}

	g := m.timelineGeometry()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		col, row, ok := g.hitTest(msg.X, msg.Y-g.bodyTop, m.scrollRow)
		if !ok {
			return m, nil
		}
		if a, hit := m.appointmentAt(m.columnDate(col), row); hit {
			m.drag = dragState{
				active: true,
				id:     a.ID,
				startX: msg.X, startY: msg.Y,
				lastX: msg.X, lastY: msg.Y,
			}
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.drag.active {
			m.drag.lastX = msg.X
			m.drag.lastY = msg.Y
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.drag.active {
			drag := m.drag
			m.drag = dragState{}
			return m, m.finishDrag(drag, msg.X, msg.Y)
		}
		// A plain click on an empty slot creates an appointment there.
		col, row, ok := g.hitTest(msg.X, msg.Y-g.bodyTop, m.scrollRow)
		if !ok {
			return m, nil
		}
		day := m.columnDate(col)
		if _, hit := m.appointmentAt(day, row); hit {
			return m, nil
		}
		start := scale.OffsetToTime(float64(row), day)
		m.form = newAppointmentForm(formSeed{
			start:    start,
			duration: m.cfg.DefaultDuration,
			color:    m.cfg.DefaultColor,
		})
		m.mode = ModeForm
		return m, m.form.Focus()
	}

	return m, nil
}

// finishDrag commits a completed drag: the vertical delta moves the
// appointment in time, the horizontal delta in days. Duration never
// changes.
func (m *Model) finishDrag(d dragState, x, y int) tea.Cmd {
	a, ok := m.store.Get(d.id)
	if !ok {
		return nil
	}

	g := m.timelineGeometry()
	deltaDays := 0
	if m.nav.Mode == calendar.ViewWeek {
		deltaDays = layout.ColumnDelta(float64(x-d.startX), float64(g.colWidth))
	}
	newStart, newEnd := scale.ApplyDrag(a, float64(y-d.startY), deltaDays)

	if newStart.Equal(a.Start) && newEnd.Equal(a.End) {
		return nil
	}
	a.Start = newStart
	a.End = newEnd

	s := m.store
	return func() tea.Msg {
		if err := s.Update(context.Background(), a); err != nil {
			logger.Error("Failed to commit drag", logger.F("error", err), logger.F("id", a.ID))
		}
		return nil
	}
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter), msg.String() == "y":
		id := m.confirmID
		m.confirmID = ""
		m.mode = ModeNormal
		return m, m.removeAppointment(id)
	case key.Matches(msg, keys.Escape), msg.String() == "n":
		m.confirmID = ""
		m.mode = ModeNormal
	}
	return m, nil
}

func (m *Model) removeAppointment(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		if err := s.Remove(context.Background(), id); err != nil {
			logger.Error("Failed to remove appointment", logger.F("error", err), logger.F("id", id))
		}
		return nil
	}
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Tab):
		m.form.Next()
		return m, m.form.Focus()

	case key.Matches(msg, keys.ShiftTab):
		m.form.Prev()
		return m, m.form.Focus()

	case key.Matches(msg, keys.Enter):
		a, err := m.form.Appointment()
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}

		warn := ""
		if m.store.Overlaps(a) {
			warn = " (overlaps another appointment)"
		}

		s := m.store
		editing := m.form.editingID != ""
		m.mode = ModeNormal
		if editing {
			m.message = fmt.Sprintf("Updated: %s%s", a.Title, warn)
			return m, func() tea.Msg {
				if err := s.Update(context.Background(), a); err != nil {
					logger.Error("Failed to update appointment", logger.F("error", err))
				}
				return nil
			}
		}
		m.message = fmt.Sprintf("Added: %s%s", a.Title, warn)
		return m, func() tea.Msg {
			if _, err := s.Add(context.Background(), a); err != nil {
				logger.Error("Failed to add appointment", logger.F("error", err))
			}
			return nil
		}
	}

	cmd := m.form.Update(msg)
	return m, cmd
}
