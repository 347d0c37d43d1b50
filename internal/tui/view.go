package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/erosk616101/agenda/internal/calendar"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	switch m.nav.Mode {
	case calendar.ViewWeek:
		body = m.renderTimeline(calendar.WeekGrid(m.nav.Reference))
	case calendar.ViewDay:
		body = m.renderTimeline(m.dayAsGrid())
	default:
		body = m.renderMonth()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body)

	switch m.mode {
	case ModeForm:
		content = m.overlay(ModalStyle.Render(m.form.View()))
	case ModeConfirmDelete:
		content = m.overlay(m.renderConfirm())
	case ModeHelp:
		content = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

func (m Model) overlay(modal string) string {
	return lipgloss.Place(
		m.width, m.height-2,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) renderHeader() string {
	title := m.nav.Reference.Format("January 2006")
	if m.nav.Mode == calendar.ViewDay {
		title = m.nav.Reference.Format("Monday, January 2, 2006")
	}

	left := HeaderStyle.Render(title)
	mode := HeaderModeStyle.Render(fmt.Sprintf("[%s]", m.nav.Mode))
	return left + mode
}

// dayAsGrid wraps the reference date as a single-cell grid so the day view
// shares the timeline renderer.
func (m Model) dayAsGrid() []calendar.Day {
	today := time.Now()
	d := calendar.StartOfDay(m.nav.Reference)
	return []calendar.Day{{
		Date:           d,
		IsCurrentMonth: true,
		IsToday:        calendar.SameDay(d, today),
	}}
}

func (m Model) renderMonth() string {
	grid := calendar.MonthGrid(m.nav.Reference)

	cellW := (m.width - 2) / 7
	if cellW < 8 {
		cellW = 8
	}
	cellH := (m.height - 7) / 6
	if cellH < 2 {
		cellH = 2
	}

	// Weekday header row.
	var heads []string
	for i := 0; i < 7; i++ {
		name := time.Weekday(i).String()[:3]
		heads = append(heads, WeekHeaderStyle.Width(cellW+2).Align(lipgloss.Center).Render(name))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, heads...)

	var weeks []string
	for row := 0; row < 6; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			i := row*7 + col
			cells = append(cells, m.renderMonthCell(grid[i], i == m.cursor, cellW, cellH))
		}
		weeks = append(weeks, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, weeks...)...)
}

func (m Model) renderMonthCell(d calendar.Day, selected bool, w, h int) string {
	style := DayCellStyle
	numStyle := DayNumberStyle
	switch {
	case selected:
		style = DayCellSelectedStyle
	case d.IsToday:
		style = DayCellTodayStyle
	case !d.IsCurrentMonth:
		style = DayCellOutsideStyle
	}
	if d.IsToday {
		numStyle = DayNumberTodayStyle
	} else if !d.IsCurrentMonth {
		numStyle = DayNumberOutsideStyle
	}

	appts := m.appointmentsFor(d.Date)

	lines := []string{numStyle.Render(fmt.Sprintf("%2d", d.Date.Day()))}
	for i, a := range appts {
		if i >= h-1 {
			lines[len(lines)-1] = HelpStyle.Render(fmt.Sprintf("+%d more", len(appts)-(h-2)))
			break
		}
		entry := truncate(a.Start.Format("15:04")+" "+a.Title, w-2)
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(a.DisplayColor())).Render(entry))
	}

	return style.Width(w).Height(h).Render(strings.Join(lines, "\n"))
}

// bodyHeight is the number of timeline rows that fit on screen.
func (m Model) bodyHeight() int {
	h := m.height - 5
	if h < 4 {
		h = 4
	}
	if h > rowsPerDay {
		h = rowsPerDay
	}
	return h
}

func (m Model) renderTimeline(days []calendar.Day) string {
	g := m.timelineGeometry()
	rows := m.bodyHeight()
	now := time.Now()
	nowRow := int(scale.TimeToOffset(now))

	// Day header line above the body.
	head := strings.Repeat(" ", g.gutter)
	for _, d := range days {
		style := WeekHeaderStyle
		if !d.IsCurrentMonth {
			style = WeekHeaderDimStyle
		}
		label := d.Date.Format("Mon 2")
		if d.IsToday {
			label = "• " + label
		}
		head += style.Width(g.colWidth).Align(lipgloss.Center).Render(truncate(label, g.colWidth))
	}

	sep := strings.Repeat("─", m.width)

	var b strings.Builder
	b.WriteString(head + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(Border).Render(sep) + "\n")

	for r := m.scrollRow; r < m.scrollRow+rows && r < rowsPerDay; r++ {
		// Hour labels sit on even rows at two rows per hour.
		label := strings.Repeat(" ", g.gutter)
		if r%2 == 0 {
			label = GutterStyle.Render(fmt.Sprintf("%5s ", fmt.Sprintf("%02d:00", r/2)))
		}
		b.WriteString(label)

		for _, d := range days {
			b.WriteString(m.renderTimelineCell(d, r, nowRow, g.colWidth))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderTimelineCell(d calendar.Day, row, nowRow, width int) string {
	if a, ok := m.appointmentAt(d.Date, row); ok {
		top := int(scale.TimeToOffset(a.Start))
		text := ""
		switch row {
		case top:
			text = fmt.Sprintf(" %s %s", a.Start.Format("15:04"), a.Title)
		case top + 1:
			text = " " + a.Location
		}
		style := AppointmentStyle(a.DisplayColor())
		if sel, ok := m.selectedAppointment(); ok && sel.ID == a.ID && !m.drag.active {
			style = style.Bold(true).Underline(row == top)
		}
		if m.drag.active && m.drag.id == a.ID {
			style = style.Faint(true)
		}
		return style.Width(width).Render(truncate(text, width))
	}

	// Empty slot: current-time indicator on today's column, otherwise a
	// faint rule on hour boundaries.
	if d.IsToday && row == nowRow {
		return TimeIndicatorStyle.Render(strings.Repeat("─", width))
	}
	if row%2 == 0 {
		return lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("╌", width))
	}
	return strings.Repeat(" ", width)
}

func (m Model) renderConfirm() string {
	a, ok := m.store.Get(m.confirmID)
	if !ok {
		content := "This appointment no longer exists.\n\n"
		content += HelpStyle.Render("Esc:close")
		return ModalStyle.Render(content)
	}
	content := WeekHeaderStyle.Render("Delete appointment?") + "\n\n"
	content += fmt.Sprintf("%s  %s – %s\n\n",
		a.Title, a.Start.Format("Jan 2 15:04"), a.End.Format("15:04"))
	content += HelpStyle.Render("y/Enter:delete  n/Esc:keep")
	return ModalStyle.BorderForeground(Accent).Render(content)
}

func (m Model) renderStatusBar() string {
	help := "a:add  e:edit  d:delete  m/w/D:view  p/n:prev/next  t:today  ?:help  q:quit"
	if m.drag.active {
		help = "Dragging appointment... release to drop, Esc to cancel"
	} else if m.message != "" {
		help = m.message
	}
	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderHelp() string {
	help := `
╭──── Keyboard Shortcuts ────╮
│                            │
│  Navigation                │
│  ──────────                │
│  p/[     Previous period   │
│  n/]     Next period       │
│  t       Jump to today     │
│  h/j/k/l Move selection    │
│                            │
│  Views                     │
│  ─────                     │
│  m       Month view        │
│  w       Week view         │
│  D       Day view          │
│                            │
│  Appointments              │
│  ────────────              │
│  a       Add               │
│  e/Enter Edit selected     │
│  d/x     Delete selected   │
│  click   Create at time    │
│  drag    Reschedule        │
│                            │
│  Other                     │
│  ─────                     │
│  ?       Toggle help       │
│  q       Quit              │
│                            │
╰────────────────────────────╯

      Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
