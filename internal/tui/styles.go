package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Primary   = lipgloss.Color("#4285F4")
	Accent    = lipgloss.Color("#EA4335")
	Text      = lipgloss.Color("#FFFFFF")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Surface   = lipgloss.Color("#16213e")
	TodayBg   = lipgloss.Color("#1a3a6e")
)

// Styles
var (
	// Header bar
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	HeaderModeStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	// Month grid cells
	DayCellStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	DayCellOutsideStyle = DayCellStyle.
				Foreground(TextMuted)

	DayCellTodayStyle = DayCellStyle.
				Background(TodayBg).
				Bold(true)

	DayCellSelectedStyle = DayCellStyle.
				BorderForeground(Primary).
				Bold(true)

	DayNumberStyle        = lipgloss.NewStyle().Bold(true)
	DayNumberOutsideStyle = lipgloss.NewStyle().Foreground(TextMuted)
	DayNumberTodayStyle   = lipgloss.NewStyle().Bold(true).Foreground(Primary)

	// Week/day timeline
	GutterStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	WeekHeaderStyle = lipgloss.NewStyle().
			Bold(true)

	WeekHeaderDimStyle = lipgloss.NewStyle().
				Foreground(TextMuted)

	TimeIndicatorStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalErrorStyle = lipgloss.NewStyle().
			Foreground(Accent)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	// Form labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Width(12)

	LabelFocusStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Width(12)
)

// AppointmentStyle renders an appointment block in its own color.
func AppointmentStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(Text)
}
