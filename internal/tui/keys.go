package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Prev      key.Binding
	Next      key.Binding
	Today     key.Binding
	MonthView key.Binding
	WeekView  key.Binding
	DayView   key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Enter     key.Binding
	Tab       key.Binding
	ShiftTab  key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Prev:      key.NewBinding(key.WithKeys("p", "["), key.WithHelp("p", "previous")),
	Next:      key.NewBinding(key.WithKeys("n", "]"), key.WithHelp("n", "next")),
	Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	MonthView: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month view")),
	WeekView:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week view")),
	DayView:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "day view")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add appointment")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:    key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/confirm")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	ShiftTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
