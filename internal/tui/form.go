package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/erosk616101/agenda/internal/model"
)

// Form field indices, in tab order.
const (
	fieldTitle = iota
	fieldDate
	fieldStart
	fieldEnd
	fieldLocation
	fieldDescription
	fieldColor
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Date",
	"Start",
	"End",
	"Location",
	"Description",
	"Color",
}

const (
	formDateLayout = "2006-01-02"
	formTimeLayout = "15:04"
)

// appointmentForm is the modal create/edit form. Validation happens here,
// at the form boundary: the store never sees an empty title or an
// unparseable time.
type appointmentForm struct {
	inputs    [fieldCount]textinput.Model
	focus     int
	editingID string
	err       string
}

// formSeed pre-fills a blank form from a click or the add shortcut.
type formSeed struct {
	start    time.Time
	duration int // minutes
	color    string
}

func newAppointmentForm(seed formSeed) appointmentForm {
	f := makeForm()
	end := seed.start.Add(time.Duration(seed.duration) * time.Minute)

	f.inputs[fieldDate].SetValue(seed.start.Format(formDateLayout))
	f.inputs[fieldStart].SetValue(seed.start.Format(formTimeLayout))
	f.inputs[fieldEnd].SetValue(end.Format(formTimeLayout))
	f.inputs[fieldColor].SetValue(seed.color)
	return f
}

func editAppointmentForm(a model.Appointment) appointmentForm {
	f := makeForm()
	f.editingID = a.ID

	f.inputs[fieldTitle].SetValue(a.Title)
	f.inputs[fieldDate].SetValue(a.Start.Format(formDateLayout))
	f.inputs[fieldStart].SetValue(a.Start.Format(formTimeLayout))
	f.inputs[fieldEnd].SetValue(a.End.Format(formTimeLayout))
	f.inputs[fieldLocation].SetValue(a.Location)
	f.inputs[fieldDescription].SetValue(a.Description)
	f.inputs[fieldColor].SetValue(a.DisplayColor())
	return f
}

func makeForm() appointmentForm {
	var f appointmentForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 32
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Placeholder = "Appointment title..."
	f.inputs[fieldDate].Placeholder = formDateLayout
	f.inputs[fieldStart].Placeholder = "09:00"
	f.inputs[fieldEnd].Placeholder = "10:00"
	f.inputs[fieldColor].Placeholder = model.DefaultColor
	return f
}

// Focus focuses the active field and blurs the rest.
func (f *appointmentForm) Focus() tea.Cmd {
	for i := range f.inputs {
		if i == f.focus {
			continue
		}
		f.inputs[i].Blur()
	}
	return f.inputs[f.focus].Focus()
}

// Next advances the focused field, wrapping around.
func (f *appointmentForm) Next() {
	f.focus = (f.focus + 1) % fieldCount
}

// Prev moves focus back one field, wrapping around.
func (f *appointmentForm) Prev() {
	f.focus = (f.focus + fieldCount - 1) % fieldCount
}

// Update forwards a key to the focused field.
func (f *appointmentForm) Update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Appointment validates the form and builds the record it describes.
func (f *appointmentForm) Appointment() (model.Appointment, error) {
	var a model.Appointment

	title := strings.TrimSpace(f.inputs[fieldTitle].Value())
	if title == "" {
		return a, errors.New("title is required")
	}

	day, err := time.ParseInLocation(formDateLayout, strings.TrimSpace(f.inputs[fieldDate].Value()), time.Local)
	if err != nil {
		return a, fmt.Errorf("date must look like %s", formDateLayout)
	}
	start, err := parseTimeOfDay(day, f.inputs[fieldStart].Value())
	if err != nil {
		return a, fmt.Errorf("start %v", err)
	}
	end, err := parseTimeOfDay(day, f.inputs[fieldEnd].Value())
	if err != nil {
		return a, fmt.Errorf("end %v", err)
	}
	if !end.After(start) {
		return a, errors.New("end must be after start")
	}

	a = model.Appointment{
		ID:          f.editingID,
		Title:       title,
		Start:       start,
		End:         end,
		Location:    strings.TrimSpace(f.inputs[fieldLocation].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
		Color:       strings.TrimSpace(f.inputs[fieldColor].Value()),
	}
	if a.Color == "" {
		a.Color = model.DefaultColor
	}
	return a, nil
}

func parseTimeOfDay(day time.Time, v string) (time.Time, error) {
	t, err := time.Parse(formTimeLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("time must look like %s", formTimeLayout)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// View renders the form fields with the focused label highlighted.
func (f *appointmentForm) View() string {
	var b strings.Builder

	title := "New Appointment"
	if f.editingID != "" {
		title = "Edit Appointment"
	}
	b.WriteString(WeekHeaderStyle.Render(title) + "\n\n")

	for i := range f.inputs {
		label := LabelStyle
		if i == f.focus {
			label = LabelFocusStyle
		}
		b.WriteString(label.Render(fieldLabels[i]) + " " + f.inputs[i].View() + "\n")
	}

	if f.err != "" {
		b.WriteString("\n" + ModalErrorStyle.Render(f.err) + "\n")
	}
	b.WriteString("\n" + HelpStyle.Render("Tab:next field  Enter:save  Esc:cancel"))
	return b.String()
}
