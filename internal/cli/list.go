package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/erosk616101/agenda/internal/calendar"
	"github.com/erosk616101/agenda/internal/model"
	"github.com/erosk616101/agenda/internal/store"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List appointments",
	Long: `List appointments, grouped by day.

Examples:
  agenda list
  agenda list --on 2026-09-03
  agenda list --week
  agenda list --all`,
	RunE: runList,
}

var (
	listOn   string
	listWeek bool
	listAll  bool
)

func init() {
	listCmd.Flags().StringVar(&listOn, "on", "", "Show a single day (YYYY-MM-DD)")
	listCmd.Flags().BoolVarP(&listWeek, "week", "w", false, "Show the current week")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Show everything in the calendar")
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := store.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		_ = st.Close()
	}()

	var appts []model.Appointment
	switch {
	case listOn != "":
		day, err := time.ParseInLocation("2006-01-02", listOn, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --on value %q, want YYYY-MM-DD", listOn)
		}
		appts = st.ForDay(day)
	case listWeek:
		for _, d := range calendar.WeekGrid(time.Now()) {
			appts = append(appts, st.ForDay(d.Date)...)
		}
	case listAll:
		appts = st.List()
	default:
		appts = st.ForDay(time.Now())
	}

	if len(appts) == 0 {
		fmt.Println("No appointments. Add one with: agenda add \"Title\" --at \"2026-09-01 09:00\"")
		return nil
	}

	sort.Slice(appts, func(i, j int) bool { return appts[i].Start.Before(appts[j].Start) })
	printByDay(appts)
	return nil
}

func printByDay(appts []model.Appointment) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 40 {
		width = w
	}
	titleW := width - 40
	if titleW < 20 {
		titleW = 20
	}

	var day string
	for _, a := range appts {
		d := a.Start.Format("Monday, Jan 2 2006")
		if d != day {
			day = d
			fmt.Printf("\n📅 %s\n", day)
			fmt.Println(strings.Repeat("─", width-2))
		}
		printAppointment(a, titleW)
	}
	fmt.Println()
}

func printAppointment(a model.Appointment, titleW int) {
	title := a.Title
	if len(title) > titleW {
		title = title[:titleW-3] + "..."
	}

	where := a.Location
	if where != "" {
		where = "@ " + where
	}

	shortID := a.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	fmt.Printf("  %s–%s  %-8s  %-*s  %s\n",
		a.Start.Format("15:04"), a.End.Format("15:04"), shortID, titleW, title, where)
}
