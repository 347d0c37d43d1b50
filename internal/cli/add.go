package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/erosk616101/agenda/internal/config"
	"github.com/erosk616101/agenda/internal/model"
	"github.com/erosk616101/agenda/internal/store"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new appointment",
	Long: `Add a new appointment to the calendar.

Examples:
  agenda add "Dentist" --at "2026-09-03 14:30"
  agenda add "Standup" --at "2026-09-01 09:00" --for 15m
  agenda add "Team offsite" --at "2026-09-10 10:00" --for 4h --where "HQ, floor 3"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addAt       string
	addDuration time.Duration
	addWhere    string
	addNotes    string
	addColor    string
)

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "Start time (YYYY-MM-DD HH:MM)")
	addCmd.Flags().DurationVar(&addDuration, "for", 0, "Duration (e.g. 30m, 1h30m)")
	addCmd.Flags().StringVar(&addWhere, "where", "", "Location")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Description")
	addCmd.Flags().StringVar(&addColor, "color", "", "Hex color (e.g. #34A853)")
	_ = addCmd.MarkFlagRequired("at")
}

func runAdd(cmd *cobra.Command, args []string) error {
	st, err := store.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		_ = st.Close()
	}()

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	title := strings.Join(args, " ")

	start, err := time.ParseInLocation("2006-01-02 15:04", addAt, time.Local)
	if err != nil {
		return fmt.Errorf("invalid --at value %q, want YYYY-MM-DD HH:MM", addAt)
	}

	dur := addDuration
	if dur <= 0 {
		dur = time.Duration(cfg.DefaultDuration) * time.Minute
	}

	appt := model.NewAppointment(title, start, start.Add(dur))
	appt.Location = addWhere
	appt.Description = addNotes
	if addColor != "" {
		appt.Color = addColor
	} else {
		appt.Color = cfg.DefaultColor
	}

	saved, err := st.Add(context.Background(), appt)
	if err != nil {
		return fmt.Errorf("failed to add appointment: %w", err)
	}

	if st.Overlaps(saved) {
		fmt.Println("⚠ Overlaps an existing appointment")
	}

	fmt.Printf("✓ Added \"%s\" %s – %s\n",
		title, start.Format("Mon Jan 2 15:04"), start.Add(dur).Format("15:04"))
	return nil
}
