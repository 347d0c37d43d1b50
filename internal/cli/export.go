package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erosk616101/agenda/internal/ics"
	"github.com/erosk616101/agenda/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the calendar as iCalendar (.ics)",
	Long: `Export every appointment as an iCalendar feed.

Examples:
  agenda export > calendar.ics
  agenda export -o calendar.ics`,
	RunE: runExport,
}

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := store.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		_ = st.Close()
	}()

	body := ics.Export(st.List())

	if exportOut == "" {
		fmt.Print(body)
		return nil
	}

	if err := os.WriteFile(exportOut, []byte(body), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	fmt.Printf("✓ Exported %d appointment(s) to %s\n", len(st.List()), exportOut)
	return nil
}
