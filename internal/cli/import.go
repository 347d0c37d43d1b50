package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erosk616101/agenda/internal/ics"
	"github.com/erosk616101/agenda/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import appointments from an iCalendar (.ics) file",
	Long: `Import appointments from an iCalendar file. Events that share an ID
with an existing appointment are updated in place.

Examples:
  agenda import calendar.ics`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	body, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	appts, err := ics.Import(body)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}
	if len(appts) == 0 {
		fmt.Println("No importable events found")
		return nil
	}

	st, err := store.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		_ = st.Close()
	}()

	added, updated := 0, 0
	for _, a := range appts {
		if _, ok := st.Get(a.ID); ok {
			if err := st.Update(context.Background(), a); err != nil {
				return fmt.Errorf("failed to update %s: %w", a.ID, err)
			}
			updated++
			continue
		}
		if _, err := st.Add(context.Background(), a); err != nil {
			return fmt.Errorf("failed to add %q: %w", a.Title, err)
		}
		added++
	}

	fmt.Printf("✓ Imported %d appointment(s) (%d new, %d updated)\n", added+updated, added, updated)
	return nil
}
