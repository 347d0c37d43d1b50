package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erosk616101/agenda/internal/store"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete an appointment",
	Long: `Delete an appointment by ID. A unique prefix of the ID is enough.

Examples:
  agenda delete 3f8a
  agenda rm 3f8a2c91`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	st, err := store.OpenDefault()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		_ = st.Close()
	}()

	prefix := args[0]
	var matches []string
	var title string
	for _, a := range st.List() {
		if strings.HasPrefix(a.ID, prefix) {
			matches = append(matches, a.ID)
			title = a.Title
		}
	}

	switch len(matches) {
	case 0:
		return fmt.Errorf("no appointment matches %q", prefix)
	case 1:
		if err := st.Remove(context.Background(), matches[0]); err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		fmt.Printf("✓ Deleted \"%s\"\n", title)
		return nil
	default:
		return fmt.Errorf("%q matches %d appointments, use a longer prefix", prefix, len(matches))
	}
}
