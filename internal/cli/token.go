package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/erosk616101/agenda/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the API token for agenda-server",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Set the API token (generates one when omitted)",
	Long: `Set the bearer token agenda-server requires on /api requests.
Only a bcrypt hash of the token is stored, so note the token down.

Examples:
  agenda token set
  agenda token set my-secret-token`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenSet,
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the API token (server becomes open)",
	RunE:  runTokenClear,
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenClearCmd)
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	token := uuid.New().String()
	generated := true
	if len(args) == 1 {
		token = args[0]
		generated = false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	cfg.APITokenHash = string(hash)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if generated {
		fmt.Printf("✓ API token set: %s\n", token)
		fmt.Println("  Save it now, only its hash is stored.")
	} else {
		fmt.Println("✓ API token set")
	}
	return nil
}

func runTokenClear(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	cfg.APITokenHash = ""
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Println("✓ API token cleared")
	return nil
}
