// ABOUTME: CLI command to delete every chunk in the vector index
// ABOUTME: Destructive, so it requires an explicit --yes flag
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

// NewResetCmd creates the reset command
func NewResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all indexed chunks",
		Long: `Delete every chunk from the vector index.

This cannot be undone. Actor profiles must be re-ingested
afterwards. Requires --yes to confirm.

Examples:
  threatscope reset --yes`,
		Args: cobra.NoArgs,
		RunE: runReset,
	}

	cmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm deletion of all indexed chunks")

	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		return fmt.Errorf("refusing to reset without --yes")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.index.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("resetting index: %w", err)
	}

	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "Index reset. Re-ingest actor profiles to rebuild it.")
	}
	return nil
}
