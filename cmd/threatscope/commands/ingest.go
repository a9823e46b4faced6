// ABOUTME: CLI command to ingest threat-actor profiles into the vector index
// ABOUTME: Loads a JSON file, chunks and embeds each actor, and stores the results
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest threat-actor profiles",
		Long: `Ingest threat-actor profiles from a JSON file.

The file must hold a JSON array of actor objects. Each actor is
normalized, validated, chunked by field, embedded, and stored in
the vector index. Re-ingesting the same file updates existing
chunks in place.

Examples:
  threatscope ingest actors.json
  threatscope ingest --format json actors.json`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.newIngestor().IngestFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", args[0], err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d actors (%d invalid skipped)\n", result.ActorsLoaded, result.ActorsInvalid)
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %d chunks\n", result.ChunksStored)
	}
	return nil
}
