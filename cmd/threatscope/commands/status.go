// ABOUTME: CLI command to report index and backend status
// ABOUTME: Shows chunk count, database path, and generation backend availability
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/intelforge/threatscope/internal/config"
	"github.com/intelforge/threatscope/internal/llm"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show index and backend status",
		Long: `Show the state of the vector index and generation backend.

Reports the number of indexed chunks, the database location, and
whether the configured generation backend is reachable.

Examples:
  threatscope status
  threatscope status --format json`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}

	return cmd
}

type statusReport struct {
	ChunkCount   int    `json:"chunk_count"`
	DatabasePath string `json:"database_path"`
	Backend      string `json:"backend"`
	BackendReady bool   `json:"backend_ready"`
	BackendNote  string `json:"backend_note,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	count, err := a.index.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading index: %w", err)
	}

	report := statusReport{
		ChunkCount:   count,
		DatabasePath: a.db.Path(),
		Backend:      a.cfg.Backend,
	}

	switch a.cfg.Backend {
	case config.BackendOllama:
		ollama := llm.NewOllamaClient(a.cfg.OllamaHost, a.cfg.OllamaModel)
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		models, verifyErr := ollama.Verify(ctx)
		cancel()
		if verifyErr != nil {
			report.BackendNote = fmt.Sprintf("Ollama unreachable at %s, answers use extractive fallback", a.cfg.OllamaHost)
		} else {
			report.BackendReady = true
			report.BackendNote = fmt.Sprintf("Ollama at %s with %d models", a.cfg.OllamaHost, len(models))
		}
	case config.BackendOpenAI:
		report.BackendReady = true
		report.BackendNote = fmt.Sprintf("OpenAI chat model %s", a.cfg.ChatModel)
	case config.BackendNone:
		report.BackendNote = "generation disabled, answers use extractive fallback"
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Indexed chunks: %d\n", report.ChunkCount)
	fmt.Fprintf(out, "Database:       %s\n", report.DatabasePath)
	fmt.Fprintf(out, "Backend:        %s", report.Backend)
	if report.BackendReady {
		fmt.Fprintf(out, " (ready)")
	}
	fmt.Fprintln(out)
	if report.BackendNote != "" && !quiet {
		fmt.Fprintf(out, "                %s\n", report.BackendNote)
	}
	return nil
}
