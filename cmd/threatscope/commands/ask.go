// ABOUTME: CLI command to ask a question about threat actors
// ABOUTME: Prints a grounded answer with confidence, caveats, and optional evidence
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/intelforge/threatscope/internal/pipeline"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about threat actors",
		Long: `Ask a question about indexed threat actors.

The question is classified, relevant evidence is retrieved from the
vector index, and an answer is generated grounded in that evidence.
Every answer carries a confidence level; use --verbose to see the
supporting evidence.

Examples:
  threatscope ask "Who is APT99?"
  threatscope ask --verbose "What techniques does Lazarus use?"
  threatscope ask --format json "Which sectors does FIN7 target?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.newPipeline().Ask(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyQuery) {
			return fmt.Errorf("question cannot be empty")
		}
		return fmt.Errorf("answering question: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	printAnswer(cmd, resp)
	return nil
}

func printAnswer(cmd *cobra.Command, resp pipeline.Response) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s\n", resp.Answer)
	if resp.Caveats != "" {
		fmt.Fprintf(out, "\n%s\n", resp.Caveats)
	}

	if quiet {
		return
	}

	fmt.Fprintf(out, "\nConfidence: %s (%.2f) - %s\n", resp.Confidence.Level, resp.Confidence.Score, resp.Confidence.Recommendation)
	fmt.Fprintf(out, "Sources: %d | Query type: %s | Model: %s\n", resp.SourceCount, resp.QueryType, resp.Model)

	if !verbose || len(resp.Evidence) == 0 {
		return
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tACTOR\tFIELD\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t-----\t-----\t-------\n")
	for _, item := range resp.Evidence {
		fmt.Fprintf(w, "%.2f\t%s\t%s\t%s\n",
			item.SimilarityScore,
			item.ActorID,
			item.Metadata.SourceField,
			truncate(item.Text, 60))
	}
	w.Flush()

	fmt.Fprintf(out, "\nCoverage: %.2f (diversity %.2f) | Quality: %.2f\n",
		resp.Coverage.CoverageScore, resp.Coverage.SourceDiversity, resp.Quality.QualityScore)
	if resp.TraceID != "" {
		fmt.Fprintf(out, "Trace: %s\n", resp.TraceID)
	}
}
