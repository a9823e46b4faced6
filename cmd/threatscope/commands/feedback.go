// ABOUTME: CLI command to record analyst feedback for an answered query
// ABOUTME: Appends a feedback event to the audit trail keyed by trace ID
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/intelforge/threatscope/internal/config"
	"github.com/intelforge/threatscope/internal/evaluation"
)

var (
	feedbackRating    int
	feedbackRelevance string
	feedbackAccuracy  string
	feedbackComments  string
)

// NewFeedbackCmd creates the feedback command
func NewFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback <trace-id>",
		Short: "Record feedback for an answered query",
		Long: `Record analyst feedback for a previously answered query.

The trace ID is printed by ask --verbose and included in JSON output.
Feedback is appended to the audit trail alongside the original query
and response events.

Examples:
  threatscope feedback 8f14e45f --rating 4
  threatscope feedback 8f14e45f --rating 2 --relevance off-topic --comments "wrong actor"`,
		Args: cobra.ExactArgs(1),
		RunE: runFeedback,
	}

	cmd.Flags().IntVar(&feedbackRating, "rating", 0, "Rating from 1 (poor) to 5 (excellent)")
	cmd.Flags().StringVar(&feedbackRelevance, "relevance", "", "How relevant the answer was")
	cmd.Flags().StringVar(&feedbackAccuracy, "accuracy", "", "How accurate the answer was")
	cmd.Flags().StringVar(&feedbackComments, "comments", "", "Free-form comments")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}

func runFeedback(cmd *cobra.Command, args []string) error {
	if feedbackRating < 1 || feedbackRating > 5 {
		return fmt.Errorf("rating must be 1-5, got %d", feedbackRating)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	audit, err := evaluation.NewAuditTrail(cfg.AuditLogPath)
	if err != nil {
		return fmt.Errorf("opening audit trail: %w", err)
	}

	audit.LogFeedback(args[0], evaluation.Feedback{
		Rating:    feedbackRating,
		Relevance: feedbackRelevance,
		Accuracy:  feedbackAccuracy,
		Comments:  feedbackComments,
	})

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Feedback recorded for trace %s\n", args[0])
	}
	return nil
}
