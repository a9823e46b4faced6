// ABOUTME: Interpreter producing evidence-grounded answers with a local confidence signal
// ABOUTME: Answer source (generative or extractive) is selected once at construction
package interpreter

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/intelforge/threatscope/internal/models"
)

// Generator is the generate capability of a live language-model backend.
// A single attempt per call; callers fail soft on error.
type Generator interface {
	Model() string
	Generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// answerSource produces an answer for a query over formatted evidence
type answerSource interface {
	answer(ctx context.Context, query string, evidenceText string, evidence []models.EvidenceItem) string
	model() string
}

// Interpreter turns retrieved evidence into a grounded answer
type Interpreter struct {
	source answerSource
}

// NewInterpreter creates an Interpreter. With a nil generator the
// extractive fallback is used for every answer; otherwise the live
// backend is used with the fallback covering generation failures.
func NewInterpreter(gen Generator) *Interpreter {
	if gen == nil {
		return &Interpreter{source: extractiveSource{}}
	}
	return &Interpreter{source: generativeSource{gen: gen}}
}

// Model reports which answer source the interpreter was built with
func (i *Interpreter) Model() string {
	return i.source.model()
}

// Explain answers a query grounded in the given evidence. An empty
// evidence list yields a fixed insufficient-evidence answer at zero
// confidence rather than an error.
func (i *Interpreter) Explain(ctx context.Context, query string, evidence []models.EvidenceItem) models.Explanation {
	if len(evidence) == 0 {
		return models.Explanation{
			Query:      query,
			Answer:     "Insufficient evidence to answer this question.",
			Evidence:   []models.EvidenceItem{},
			Confidence: 0.0,
			Model:      i.source.model(),
		}
	}

	evidenceText := FormatEvidence(evidence)
	answer := i.source.answer(ctx, query, evidenceText, evidence)

	return models.Explanation{
		Query:             query,
		Answer:            answer,
		Evidence:          evidence,
		EvidenceFormatted: evidenceText,
		Confidence:        localConfidence(evidence),
		SourceCount:       len(evidence),
		Model:             i.source.model(),
	}
}

// FormatEvidence renders evidence as a numbered list for prompts and display
func FormatEvidence(evidence []models.EvidenceItem) string {
	lines := make([]string, len(evidence))
	for i, item := range evidence {
		source := item.Metadata.SourceField
		if source == "" {
			source = "unknown"
		}
		lines[i] = fmt.Sprintf("[%d] (%s, score: %.2f): %s", i+1, source, item.SimilarityScore, item.Text)
	}
	return strings.Join(lines, "\n")
}

// localConfidence is the interpreter's own confidence signal: average
// similarity discounted when fewer than three items corroborate the
// answer. Intentionally distinct from the guardrail's assessment.
func localConfidence(evidence []models.EvidenceItem) float64 {
	var sum float64
	for _, item := range evidence {
		s := item.SimilarityScore
		if s == 0 {
			s = 0.5
		}
		sum += s
	}
	avg := sum / float64(len(evidence))

	penalty := 0.7
	if len(evidence) >= 3 {
		penalty = 1.0
	}

	confidence := avg * penalty
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// generativeSource answers through a live backend, falling back to the
// extractive summary when generation fails or returns nothing
type generativeSource struct {
	gen Generator
}

func (g generativeSource) model() string {
	return g.gen.Model()
}

func (g generativeSource) answer(ctx context.Context, query, evidenceText string, evidence []models.EvidenceItem) string {
	prompt := fmt.Sprintf(`You are a threat intelligence analyst. Based on the following evidence, answer the user's question concisely and accurately.

EVIDENCE:
%s

USER QUESTION: %s

ANSWER (2-3 sentences):`, evidenceText, query)

	// Low temperature: grounding over creativity.
	response, err := g.gen.Generate(ctx, prompt, 0.3, 300)
	if err != nil {
		log.Printf("interpreter: generation failed, using extractive fallback: %v", err)
		return extractiveSource{}.answer(ctx, query, evidenceText, evidence)
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return extractiveSource{}.answer(ctx, query, evidenceText, evidence)
	}
	return response
}

// extractiveSource summarizes the top evidence chunk without a backend
type extractiveSource struct{}

func (extractiveSource) model() string {
	return "fallback"
}

func (extractiveSource) answer(_ context.Context, _ string, _ string, evidence []models.EvidenceItem) string {
	if len(evidence) == 0 {
		return "No relevant information found."
	}

	top := evidence[0]
	field := top.Metadata.SourceField
	if field == "" {
		field = "information"
	}

	summary := fmt.Sprintf("Based on %s data: %s", field, top.Text)
	if len(evidence) > 1 {
		summary += fmt.Sprintf(" (Supporting evidence from %d additional sources)", len(evidence)-1)
	}
	return summary
}
