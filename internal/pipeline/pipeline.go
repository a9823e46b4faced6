// ABOUTME: Pipeline wires retriever, interpreter, guardrail, and audit into one query path
// ABOUTME: Explicit handle passed into surfaces; no ambient globals, no shared scoring state
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/intelforge/threatscope/internal/evaluation"
	"github.com/intelforge/threatscope/internal/guardrail"
	"github.com/intelforge/threatscope/internal/interpreter"
	"github.com/intelforge/threatscope/internal/models"
	"github.com/intelforge/threatscope/internal/retrieval"
)

// ErrEmptyQuery rejects blank queries before pipeline entry
var ErrEmptyQuery = errors.New("query cannot be empty")

// Response is the full result of one query run
type Response struct {
	Query       string                      `json:"query"`
	QueryType   models.QueryType            `json:"query_type"`
	Plan        models.RetrievalPlan        `json:"plan"`
	Answer      string                      `json:"answer"`
	Caveats     string                      `json:"caveats,omitempty"`
	Confidence  models.ConfidenceAssessment `json:"confidence"`
	AnswerScore float64                     `json:"answer_score"`
	Coverage    models.CoverageMetrics      `json:"coverage"`
	Quality     models.QualityMetrics       `json:"quality"`
	Gaps        []string                    `json:"gaps,omitempty"`
	Evidence    []models.EvidenceItem       `json:"evidence"`
	SourceCount int                         `json:"source_count"`
	Model       string                      `json:"model"`
	TraceID     string                      `json:"trace_id,omitempty"`
	Timestamp   time.Time                   `json:"timestamp"`
}

// Pipeline holds the query-path collaborators, constructed once and
// shared read-only across requests.
type Pipeline struct {
	retriever           *retrieval.Retriever
	interpreter         *interpreter.Interpreter
	audit               *evaluation.AuditTrail
	topK                int
	similarityThreshold float64
}

// New creates a Pipeline. The audit trail may be nil to disable
// traceability logging.
func New(r *retrieval.Retriever, it *interpreter.Interpreter, audit *evaluation.AuditTrail, topK int, similarityThreshold float64) *Pipeline {
	return &Pipeline{
		retriever:           r,
		interpreter:         it,
		audit:               audit,
		topK:                topK,
		similarityThreshold: similarityThreshold,
	}
}

// Ask runs the full query path: retrieve evidence, ground an answer,
// score confidence, coverage, and quality, flag gaps, and log the
// trace. Only an empty query is an error; every backend failure
// degrades into a low-confidence answer instead.
func (p *Pipeline) Ask(ctx context.Context, query string) (Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Response{}, ErrEmptyQuery
	}

	queryType := retrieval.ClassifyQuery(query)
	plan := retrieval.PlanFor(queryType)

	evidence := p.retriever.Retrieve(ctx, query, p.topK, p.similarityThreshold)

	explanation := p.interpreter.Explain(ctx, query, evidence)
	gaps := guardrail.FlagGaps(evidence, queryType)
	explanation = guardrail.AddCaveats(explanation, gaps)

	resp := Response{
		Query:       query,
		QueryType:   queryType,
		Plan:        plan,
		Answer:      explanation.Answer,
		Caveats:     explanation.Caveats,
		Confidence:  guardrail.AssessConfidence(evidence),
		AnswerScore: explanation.Confidence,
		Coverage:    evaluation.CalculateCoverage(evidence),
		Quality:     evaluation.CalculateQuality(evidence),
		Gaps:        gaps,
		Evidence:    evidence,
		SourceCount: len(evidence),
		Model:       explanation.Model,
		Timestamp:   time.Now().UTC(),
	}

	if p.audit != nil {
		resp.TraceID = p.audit.LogQuery(query, queryType, evidence)
		p.audit.LogResponse(resp.TraceID, explanation)
	}
	return resp, nil
}

// Feedback records analyst feedback for a past trace
func (p *Pipeline) Feedback(traceID string, fb evaluation.Feedback) {
	if p.audit != nil {
		p.audit.LogFeedback(traceID, fb)
	}
}
