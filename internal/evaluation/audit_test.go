// ABOUTME: Tests for the JSONL audit trail
// ABOUTME: Uses t.TempDir for isolated log files
package evaluation

import (
	"path/filepath"
	"testing"

	"github.com/intelforge/threatscope/internal/models"
)

func tempTrail(t *testing.T) *AuditTrail {
	t.Helper()
	trail, err := NewAuditTrail(filepath.Join(t.TempDir(), "logs", "audit.jsonl"))
	if err != nil {
		t.Fatalf("NewAuditTrail() error = %v", err)
	}
	return trail
}

func TestAuditTrail_QueryResponseFeedbackRoundTrip(t *testing.T) {
	trail := tempTrail(t)

	evidence := []models.EvidenceItem{
		{Chunk: models.Chunk{ChunkID: "c1"}, SimilarityScore: 0.9},
		{Chunk: models.Chunk{ChunkID: "c2"}, SimilarityScore: 0.7},
	}

	traceID := trail.LogQuery("What are APT28's tactics?", models.QueryTypeTTPAnalysis, evidence)
	if traceID == "" {
		t.Fatal("LogQuery() returned empty trace id")
	}

	trail.LogResponse(traceID, models.Explanation{Answer: "Spearphishing.", Confidence: 0.82})
	trail.LogFeedback(traceID, Feedback{Rating: 4, Relevance: "high", Accuracy: "accurate"})

	events, err := trail.Trace(traceID)
	if err != nil {
		t.Fatalf("Trace() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Trace() returned %d events, want 3", len(events))
	}

	query := events[0]
	if query.Query != "What are APT28's tactics?" || query.QueryType != "ttp_analysis" {
		t.Errorf("query event = %+v", query)
	}
	if query.EvidenceCount != 2 || len(query.EvidenceIDs) != 2 || query.EvidenceIDs[0] != "c1" {
		t.Errorf("query evidence fields = %+v", query)
	}

	if events[1].Event != "response" || events[1].Confidence != 0.82 || events[1].AnswerLength != len("Spearphishing.") {
		t.Errorf("response event = %+v", events[1])
	}
	if events[2].Event != "feedback" || events[2].Rating != 4 {
		t.Errorf("feedback event = %+v", events[2])
	}
}

func TestAuditTrail_TraceIsolation(t *testing.T) {
	trail := tempTrail(t)

	first := trail.LogQuery("query one", models.QueryTypeGeneral, nil)
	second := trail.LogQuery("query two", models.QueryTypeGeneral, nil)
	if first == second {
		t.Fatal("trace ids not unique")
	}

	events, err := trail.Trace(first)
	if err != nil {
		t.Fatalf("Trace() error = %v", err)
	}
	if len(events) != 1 || events[0].Query != "query one" {
		t.Errorf("Trace(first) = %+v, want only first query", events)
	}
}

func TestAuditTrail_TraceMissingLogFile(t *testing.T) {
	trail := tempTrail(t)

	events, err := trail.Trace("no-such-trace")
	if err != nil {
		t.Fatalf("Trace() on empty trail error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Trace() = %d events, want 0", len(events))
	}
}
