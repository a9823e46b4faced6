// ABOUTME: Append-only JSONL audit trail tying queries, responses, and feedback to traces
// ABOUTME: Write failures are logged and never fail the query path
package evaluation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/intelforge/threatscope/internal/models"
)

// AuditEvent is one line of the audit log
type AuditEvent struct {
	Event         string   `json:"event,omitempty"`
	TraceID       string   `json:"trace_id"`
	Timestamp     string   `json:"timestamp"`
	Query         string   `json:"query,omitempty"`
	QueryType     string   `json:"query_type,omitempty"`
	EvidenceCount int      `json:"evidence_count,omitempty"`
	EvidenceIDs   []string `json:"evidence_ids,omitempty"`
	Confidence    float64  `json:"confidence,omitempty"`
	AnswerLength  int      `json:"answer_length,omitempty"`
	Rating        int      `json:"rating,omitempty"`
	Relevance     string   `json:"relevance,omitempty"`
	Accuracy      string   `json:"accuracy,omitempty"`
}

// Feedback is analyst feedback on a response
type Feedback struct {
	Rating    int    `json:"rating"`
	Relevance string `json:"relevance"`
	Accuracy  string `json:"accuracy"`
	Comments  string `json:"comments,omitempty"`
}

// AuditTrail appends query traceability events to a JSONL file
type AuditTrail struct {
	path string
}

// NewAuditTrail creates an audit trail writing to the given path,
// creating parent directories as needed.
func NewAuditTrail(path string) (*AuditTrail, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating audit log directory: %w", err)
	}
	return &AuditTrail{path: path}, nil
}

// LogQuery records a query and its evidence, returning a fresh trace ID
func (a *AuditTrail) LogQuery(query string, queryType models.QueryType, evidence []models.EvidenceItem) string {
	traceID := uuid.New().String()

	ids := make([]string, len(evidence))
	for i, item := range evidence {
		ids[i] = item.ChunkID
	}

	a.write(AuditEvent{
		TraceID:       traceID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Query:         query,
		QueryType:     string(queryType),
		EvidenceCount: len(evidence),
		EvidenceIDs:   ids,
	})
	return traceID
}

// LogResponse records the response produced for a trace
func (a *AuditTrail) LogResponse(traceID string, explanation models.Explanation) {
	a.write(AuditEvent{
		Event:        "response",
		TraceID:      traceID,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Confidence:   explanation.Confidence,
		AnswerLength: len(explanation.Answer),
	})
}

// LogFeedback records analyst feedback against a trace
func (a *AuditTrail) LogFeedback(traceID string, fb Feedback) {
	a.write(AuditEvent{
		Event:     "feedback",
		TraceID:   traceID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Rating:    fb.Rating,
		Relevance: fb.Relevance,
		Accuracy:  fb.Accuracy,
	})
}

// Trace returns all logged events for one trace ID
func (a *AuditTrail) Trace(traceID string) ([]AuditEvent, error) {
	f, err := os.Open(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer func() { _ = f.Close() }()

	var events []AuditEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev AuditEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}
		if ev.TraceID == traceID {
			events = append(events, ev)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	return events, nil
}

func (a *AuditTrail) write(ev AuditEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("audit: failed to marshal event: %v", err)
		return
	}

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("audit: failed to open log: %v", err)
		return
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(data, '\n')); err != nil {
		log.Printf("audit: failed to write event: %v", err)
	}
}
