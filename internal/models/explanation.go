// ABOUTME: Explanation is the interpreter's grounded answer with its evidence
// ABOUTME: Confidence here is the interpreter's local signal, distinct from the guardrail's
package models

// Explanation is the interpreter's answer to a query together with the
// evidence it was grounded in.
type Explanation struct {
	Query             string         `json:"query"`
	Answer            string         `json:"answer"`
	Evidence          []EvidenceItem `json:"evidence"`
	EvidenceFormatted string         `json:"evidence_formatted,omitempty"`
	Confidence        float64        `json:"confidence"`
	SourceCount       int            `json:"source_count"`
	Model             string         `json:"model"`
	Caveats           string         `json:"caveats,omitempty"`
}
