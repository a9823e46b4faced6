// ABOUTME: Confidence, coverage and quality types for evidence grounding
// ABOUTME: All three are pure functions of an evidence list, recomputed per query
package models

// ConfidenceLevel is the calibrated confidence label for an assessment
type ConfidenceLevel string

const (
	ConfidenceNone    ConfidenceLevel = "none"
	ConfidenceVeryLow ConfidenceLevel = "very_low"
	ConfidenceLow     ConfidenceLevel = "low"
	ConfidenceMedium  ConfidenceLevel = "medium"
	ConfidenceHigh    ConfidenceLevel = "high"
)

// ConfidenceAssessment summarizes how trustworthy an answer grounded in
// a given evidence list is. Never persisted as authoritative state.
type ConfidenceAssessment struct {
	Level          ConfidenceLevel `json:"level"`
	Score          float64         `json:"score"`
	AvgSimilarity  float64         `json:"avg_similarity"`
	SourceCount    int             `json:"source_count"`
	Reason         string          `json:"reason"`
	Recommendation string          `json:"recommendation"`
}

// CoverageMetrics describes the breadth of source fields in an evidence set
type CoverageMetrics struct {
	CoverageScore   float64        `json:"coverage_score"`
	SourceDiversity float64        `json:"source_diversity"`
	EvidenceCount   int            `json:"evidence_count"`
	UniqueSources   int            `json:"unique_sources"`
	SourceBreakdown map[string]int `json:"source_breakdown,omitempty"`
}

// QualityMetrics describes the similarity-score distribution of an evidence set
type QualityMetrics struct {
	AvgSimilarity float64 `json:"avg_similarity"`
	MinSimilarity float64 `json:"min_similarity"`
	MaxSimilarity float64 `json:"max_similarity"`
	Consistency   float64 `json:"consistency"`
	QualityScore  float64 `json:"quality_score"`
}
