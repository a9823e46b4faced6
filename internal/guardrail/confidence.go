// ABOUTME: Confidence guardrail turning an evidence list into a calibrated assessment
// ABOUTME: Pure function of its input so concurrent queries share no scoring state
package guardrail

import (
	"fmt"

	"github.com/intelforge/threatscope/internal/models"
)

// Confidence level score cutoffs (inclusive lower bounds)
const (
	HighConfidenceThreshold   = 0.8
	MediumConfidenceThreshold = 0.6
	LowConfidenceThreshold    = 0.3
)

// defaultSimilarity stands in when an evidence item carries no score
const defaultSimilarity = 0.5

// sourceBonusCap limits how much corroboration breadth alone can add
const sourceBonusCap = 0.2

// AssessConfidence grades an evidence list into a calibrated confidence
// assessment. The score rewards both per-item match quality and breadth
// of corroboration, capped so neither factor alone saturates it.
func AssessConfidence(evidence []models.EvidenceItem) models.ConfidenceAssessment {
	if len(evidence) == 0 {
		return models.ConfidenceAssessment{
			Level:          models.ConfidenceNone,
			Score:          0.0,
			Reason:         "No evidence provided",
			Recommendation: recommendationFor(models.ConfidenceNone),
		}
	}

	var sum float64
	for _, item := range evidence {
		sum += similarityOrDefault(item)
	}
	avgSimilarity := sum / float64(len(evidence))

	sourceCount := len(evidence)
	sourceBonus := float64(sourceCount) / 5.0
	if sourceBonus > sourceBonusCap {
		sourceBonus = sourceBonusCap
	}

	score := avgSimilarity + sourceBonus
	if score > 1.0 {
		score = 1.0
	}

	level := levelForScore(score)

	return models.ConfidenceAssessment{
		Level:          level,
		Score:          score,
		AvgSimilarity:  avgSimilarity,
		SourceCount:    sourceCount,
		Reason:         fmt.Sprintf("Based on %d sources with avg similarity %.2f", sourceCount, avgSimilarity),
		Recommendation: recommendationFor(level),
	}
}

// similarityOrDefault treats a zero score as an unscored item. A true
// 0.0 similarity (distance 2) only reaches here at threshold 0 and is
// conflated with absent; it reads as the 0.5 default.
func similarityOrDefault(item models.EvidenceItem) float64 {
	if item.SimilarityScore == 0 {
		return defaultSimilarity
	}
	return item.SimilarityScore
}

func levelForScore(score float64) models.ConfidenceLevel {
	switch {
	case score >= HighConfidenceThreshold:
		return models.ConfidenceHigh
	case score >= MediumConfidenceThreshold:
		return models.ConfidenceMedium
	case score >= LowConfidenceThreshold:
		return models.ConfidenceLow
	default:
		return models.ConfidenceVeryLow
	}
}

func recommendationFor(level models.ConfidenceLevel) string {
	switch level {
	case models.ConfidenceHigh:
		return "Safe for operational use"
	case models.ConfidenceMedium:
		return "Suitable for analysis with caveats"
	case models.ConfidenceLow:
		return "Requires additional verification"
	case models.ConfidenceVeryLow:
		return "Insufficient for actionable intelligence"
	case models.ConfidenceNone:
		return "No analysis possible"
	default:
		return "Unknown"
	}
}
