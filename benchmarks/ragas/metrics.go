// ABOUTME: RAGAS metrics implementation for faithfulness and context recall
// ABOUTME: Deterministic evaluation of pipeline answers against ground truth

package ragas

import (
	"fmt"
	"strings"

	"github.com/intelforge/threatscope/internal/models"
	"github.com/intelforge/threatscope/internal/pipeline"
)

// TestResult holds the scores for one executed scenario
type TestResult struct {
	TestID             string                 `json:"test_id"`
	TestName           string                 `json:"test_name"`
	FaithfulnessScore  float64                `json:"faithfulness_score"`
	ContextRecallScore float64                `json:"context_recall_score"`
	ConfidenceOK       bool                   `json:"confidence_ok"`
	OverallScore       float64                `json:"overall_score"`
	Status             string                 `json:"status"`
	Details            map[string]interface{} `json:"details"`
}

// MetricsCalculator computes RAGAS scores for benchmark tests
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateFaithfulness computes faithfulness score (0.0-1.0).
// Faithfulness = does the answer match the ground truth, with no
// contamination from unrelated actors?
func (m *MetricsCalculator) CalculateFaithfulness(
	answer string,
	expectedInAnswer []string,
	forbiddenInAnswer []string,
) (float64, string) {
	answerUpper := strings.ToUpper(answer)

	missingItems := []string{}
	for _, expected := range expectedInAnswer {
		if !strings.Contains(answerUpper, strings.ToUpper(expected)) {
			missingItems = append(missingItems, expected)
		}
	}

	forbiddenFound := []string{}
	for _, forbidden := range forbiddenInAnswer {
		if strings.Contains(answerUpper, strings.ToUpper(forbidden)) {
			forbiddenFound = append(forbiddenFound, forbidden)
		}
	}

	if len(missingItems) == 0 && len(forbiddenFound) == 0 {
		return 1.0, "Perfect faithfulness - answer matches expected ground truth"
	}

	if len(missingItems) > 0 && len(forbiddenFound) > 0 {
		return 0.0, fmt.Sprintf(
			"Faithfulness failure - missing expected items: %v, forbidden items found: %v",
			missingItems, forbiddenFound,
		)
	}

	if len(missingItems) > 0 {
		return 0.5, fmt.Sprintf(
			"Partial faithfulness - missing expected items: %v",
			missingItems,
		)
	}

	return 0.5, fmt.Sprintf(
		"Partial faithfulness - forbidden items found: %v",
		forbiddenFound,
	)
}

// CalculateContextRecall computes context recall score (0.0-1.0).
// Context Recall = was the correct evidence retrieved from the index?
func (m *MetricsCalculator) CalculateContextRecall(
	evidence []models.EvidenceItem,
	expectedEvidence []string,
) (float64, string) {
	if len(expectedEvidence) == 0 {
		return 1.0, "No evidence retrieval required"
	}

	texts := make([]string, 0, len(evidence))
	for _, item := range evidence {
		texts = append(texts, item.Text)
	}
	allEvidence := strings.ToUpper(strings.Join(texts, " "))

	foundCount := 0
	missingItems := []string{}
	for _, expected := range expectedEvidence {
		if strings.Contains(allEvidence, strings.ToUpper(expected)) {
			foundCount++
		} else {
			missingItems = append(missingItems, expected)
		}
	}

	recall := float64(foundCount) / float64(len(expectedEvidence))
	if recall == 1.0 {
		return 1.0, "Perfect context recall - all expected evidence retrieved"
	}

	return recall, fmt.Sprintf(
		"Partial context recall (%.2f) - missing evidence: %v",
		recall, missingItems,
	)
}

// confidenceRank orders levels for minimum-confidence checks
var confidenceRank = map[models.ConfidenceLevel]int{
	models.ConfidenceNone:    0,
	models.ConfidenceVeryLow: 1,
	models.ConfidenceLow:     2,
	models.ConfidenceMedium:  3,
	models.ConfidenceHigh:    4,
}

// CheckConfidence verifies the assessed level meets the scenario minimum
func (m *MetricsCalculator) CheckConfidence(
	assessed models.ConfidenceLevel,
	minimum models.ConfidenceLevel,
) (bool, string) {
	if minimum == "" {
		return true, "No confidence requirement"
	}
	if confidenceRank[assessed] >= confidenceRank[minimum] {
		return true, fmt.Sprintf("Confidence %s meets minimum %s", assessed, minimum)
	}
	return false, fmt.Sprintf("Confidence %s below minimum %s", assessed, minimum)
}

// EvaluateScenario runs full RAGAS evaluation for one scenario
func (m *MetricsCalculator) EvaluateScenario(
	scenario TestScenario,
	resp pipeline.Response,
) TestResult {
	faithfulness, faithfulnessDetail := m.CalculateFaithfulness(
		resp.Answer,
		scenario.GroundTruth.ExpectedInAnswer,
		scenario.GroundTruth.ForbiddenInAnswer,
	)

	recall, recallDetail := m.CalculateContextRecall(
		resp.Evidence,
		scenario.GroundTruth.ExpectedEvidence,
	)

	confidenceOK, confidenceDetail := m.CheckConfidence(
		resp.Confidence.Level,
		scenario.GroundTruth.MinConfidence,
	)

	overallScore := (faithfulness + recall) / 2.0

	status := "FAIL"
	if faithfulness >= 0.9 && recall >= 0.9 && confidenceOK {
		status = "PASS"
	}

	answerPreview := resp.Answer
	if len(answerPreview) > 200 {
		answerPreview = answerPreview[:200]
	}

	return TestResult{
		TestID:             scenario.ID,
		TestName:           scenario.Name,
		FaithfulnessScore:  faithfulness,
		ContextRecallScore: recall,
		ConfidenceOK:       confidenceOK,
		OverallScore:       overallScore,
		Status:             status,
		Details: map[string]interface{}{
			"faithfulness_detail": faithfulnessDetail,
			"recall_detail":       recallDetail,
			"confidence_detail":   confidenceDetail,
			"answer_preview":      answerPreview,
			"evidence_items":      len(resp.Evidence),
			"query_type":          resp.QueryType,
		},
	}
}
