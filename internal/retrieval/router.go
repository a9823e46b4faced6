// ABOUTME: Query router classifying free-text queries into intents
// ABOUTME: Produces per-intent retrieval plans with fetch counts and field weights
package retrieval

import (
	"strings"

	"github.com/intelforge/threatscope/internal/models"
)

// keywordRule maps a query type to its trigger keywords. Rules are
// scanned in slice order and the first substring match wins, so the
// table order is itself the tie-break.
type keywordRule struct {
	queryType models.QueryType
	keywords  []string
}

var keywordRules = []keywordRule{
	{models.QueryTypeActorProfile, []string{"profile", "background", "description", "overview", "history"}},
	{models.QueryTypeTTPAnalysis, []string{"technique", "tactic", "ttp", "method", "attack"}},
	{models.QueryTypeTargetAnalysis, []string{"target", "victim", "industry", "sector", "organization"}},
	{models.QueryTypeTimelineAnalysis, []string{"timeline", "first seen", "last seen", "activity", "when", "date"}},
}

// ClassifyQuery classifies a query into one of the closed query types.
// Queries matching no keyword are general.
func ClassifyQuery(query string) models.QueryType {
	lower := strings.ToLower(query)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.queryType
			}
		}
	}
	return models.QueryTypeGeneral
}

// PlanFor returns the retrieval plan for a query type. Field weights
// are advisory metadata and do not re-rank results.
func PlanFor(queryType models.QueryType) models.RetrievalPlan {
	switch queryType {
	case models.QueryTypeActorProfile:
		return models.RetrievalPlan{
			TopK:         5,
			WeightFields: map[string]float64{"description": 1.0, "aliases": 0.8, "origins": 0.6},
		}
	case models.QueryTypeTTPAnalysis:
		return models.RetrievalPlan{
			TopK:         3,
			WeightFields: map[string]float64{"ttps": 1.0, "description": 0.5},
		}
	case models.QueryTypeTargetAnalysis:
		return models.RetrievalPlan{
			TopK:         4,
			WeightFields: map[string]float64{"targets": 1.0, "description": 0.5},
		}
	case models.QueryTypeTimelineAnalysis:
		return models.RetrievalPlan{
			TopK:         3,
			WeightFields: map[string]float64{"first_seen": 1.0, "last_seen": 1.0, "description": 0.3},
		}
	case models.QueryTypeGeneral:
		fallthrough
	default:
		return models.RetrievalPlan{
			TopK:         5,
			WeightFields: map[string]float64{"description": 1.0},
		}
	}
}
