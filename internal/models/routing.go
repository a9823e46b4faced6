// ABOUTME: Query classification types and retrieval plan structures
// ABOUTME: Defines the closed set of query intents the router can produce
package models

// QueryType is the closed enumeration of query intents
type QueryType string

const (
	QueryTypeActorProfile     QueryType = "actor_profile"
	QueryTypeTTPAnalysis      QueryType = "ttp_analysis"
	QueryTypeTargetAnalysis   QueryType = "target_analysis"
	QueryTypeTimelineAnalysis QueryType = "timeline_analysis"
	QueryTypeGeneral          QueryType = "general"
)

// RetrievalPlan is the per-intent retrieval configuration.
// WeightFields is advisory metadata describing which evidence fields
// matter most for the intent; it does not re-rank results.
type RetrievalPlan struct {
	TopK         int                `json:"top_k"`
	WeightFields map[string]float64 `json:"weight_fields"`
}
