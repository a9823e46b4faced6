// ABOUTME: EvidenceItem is a chunk returned by search with similarity and intent tags
// ABOUTME: Produced transiently per query, never persisted as part of the data model
package models

// EvidenceItem is a chunk enriched with its similarity score and the
// query classification that retrieved it.
type EvidenceItem struct {
	Chunk
	SimilarityScore float64   `json:"similarity_score"`
	QueryType       QueryType `json:"query_type"`
}
