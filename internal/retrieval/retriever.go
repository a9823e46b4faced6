// ABOUTME: Evidence retriever orchestrating embed, search, and threshold filtering
// ABOUTME: Fails soft to an empty evidence list so a broken index never aborts a query
package retrieval

import (
	"context"
	"log"

	"github.com/intelforge/threatscope/internal/models"
)

// Embedder maps text to a fixed-length vector
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float64, error)
}

// SearchIndex is the nearest-neighbor search surface of the vector index.
// Matches come back ranked ascending by cosine distance.
type SearchIndex interface {
	Search(ctx context.Context, vector []float64, k int) ([]models.SearchMatch, error)
}

// Retriever selects relevant evidence chunks for queries
type Retriever struct {
	index    SearchIndex
	embedder Embedder
}

// NewRetriever creates a Retriever over the given index and embedder
func NewRetriever(index SearchIndex, embedder Embedder) *Retriever {
	return &Retriever{index: index, embedder: embedder}
}

// Retrieve returns evidence chunks for a query, ordered by descending
// similarity as ranked by the index. The query is classified first and
// the plan's fetch count drives the search; topK bounds how many items
// survive the threshold filter. Embed or search failures are logged and
// yield an empty list, which downstream scoring reports as "no evidence".
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int, similarityThreshold float64) []models.EvidenceItem {
	queryType := ClassifyQuery(query)
	plan := PlanFor(queryType)

	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		log.Printf("retrieval: query embedding failed: %v", err)
		return nil
	}

	matches, err := r.index.Search(ctx, vector, plan.TopK)
	if err != nil {
		log.Printf("retrieval: vector search failed: %v", err)
		return nil
	}

	var evidence []models.EvidenceItem
	for _, match := range matches {
		// Cosine distance is in [0,2]; map to similarity in [0,1].
		similarity := 1 - match.Distance/2
		if similarity < similarityThreshold {
			continue
		}
		evidence = append(evidence, models.EvidenceItem{
			Chunk:           match.Chunk,
			SimilarityScore: similarity,
			QueryType:       queryType,
		})
		if len(evidence) >= topK {
			break
		}
	}
	return evidence
}
