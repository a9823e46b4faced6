// ABOUTME: Embedding pairs a chunk with its stored vector
// ABOUTME: SearchMatch is one ranked result from the vector index
package models

import "time"

// Embedding is a chunk's vector as persisted by the index
type Embedding struct {
	ChunkID   string    `json:"chunk_id"`
	ActorID   string    `json:"actor_id"`
	Vector    []float64 `json:"vector"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchMatch is one nearest-neighbor result from the vector index.
// Distance is cosine distance in [0,2]; the retriever converts it to
// a similarity in [0,1].
type SearchMatch struct {
	Chunk    Chunk   `json:"chunk"`
	Distance float64 `json:"distance"`
}
