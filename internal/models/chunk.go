// ABOUTME: Chunk represents one retrievable text unit derived from an actor field
// ABOUTME: Metadata field names are a stable contract with the vector index
package models

// ChunkType identifies the chunking strategy that produced a chunk
type ChunkType string

const (
	ChunkTypeAtomic ChunkType = "atomic"
	ChunkTypeList   ChunkType = "list"
	ChunkTypeText   ChunkType = "text"
)

// ChunkMetadata carries chunk provenance. These JSON names are persisted
// with the vector index and must survive index migrations unchanged.
type ChunkMetadata struct {
	SourceField string    `json:"source_field"`
	ChunkType   ChunkType `json:"chunk_type"`
	ChunkIndex  int       `json:"chunk_index"`
	ItemCount   int       `json:"item_count,omitempty"`
}

// Chunk is a minimal retrievable unit of text from one actor field.
// Chunks are created once at ingestion and never mutated afterward.
type Chunk struct {
	ChunkID  string        `json:"chunk_id"`
	ActorID  string        `json:"actor_id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}
