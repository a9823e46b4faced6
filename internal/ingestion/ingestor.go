// ABOUTME: Ingestor running the load→normalize→validate→chunk→embed→store path
// ABOUTME: Chunk embedding is batched; invalid records are skipped, not fatal
package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/intelforge/threatscope/internal/chunking"
	"github.com/intelforge/threatscope/internal/models"
)

// BatchEmbedder embeds a batch of texts in one call
type BatchEmbedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
}

// ChunkWriter persists chunks with their vectors into the index
type ChunkWriter interface {
	Add(ctx context.Context, chunks []models.Chunk, vectors [][]float64) error
}

// Result summarizes one ingestion run
type Result struct {
	ActorsLoaded  int `json:"actors_loaded"`
	ActorsInvalid int `json:"actors_invalid"`
	ChunksStored  int `json:"chunks_stored"`
}

// Ingestor turns raw actor files into indexed chunks
type Ingestor struct {
	chunker  *chunking.Chunker
	embedder BatchEmbedder
	writer   ChunkWriter
}

// NewIngestor creates an Ingestor over the given chunker, embedder, and index
func NewIngestor(chunker *chunking.Chunker, embedder BatchEmbedder, writer ChunkWriter) *Ingestor {
	return &Ingestor{chunker: chunker, embedder: embedder, writer: writer}
}

// IngestFile loads, normalizes, validates, chunks, embeds, and stores
// every actor profile in the given JSON file.
func (in *Ingestor) IngestFile(ctx context.Context, path string) (Result, error) {
	actors, err := LoadActors(path)
	if err != nil {
		return Result{}, err
	}
	return in.IngestActors(ctx, actors)
}

// IngestActors processes already-loaded actor profiles
func (in *Ingestor) IngestActors(ctx context.Context, actors []models.Actor) (Result, error) {
	normalized := NormalizeActors(actors)
	valid, invalid := ValidateActors(normalized)
	if invalid > 0 {
		log.Printf("ingestion: %d of %d actors failed validation", invalid, len(actors))
	}

	result := Result{ActorsLoaded: len(valid), ActorsInvalid: invalid}

	var chunks []models.Chunk
	for _, actor := range valid {
		chunks = append(chunks, in.chunker.Chunk(actor)...)
	}
	if len(chunks) == 0 {
		return result, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := in.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return result, fmt.Errorf("embedding chunks: %w", err)
	}

	if err := in.writer.Add(ctx, chunks, vectors); err != nil {
		return result, fmt.Errorf("storing chunks: %w", err)
	}

	result.ChunksStored = len(chunks)
	return result, nil
}
