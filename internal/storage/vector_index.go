// ABOUTME: Persistent vector index over SQLite with brute-force cosine search
// ABOUTME: Vectors stored as little-endian float64 BLOBs alongside chunk metadata
package storage

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/intelforge/threatscope/internal/models"
)

// VectorIndex persists chunks with their embeddings and serves
// nearest-neighbor search by cosine distance. Safe for concurrent
// reads; writes happen at ingestion only.
type VectorIndex struct {
	db        *DB
	dimension int
}

// NewVectorIndex creates an index over an open database. A positive
// dimension is enforced on Add; zero disables the check (for tests
// with small vectors).
func NewVectorIndex(db *DB, dimension int) *VectorIndex {
	return &VectorIndex{db: db, dimension: dimension}
}

// Add persists chunks with their embedding vectors. Chunks and vectors
// are matched by position; re-adding a chunk_id replaces it.
func (vi *VectorIndex) Add(ctx context.Context, chunks []models.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	tx, err := vi.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO threat_actors (chunk_id, actor_id, source_field, chunk_type, chunk_index, item_count, document, vector, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chunk_id) DO UPDATE SET
			actor_id = excluded.actor_id,
			source_field = excluded.source_field,
			chunk_type = excluded.chunk_type,
			chunk_index = excluded.chunk_index,
			item_count = excluded.item_count,
			document = excluded.document,
			vector = excluded.vector
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for i, chunk := range chunks {
		if vi.dimension > 0 && len(vectors[i]) != vi.dimension {
			return fmt.Errorf("chunk %s: invalid embedding dimension: expected %d, got %d", chunk.ChunkID, vi.dimension, len(vectors[i]))
		}
		_, err := stmt.ExecContext(ctx,
			chunk.ChunkID,
			chunk.ActorID,
			chunk.Metadata.SourceField,
			string(chunk.Metadata.ChunkType),
			chunk.Metadata.ChunkIndex,
			chunk.Metadata.ItemCount,
			chunk.Text,
			vectorToBlob(vectors[i]),
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting chunk %s: %w", chunk.ChunkID, err)
		}
	}

	return tx.Commit()
}

// Search returns the k nearest chunks to the query vector, ranked
// ascending by cosine distance (distance = 1 − cosine similarity, in
// [0,2]).
func (vi *VectorIndex) Search(ctx context.Context, vector []float64, k int) ([]models.SearchMatch, error) {
	if k <= 0 {
		return nil, nil
	}

	rows, err := vi.db.conn.QueryContext(ctx, `
		SELECT chunk_id, actor_id, source_field, chunk_type, chunk_index, item_count, document, vector
		FROM threat_actors
	`)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []models.SearchMatch
	for rows.Next() {
		var (
			chunk     models.Chunk
			chunkType string
			itemCount sql.NullInt64
			blob      []byte
		)
		if err := rows.Scan(
			&chunk.ChunkID,
			&chunk.ActorID,
			&chunk.Metadata.SourceField,
			&chunkType,
			&chunk.Metadata.ChunkIndex,
			&itemCount,
			&chunk.Text,
			&blob,
		); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.Metadata.ChunkType = models.ChunkType(chunkType)
		if itemCount.Valid {
			chunk.Metadata.ItemCount = int(itemCount.Int64)
		}

		matches = append(matches, models.SearchMatch{
			Chunk:    chunk,
			Distance: 1 - cosineSimilarity(vector, blobToVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating index rows: %w", err)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Count returns the number of chunks in the index
func (vi *VectorIndex) Count(ctx context.Context) (int, error) {
	var n int
	err := vi.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM threat_actors`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// Reset deletes every chunk in the collection
func (vi *VectorIndex) Reset(ctx context.Context) error {
	if _, err := vi.db.conn.ExecContext(ctx, `DELETE FROM threat_actors`); err != nil {
		return fmt.Errorf("resetting index: %w", err)
	}
	return nil
}

// cosineSimilarity computes cosine similarity between two vectors;
// mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// vectorToBlob encodes a vector as little-endian float64 bytes
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector decodes little-endian float64 bytes back into a vector
func blobToVector(blob []byte) []float64 {
	vector := make([]float64, len(blob)/8)
	for i := range vector {
		vector[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return vector
}
