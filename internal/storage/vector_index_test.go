// ABOUTME: Tests for the SQLite vector index
// ABOUTME: Uses in-memory databases and small vectors
package storage

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/intelforge/threatscope/internal/models"
)

func testIndex(t *testing.T) *VectorIndex {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewVectorIndex(db, 0)
}

func chunk(id, actorID, field string, chunkType models.ChunkType) models.Chunk {
	return models.Chunk{
		ChunkID: id,
		ActorID: actorID,
		Text:    field + ": value for " + id,
		Metadata: models.ChunkMetadata{
			SourceField: field,
			ChunkType:   chunkType,
			ChunkIndex:  0,
		},
	}
}

func TestVectorIndex_AddAndSearch(t *testing.T) {
	vi := testIndex(t)
	ctx := context.Background()

	chunks := []models.Chunk{
		chunk("c1", "A1", "ttps", models.ChunkTypeList),
		chunk("c2", "A1", "description", models.ChunkTypeText),
		chunk("c3", "A2", "targets", models.ChunkTypeList),
	}
	vectors := [][]float64{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0, 0, 1},
	}
	if err := vi.Add(ctx, chunks, vectors); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	matches, err := vi.Search(ctx, []float64{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Search() returned %d matches, want 2", len(matches))
	}

	if matches[0].Chunk.ChunkID != "c1" {
		t.Errorf("best match = %s, want c1", matches[0].Chunk.ChunkID)
	}
	if matches[0].Distance > 1e-9 {
		t.Errorf("identical vector distance = %f, want 0", matches[0].Distance)
	}
	if matches[1].Chunk.ChunkID != "c2" {
		t.Errorf("second match = %s, want c2", matches[1].Chunk.ChunkID)
	}
	if matches[0].Distance > matches[1].Distance {
		t.Error("matches not ranked ascending by distance")
	}

	// Metadata round-trips intact.
	if matches[0].Chunk.Metadata.SourceField != "ttps" ||
		matches[0].Chunk.Metadata.ChunkType != models.ChunkTypeList ||
		matches[0].Chunk.ActorID != "A1" {
		t.Errorf("metadata = %+v", matches[0].Chunk)
	}
}

func TestVectorIndex_OppositeVectorDistance(t *testing.T) {
	vi := testIndex(t)
	ctx := context.Background()

	if err := vi.Add(ctx, []models.Chunk{chunk("c1", "A1", "ttps", models.ChunkTypeList)}, [][]float64{{1, 0}}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	matches, err := vi.Search(ctx, []float64{-1, 0}, 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if math.Abs(matches[0].Distance-2.0) > 1e-9 {
		t.Errorf("opposite vector distance = %f, want 2.0", matches[0].Distance)
	}
}

func TestVectorIndex_EmptyIndex(t *testing.T) {
	vi := testIndex(t)

	matches, err := vi.Search(context.Background(), []float64{1, 0}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Search() on empty index returned %d matches", len(matches))
	}
}

func TestVectorIndex_UpsertReplacesChunk(t *testing.T) {
	vi := testIndex(t)
	ctx := context.Background()

	c := chunk("c1", "A1", "ttps", models.ChunkTypeList)
	if err := vi.Add(ctx, []models.Chunk{c}, [][]float64{{1, 0}}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	c.Text = "ttps: updated"
	if err := vi.Add(ctx, []models.Chunk{c}, [][]float64{{0, 1}}); err != nil {
		t.Fatalf("re-Add() error = %v", err)
	}

	n, err := vi.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d after upsert, want 1", n)
	}

	matches, _ := vi.Search(ctx, []float64{0, 1}, 1)
	if matches[0].Chunk.Text != "ttps: updated" {
		t.Errorf("text after upsert = %q", matches[0].Chunk.Text)
	}
}

func TestVectorIndex_CountAndReset(t *testing.T) {
	vi := testIndex(t)
	ctx := context.Background()

	chunks := []models.Chunk{
		chunk("c1", "A1", "ttps", models.ChunkTypeList),
		chunk("c2", "A1", "name", models.ChunkTypeAtomic),
	}
	if err := vi.Add(ctx, chunks, [][]float64{{1, 0}, {0, 1}}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	n, err := vi.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("Count() = %d, %v, want 2", n, err)
	}

	if err := vi.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	n, _ = vi.Count(ctx)
	if n != 0 {
		t.Errorf("Count() after Reset = %d, want 0", n)
	}
}

func TestVectorIndex_DimensionEnforced(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	vi := NewVectorIndex(db, 3)
	err = vi.Add(context.Background(), []models.Chunk{chunk("c1", "A1", "ttps", models.ChunkTypeList)}, [][]float64{{1, 0}})
	if err == nil {
		t.Error("Add() error = nil, want dimension mismatch error")
	}
}

func TestVectorIndex_MismatchedCounts(t *testing.T) {
	vi := testIndex(t)
	err := vi.Add(context.Background(), []models.Chunk{chunk("c1", "A1", "ttps", models.ChunkTypeList)}, nil)
	if err == nil {
		t.Error("Add() error = nil, want count mismatch error")
	}
}

func TestVectorIndex_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	vi := NewVectorIndex(db, 0)
	if err := vi.Add(context.Background(), []models.Chunk{chunk("c1", "A1", "ttps", models.ChunkTypeList)}, [][]float64{{1, 0}}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	_ = db.Close()

	db2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = db2.Close() }()

	n, err := NewVectorIndex(db2, 0).Count(context.Background())
	if err != nil || n != 1 {
		t.Errorf("Count() after reopen = %d, %v, want 1", n, err)
	}
}

func TestVectorBlobRoundTrip(t *testing.T) {
	vector := []float64{0.1, -2.5, 0, 1e-12, 12345.678}
	got := blobToVector(vectorToBlob(vector))
	if len(got) != len(vector) {
		t.Fatalf("round trip length = %d, want %d", len(got), len(vector))
	}
	for i := range vector {
		if got[i] != vector[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], vector[i])
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"zero vector", []float64{0, 0}, []float64{1, 0}, 0.0},
		{"length mismatch", []float64{1}, []float64{1, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity() = %f, want %f", got, tt.want)
			}
		})
	}
}
