// ABOUTME: Tests for actor loading, normalization, validation, and ingestion
// ABOUTME: Uses temp files and in-package fakes for the embedder and writer
package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/intelforge/threatscope/internal/chunking"
	"github.com/intelforge/threatscope/internal/models"
)

func TestLoadActors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actors.json")
	raw := `[
		{"id": "A1", "name": "APT99", "aliases": ["Nines"], "description": "A test actor."},
		{"id": "A2", "name": "FIN0"}
	]`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	actors, err := LoadActors(path)
	if err != nil {
		t.Fatalf("LoadActors() error = %v", err)
	}
	if len(actors) != 2 {
		t.Fatalf("loaded %d actors, want 2", len(actors))
	}
	if actors[0].ID() != "A1" || actors[1].Name() != "FIN0" {
		t.Errorf("actors = %v", actors)
	}
}

func TestLoadActors_MissingFile(t *testing.T) {
	actors, err := LoadActors(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadActors() on missing file error = %v, want nil", err)
	}
	if actors != nil {
		t.Errorf("actors = %v, want nil", actors)
	}
}

func TestLoadActors_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadActors(path); err == nil {
		t.Error("LoadActors() error = nil, want parse error")
	}
}

func TestNormalizeActor(t *testing.T) {
	actor := models.Actor{
		"id":          "A1",
		"name":        "  APT99  ",
		"aliases":     "Lone Alias",
		"description": " Trimmed. ",
	}

	got := NormalizeActor(actor)

	if got["name"] != "APT99" {
		t.Errorf("name = %q, want trimmed", got["name"])
	}
	if got["description"] != "Trimmed." {
		t.Errorf("description = %q, want trimmed", got["description"])
	}
	aliases, ok := got["aliases"].([]interface{})
	if !ok || len(aliases) != 1 || aliases[0] != "Lone Alias" {
		t.Errorf("aliases = %v, want one-item list", got["aliases"])
	}
	for _, field := range []string{"ttps", "targets", "origins", "motivations"} {
		list, ok := got[field].([]interface{})
		if !ok || len(list) != 0 {
			t.Errorf("%s = %v, want empty list", field, got[field])
		}
	}

	// The input record is not mutated.
	if actor["aliases"] != "Lone Alias" {
		t.Errorf("input mutated: aliases = %v", actor["aliases"])
	}
}

func TestNormalizeActor_KeepsIllTypedListField(t *testing.T) {
	got := NormalizeActor(models.Actor{"id": "A1", "name": "APT99", "ttps": float64(42)})

	// A number is neither a lone string nor a missing field, so it must
	// survive normalization for validation to reject.
	if got["ttps"] != float64(42) {
		t.Errorf("ttps = %v, want the ill-typed value preserved", got["ttps"])
	}
	if err := ValidateActor(got); err == nil {
		t.Error("ValidateActor() after normalization = nil, want list-type error")
	}
}

func TestValidateActor(t *testing.T) {
	tests := []struct {
		name    string
		actor   models.Actor
		wantErr bool
	}{
		{"valid", models.Actor{"id": "A1", "name": "APT99"}, false},
		{"valid with lists", models.Actor{"id": "A1", "name": "X", "ttps": []interface{}{"T1566"}}, false},
		{"missing id", models.Actor{"name": "APT99"}, true},
		{"empty id", models.Actor{"id": "", "name": "APT99"}, true},
		{"missing name", models.Actor{"id": "A1"}, true},
		{"list field not a list", models.Actor{"id": "A1", "name": "X", "ttps": 42}, true},
		{"description not a string", models.Actor{"id": "A1", "name": "X", "description": 7}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateActor(tt.actor)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateActor() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type fakeBatchEmbedder struct {
	gotTexts []string
	err      error
}

func (f *fakeBatchEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotTexts = texts
	vectors := make([][]float64, len(texts))
	for i := range vectors {
		vectors[i] = []float64{1, 0}
	}
	return vectors, nil
}

type fakeWriter struct {
	chunks  []models.Chunk
	vectors [][]float64
}

func (f *fakeWriter) Add(ctx context.Context, chunks []models.Chunk, vectors [][]float64) error {
	f.chunks = append(f.chunks, chunks...)
	f.vectors = append(f.vectors, vectors...)
	return nil
}

func TestIngestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actors.json")
	raw := `[
		{"id": "A1", "name": "APT99", "aliases": ["Nines"], "description": "The group attacks European banks with phishing lures."},
		{"name": "No ID Actor"}
	]`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	embedder := &fakeBatchEmbedder{}
	writer := &fakeWriter{}
	ing := NewIngestor(chunking.NewChunker(chunking.DefaultConfig(), nil), embedder, writer)

	result, err := ing.IngestFile(context.Background(), path)
	if err != nil {
		t.Fatalf("IngestFile() error = %v", err)
	}

	if result.ActorsLoaded != 1 || result.ActorsInvalid != 1 {
		t.Errorf("result = %+v, want 1 loaded, 1 invalid", result)
	}
	if result.ChunksStored != len(writer.chunks) || result.ChunksStored == 0 {
		t.Errorf("ChunksStored = %d, writer has %d", result.ChunksStored, len(writer.chunks))
	}
	if len(embedder.gotTexts) != len(writer.chunks) {
		t.Errorf("embedded %d texts, stored %d chunks", len(embedder.gotTexts), len(writer.chunks))
	}
	for i, c := range writer.chunks {
		if c.Text != embedder.gotTexts[i] {
			t.Errorf("chunk %d text mismatch with embedded text", i)
		}
	}
}

func TestIngestActors_IllTypedListFieldCountedInvalid(t *testing.T) {
	ing := NewIngestor(chunking.NewChunker(chunking.DefaultConfig(), nil), &fakeBatchEmbedder{}, &fakeWriter{})

	result, err := ing.IngestActors(context.Background(), []models.Actor{
		{"id": "A1", "name": "APT99", "ttps": float64(42)},
	})
	if err != nil {
		t.Fatalf("IngestActors() error = %v", err)
	}
	if result.ActorsInvalid != 1 {
		t.Errorf("ActorsInvalid = %d, want 1", result.ActorsInvalid)
	}
	if result.ActorsLoaded != 0 || result.ChunksStored != 0 {
		t.Errorf("result = %+v, want nothing loaded or stored", result)
	}
}

func TestIngestActors_NoValidActors(t *testing.T) {
	ing := NewIngestor(chunking.NewChunker(chunking.DefaultConfig(), nil), &fakeBatchEmbedder{}, &fakeWriter{})

	result, err := ing.IngestActors(context.Background(), []models.Actor{{"name": "no id"}})
	if err != nil {
		t.Fatalf("IngestActors() error = %v", err)
	}
	if result.ChunksStored != 0 || result.ActorsInvalid != 1 {
		t.Errorf("result = %+v", result)
	}
}
