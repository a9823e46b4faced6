// ABOUTME: Tests for actor profile chunking strategies
// ABOUTME: Covers atomic/list/text roles, sentence packing, and idempotence
package chunking

import (
	"strings"
	"testing"

	"github.com/intelforge/threatscope/internal/models"
)

func testChunker(chunkSize, minLength int) *Chunker {
	return NewChunker(Config{ChunkSize: chunkSize, ChunkOverlap: 0, MinLength: minLength}, DefaultFieldRoles())
}

func chunksForField(chunks []models.Chunk, field string) []models.Chunk {
	var out []models.Chunk
	for _, c := range chunks {
		if c.Metadata.SourceField == field {
			out = append(out, c)
		}
	}
	return out
}

func TestChunk_BasicProfile(t *testing.T) {
	c := testChunker(1000, 10)

	actor := models.Actor{
		"id":          "A1",
		"name":        "APT99",
		"description": "X attacks banks. X uses phishing.",
	}

	chunks := c.Chunk(actor)
	if len(chunks) != 3 {
		t.Fatalf("Chunk() returned %d chunks, want 3", len(chunks))
	}

	idChunks := chunksForField(chunks, "id")
	if len(idChunks) != 1 || idChunks[0].Text != "id: A1" {
		t.Errorf("id chunk = %+v, want one chunk with text %q", idChunks, "id: A1")
	}
	if idChunks[0].Metadata.ChunkType != models.ChunkTypeAtomic {
		t.Errorf("id chunk type = %s, want atomic", idChunks[0].Metadata.ChunkType)
	}

	nameChunks := chunksForField(chunks, "name")
	if len(nameChunks) != 1 || nameChunks[0].Text != "name: APT99" {
		t.Errorf("name chunk = %+v, want one chunk with text %q", nameChunks, "name: APT99")
	}

	descChunks := chunksForField(chunks, "description")
	if len(descChunks) != 1 {
		t.Fatalf("description produced %d chunks, want 1", len(descChunks))
	}
	want := "X attacks banks. X uses phishing."
	if descChunks[0].Text != want {
		t.Errorf("description chunk text = %q, want %q", descChunks[0].Text, want)
	}
	if descChunks[0].Metadata.ChunkType != models.ChunkTypeText {
		t.Errorf("description chunk type = %s, want text", descChunks[0].Metadata.ChunkType)
	}
	if descChunks[0].ActorID != "A1" {
		t.Errorf("description chunk actor_id = %q, want A1", descChunks[0].ActorID)
	}
}

func TestChunk_ListFields(t *testing.T) {
	c := testChunker(512, 10)

	tests := []struct {
		name      string
		value     interface{}
		wantCount int
		wantText  string
		wantItems int
	}{
		{"string slice", []string{"Fancy Bear", "Sofacy"}, 1, "aliases: Fancy Bear, Sofacy", 2},
		{"interface slice", []interface{}{"T1566", "T1059"}, 1, "aliases: T1566, T1059", 2},
		{"empty list", []string{}, 0, "", 0},
		{"nil value", nil, 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := c.Chunk(models.Actor{"id": "A1", "aliases": tt.value})
			got := chunksForField(chunks, "aliases")
			if len(got) != tt.wantCount {
				t.Fatalf("aliases produced %d chunks, want %d", len(got), tt.wantCount)
			}
			if tt.wantCount == 0 {
				return
			}
			if got[0].Text != tt.wantText {
				t.Errorf("text = %q, want %q", got[0].Text, tt.wantText)
			}
			if got[0].Metadata.ItemCount != tt.wantItems {
				t.Errorf("item_count = %d, want %d", got[0].Metadata.ItemCount, tt.wantItems)
			}
			if got[0].Metadata.ChunkType != models.ChunkTypeList {
				t.Errorf("chunk type = %s, want list", got[0].Metadata.ChunkType)
			}
		})
	}
}

func TestChunk_ShortTextFallsBackToAtomic(t *testing.T) {
	c := testChunker(512, 50)

	chunks := c.Chunk(models.Actor{"id": "A1", "description": "Short note."})
	desc := chunksForField(chunks, "description")
	if len(desc) != 1 {
		t.Fatalf("description produced %d chunks, want 1", len(desc))
	}
	if desc[0].Metadata.ChunkType != models.ChunkTypeAtomic {
		t.Errorf("chunk type = %s, want atomic fallback", desc[0].Metadata.ChunkType)
	}
	if desc[0].Text != "description: Short note." {
		t.Errorf("text = %q, want %q", desc[0].Text, "description: Short note.")
	}
}

func TestChunk_TextPackingSplitsOnChunkSize(t *testing.T) {
	c := testChunker(60, 10)

	// Each sentence is ~30 chars, so pairs overflow the 60-char budget.
	text := "Alpha group targets banks often. Beta group prefers phishing. Gamma group scans networks."
	chunks := c.Chunk(models.Actor{"id": "A1", "description": text})
	desc := chunksForField(chunks, "description")

	if len(desc) < 2 {
		t.Fatalf("description produced %d chunks, want at least 2", len(desc))
	}
	for i, ch := range desc {
		if ch.Metadata.ChunkIndex != i {
			t.Errorf("chunk %d has chunk_index %d, want %d", i, ch.Metadata.ChunkIndex, i)
		}
		if ch.Text == "" {
			t.Errorf("chunk %d has empty text", i)
		}
		if !strings.HasSuffix(ch.Text, ".") {
			t.Errorf("chunk %d text %q does not end with a period", i, ch.Text)
		}
	}
}

func TestChunk_UnknownFieldsIgnored(t *testing.T) {
	c := testChunker(512, 10)

	chunks := c.Chunk(models.Actor{"id": "A1", "threat_level": "critical"})
	if got := chunksForField(chunks, "threat_level"); len(got) != 0 {
		t.Errorf("unknown field produced %d chunks, want 0", len(got))
	}
	if got := chunksForField(chunks, "id"); len(got) != 1 {
		t.Errorf("id produced %d chunks, want 1", len(got))
	}
}

func TestChunk_NeverEmitsEmptyText(t *testing.T) {
	c := testChunker(40, 10)

	actors := []models.Actor{
		{"id": "A1", "description": "One. Two. Three. Four. Five. Six. Seven. Eight."},
		{"id": "A2", "aliases": []string{"X"}, "ttps": []string{}},
		{"id": "A3", "name": "", "first_seen": "2019-01"},
	}

	for _, actor := range actors {
		for _, ch := range c.Chunk(actor) {
			if strings.TrimSpace(ch.Text) == "" {
				t.Errorf("actor %s emitted empty chunk text: %+v", actor.ID(), ch)
			}
			if ch.ChunkID == "" {
				t.Errorf("actor %s emitted chunk without id", actor.ID())
			}
		}
	}
}

func TestChunk_Idempotent(t *testing.T) {
	c := testChunker(80, 10)

	actor := models.Actor{
		"id":          "A1",
		"name":        "APT99",
		"aliases":     []string{"Nine Nine"},
		"description": "The group targets banks in Europe. It favors phishing campaigns against staff.",
	}

	first := c.Chunk(actor)
	second := c.Chunk(actor)

	if len(first) != len(second) {
		t.Fatalf("runs produced %d and %d chunks", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text {
			t.Errorf("chunk %d text differs: %q vs %q", i, first[i].Text, second[i].Text)
		}
		if first[i].Metadata != second[i].Metadata {
			t.Errorf("chunk %d metadata differs: %+v vs %+v", i, first[i].Metadata, second[i].Metadata)
		}
		if first[i].ChunkID == second[i].ChunkID {
			t.Errorf("chunk %d reused id %s across runs", i, first[i].ChunkID)
		}
	}
}

func TestChunk_CustomRoleTable(t *testing.T) {
	roles := FieldRoles{"summary": RoleText, "tags": RoleList}
	c := NewChunker(Config{ChunkSize: 512, MinLength: 5}, roles)

	chunks := c.Chunk(models.Actor{
		"id":      "A1",
		"summary": "A short operator summary.",
		"tags":    []string{"apt"},
	})

	// id has no role in the custom table, so it produces nothing.
	if got := chunksForField(chunks, "id"); len(got) != 0 {
		t.Errorf("id produced %d chunks under custom table, want 0", len(got))
	}
	if got := chunksForField(chunks, "summary"); len(got) != 1 {
		t.Errorf("summary produced %d chunks, want 1", len(got))
	}
	if got := chunksForField(chunks, "tags"); len(got) != 1 {
		t.Errorf("tags produced %d chunks, want 1", len(got))
	}
}
