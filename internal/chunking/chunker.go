// ABOUTME: Chunker converts threat-actor profiles into retrievable text chunks
// ABOUTME: Applies atomic/list/text strategies per the injected field-role table
package chunking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/intelforge/threatscope/internal/models"
)

// Default chunking parameters
const (
	DefaultChunkSize    = 512
	DefaultChunkOverlap = 128
	DefaultMinLength    = 50
)

// Config holds the chunker's size parameters.
// ChunkOverlap is accepted for config compatibility but the sentence
// packer intentionally produces zero-overlap windows.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	MinLength    int
}

// DefaultConfig returns the standard chunking parameters
func DefaultConfig() Config {
	return Config{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		MinLength:    DefaultMinLength,
	}
}

// Chunker splits actor profiles into chunks according to field roles
type Chunker struct {
	cfg   Config
	roles FieldRoles
}

// NewChunker creates a Chunker with the given parameters and role table.
// Zero-valued size parameters fall back to the defaults.
func NewChunker(cfg Config, roles FieldRoles) *Chunker {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultMinLength
	}
	if roles == nil {
		roles = DefaultFieldRoles()
	}
	return &Chunker{cfg: cfg, roles: roles}
}

// Chunk converts one actor profile into chunks. Fields with no role in
// the table produce no chunks. Field order is normalized so repeated
// runs over the same record yield identical text and metadata.
func (c *Chunker) Chunk(actor models.Actor) []models.Chunk {
	actorID := actor.ID()

	fields := make([]string, 0, len(actor))
	for name := range actor {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	var chunks []models.Chunk
	for _, field := range fields {
		value := actor[field]
		switch c.roles.RoleFor(field) {
		case RoleAtomic:
			chunks = append(chunks, c.atomicChunk(actorID, field, value))
		case RoleList:
			chunks = append(chunks, c.listChunks(actorID, field, value)...)
		case RoleText:
			chunks = append(chunks, c.textChunks(actorID, field, value)...)
		}
	}
	return chunks
}

// atomicChunk renders a single-valued field as one chunk
func (c *Chunker) atomicChunk(actorID, field string, value interface{}) models.Chunk {
	return models.Chunk{
		ChunkID: newChunkID(),
		ActorID: actorID,
		Text:    fmt.Sprintf("%s: %v", field, value),
		Metadata: models.ChunkMetadata{
			SourceField: field,
			ChunkType:   models.ChunkTypeAtomic,
			ChunkIndex:  0,
		},
	}
}

// listChunks renders a list field as one comma-joined chunk, or nothing
// when the list is empty or not list-shaped.
func (c *Chunker) listChunks(actorID, field string, value interface{}) []models.Chunk {
	items := stringifyItems(value)
	if len(items) == 0 {
		return nil
	}
	return []models.Chunk{{
		ChunkID: newChunkID(),
		ActorID: actorID,
		Text:    fmt.Sprintf("%s: %s", field, strings.Join(items, ", ")),
		Metadata: models.ChunkMetadata{
			SourceField: field,
			ChunkType:   models.ChunkTypeList,
			ChunkIndex:  0,
			ItemCount:   len(items),
		},
	}}
}

// textChunks splits a prose field into sentence-packed chunks. Short or
// missing text falls back to a single atomic-style chunk.
func (c *Chunker) textChunks(actorID, field string, value interface{}) []models.Chunk {
	text, _ := value.(string)
	if len(text) < c.cfg.MinLength {
		return []models.Chunk{c.atomicChunk(actorID, field, value)}
	}

	var chunks []models.Chunk
	chunkIndex := 0
	emit := func(buf []string) {
		chunkText := strings.Join(buf, " ")
		if len(chunkText) < c.cfg.MinLength {
			return
		}
		chunks = append(chunks, models.Chunk{
			ChunkID: newChunkID(),
			ActorID: actorID,
			Text:    chunkText,
			Metadata: models.ChunkMetadata{
				SourceField: field,
				ChunkType:   models.ChunkTypeText,
				ChunkIndex:  chunkIndex,
			},
		})
		chunkIndex++
	}

	var buf []string
	bufLen := 0
	for _, sentence := range splitSentences(text) {
		if bufLen+len(sentence) > c.cfg.ChunkSize && len(buf) > 0 {
			emit(buf)
			buf = []string{sentence}
			bufLen = len(sentence)
			continue
		}
		buf = append(buf, sentence)
		bufLen += len(sentence)
	}
	if len(buf) > 0 {
		emit(buf)
	}
	return chunks
}

// splitSentences splits prose on period boundaries, restoring the
// trailing period on each sentence
func splitSentences(text string) []string {
	parts := strings.Split(text, ".")
	var sentences []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sentences = append(sentences, part+".")
	}
	return sentences
}

// stringifyItems renders a list value's items as strings
func stringifyItems(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return items
	default:
		return nil
	}
}

// newChunkID generates a unique chunk ID
func newChunkID() string {
	return uuid.New().String()
}
