// ABOUTME: Shared wiring and formatting helpers for CLI commands
// ABOUTME: Builds the pipeline components from configuration in one place
package commands

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/intelforge/threatscope/internal/chunking"
	"github.com/intelforge/threatscope/internal/config"
	"github.com/intelforge/threatscope/internal/evaluation"
	"github.com/intelforge/threatscope/internal/ingestion"
	"github.com/intelforge/threatscope/internal/interpreter"
	"github.com/intelforge/threatscope/internal/llm"
	"github.com/intelforge/threatscope/internal/pipeline"
	"github.com/intelforge/threatscope/internal/retrieval"
	"github.com/intelforge/threatscope/internal/storage"
)

// app bundles the wired components a CLI command needs
type app struct {
	cfg    *config.Config
	db     *storage.DB
	index  *storage.VectorIndex
	openai *llm.OpenAIClient
}

// openApp loads configuration and opens storage and the OpenAI client
func openApp() (*app, error) {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set (required for embeddings)")
	}

	dbPath := storage.DefaultDBPath()
	if cfg.DataDir != "" {
		dbPath = filepath.Join(cfg.DataDir, "threatscope.db")
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	openaiClient, err := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: llm.EmbeddingModelFromName(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}

	return &app{
		cfg:    cfg,
		db:     db,
		index:  storage.NewVectorIndex(db, cfg.VectorDimension),
		openai: openaiClient,
	}, nil
}

// Close releases the underlying storage
func (a *app) Close() error {
	return a.db.Close()
}

// newPipeline wires the retrieval and interpretation stages, selecting
// the generation backend from configuration
func (a *app) newPipeline() *pipeline.Pipeline {
	var gen interpreter.Generator
	switch a.cfg.Backend {
	case config.BackendOllama:
		ollama := llm.NewOllamaClient(a.cfg.OllamaHost, a.cfg.OllamaModel)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := ollama.Verify(ctx)
		cancel()
		if err != nil {
			if !quiet {
				log.Printf("Ollama unavailable at %s, answers will use extractive fallback: %v", a.cfg.OllamaHost, err)
			}
		} else {
			gen = ollama
		}
	case config.BackendOpenAI:
		gen = a.openai
	case config.BackendNone:
		// Extractive answers only
	}

	audit, err := evaluation.NewAuditTrail(a.cfg.AuditLogPath)
	if err != nil {
		if !quiet {
			log.Printf("Audit trail disabled: %v", err)
		}
		audit = nil
	}

	retriever := retrieval.NewRetriever(a.index, a.openai)
	interp := interpreter.NewInterpreter(gen)
	return pipeline.New(retriever, interp, audit, a.cfg.TopK, a.cfg.SimilarityThreshold)
}

// newIngestor wires the chunker and embedder for ingestion
func (a *app) newIngestor() *ingestion.Ingestor {
	chunker := chunking.NewChunker(chunking.Config{
		ChunkSize:    a.cfg.ChunkSize,
		ChunkOverlap: a.cfg.ChunkOverlap,
		MinLength:    a.cfg.MinChunkLength,
	}, chunking.DefaultFieldRoles())
	return ingestion.NewIngestor(chunker, a.openai, a.index)
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
