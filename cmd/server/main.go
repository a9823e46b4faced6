// ABOUTME: Main entry point for the ThreatScope MCP server with stdio transport
// ABOUTME: Wires storage, retrieval, and interpretation into the MCP tool surface
package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/intelforge/threatscope/internal/chunking"
	"github.com/intelforge/threatscope/internal/config"
	"github.com/intelforge/threatscope/internal/evaluation"
	"github.com/intelforge/threatscope/internal/ingestion"
	"github.com/intelforge/threatscope/internal/interpreter"
	"github.com/intelforge/threatscope/internal/llm"
	"github.com/intelforge/threatscope/internal/mcp"
	"github.com/intelforge/threatscope/internal/pipeline"
	"github.com/intelforge/threatscope/internal/retrieval"
	"github.com/intelforge/threatscope/internal/storage"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY not set - embeddings are required for retrieval")
	}

	dbPath := storage.DefaultDBPath()
	if cfg.DataDir != "" {
		dbPath = filepath.Join(cfg.DataDir, "threatscope.db")
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer db.Close()

	index := storage.NewVectorIndex(db, cfg.VectorDimension)

	openaiClient, err := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: llm.EmbeddingModelFromName(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		log.Fatalf("Failed to create OpenAI client: %v", err)
	}

	var gen interpreter.Generator
	switch cfg.Backend {
	case config.BackendOllama:
		ollama := llm.NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		models, verifyErr := ollama.Verify(ctx)
		cancel()
		if verifyErr != nil {
			log.Printf("Ollama unavailable at %s, answers will use extractive fallback: %v", cfg.OllamaHost, verifyErr)
		} else {
			log.Printf("Ollama ready with models: %v", models)
			gen = ollama
		}
	case config.BackendOpenAI:
		gen = openaiClient
	case config.BackendNone:
		// Extractive answers only
	}

	audit, err := evaluation.NewAuditTrail(cfg.AuditLogPath)
	if err != nil {
		log.Printf("Audit trail disabled: %v", err)
		audit = nil
	}

	retriever := retrieval.NewRetriever(index, openaiClient)
	interp := interpreter.NewInterpreter(gen)
	pipe := pipeline.New(retriever, interp, audit, cfg.TopK, cfg.SimilarityThreshold)

	chunker := chunking.NewChunker(chunking.Config{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		MinLength:    cfg.MinChunkLength,
	}, chunking.DefaultFieldRoles())
	ingestor := ingestion.NewIngestor(chunker, openaiClient, index)

	server := mcpserver.NewMCPServer(
		"ThreatScope Intelligence",
		"0.1.0",
	)

	mcp.RegisterTools(server, pipe, ingestor, index, cfg.Backend)

	log.Println("ThreatScope MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
