// ABOUTME: Centralized configuration for the threat intelligence pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Generation backend selection values
const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
	BackendNone   = "none"
)

// Config holds all configuration for the retrieval and grounding pipeline
type Config struct {
	// Storage settings
	DataDir      string
	AuditLogPath string

	// Chunking settings
	ChunkSize      int
	ChunkOverlap   int
	MinChunkLength int

	// Retrieval settings
	TopK                int
	SimilarityThreshold float64

	// Embedding settings
	OpenAIKey       string
	EmbeddingModel  string
	VectorDimension int

	// Generation settings
	Backend     string
	OllamaHost  string
	OllamaModel string
	ChatModel   string
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dataDir := getEnv("THREATSCOPE_DATA_DIR", "")

	cfg := &Config{
		DataDir:             dataDir,
		AuditLogPath:        getEnv("THREATSCOPE_AUDIT_LOG", defaultAuditPath(dataDir)),
		ChunkSize:           getEnvInt("THREATSCOPE_CHUNK_SIZE", 512),
		ChunkOverlap:        getEnvInt("THREATSCOPE_CHUNK_OVERLAP", 128),
		MinChunkLength:      getEnvInt("THREATSCOPE_MIN_CHUNK_LENGTH", 50),
		TopK:                getEnvInt("THREATSCOPE_TOP_K", 5),
		SimilarityThreshold: getEnvFloat("THREATSCOPE_SIMILARITY_THRESHOLD", 0.6),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:      getEnv("THREATSCOPE_EMBEDDING_MODEL", "text-embedding-3-small"),
		VectorDimension:     getEnvInt("THREATSCOPE_VECTOR_DIMENSION", 1536),
		Backend:             getEnv("THREATSCOPE_BACKEND", BackendOllama),
		OllamaHost:          getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:         getEnv("THREATSCOPE_OLLAMA_MODEL", "mistral"),
		ChatModel:           getEnv("THREATSCOPE_OPENAI_MODEL", "gpt-4o-mini"),
		Timeout:             getEnvDuration("THREATSCOPE_TIMEOUT", 30*time.Second),
		MaxRetries:          getEnvInt("THREATSCOPE_MAX_RETRIES", 3),
		RetryDelay:          getEnvDuration("THREATSCOPE_RETRY_DELAY", 2*time.Second),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("THREATSCOPE_SIMILARITY_THRESHOLD must be 0-1, got %f", c.SimilarityThreshold)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("THREATSCOPE_TOP_K must be positive, got %d", c.TopK)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("THREATSCOPE_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.MinChunkLength < 0 {
		return fmt.Errorf("THREATSCOPE_MIN_CHUNK_LENGTH must not be negative, got %d", c.MinChunkLength)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("THREATSCOPE_CHUNK_OVERLAP must not be negative, got %d", c.ChunkOverlap)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("THREATSCOPE_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	switch c.Backend {
	case BackendOllama, BackendOpenAI, BackendNone:
	default:
		return fmt.Errorf("THREATSCOPE_BACKEND must be ollama, openai, or none, got %q", c.Backend)
	}
	return nil
}

func defaultAuditPath(dataDir string) string {
	if dataDir == "" {
		return filepath.Join("logs", "audit.jsonl")
	}
	return filepath.Join(dataDir, "logs", "audit.jsonl")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
