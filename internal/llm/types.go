package llm

import (
	"context"
	"errors"
)

var (
	ErrEmptyTexts      = errors.New("no texts provided for embedding")
	ErrMissingAPIKey   = errors.New("embedding provider API key is required")
	ErrEmbeddingFailed = errors.New("embedding generation failed")
)

// represents different embedding providers
type Provider string

const (
	ProviderOpenAI Provider = "openai"
)

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// holds configuration for embedder initialization
type Config struct {
	Provider   Provider
	APIKey     string
	Model      string // e.g., "text-embedding-3-small"
	Dimensions int    // 0 leaves the model default and skips the length check
	BaseURL    string // optional override, used by tests and proxies

	// client-side throttling, shared by every request made through the embedder
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
}
