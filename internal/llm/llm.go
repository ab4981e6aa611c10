package llm

import (
	"fmt"
	"time"

	"codeberg.org/showcase/server/internal/cache"
)

// creates the configured embedder; when c is non-nil query embeddings are cached for ttl
func NewEmbedder(config Config, c cache.Cache, ttl time.Duration) (Embedder, error) {
	var embedder Embedder

	switch config.Provider {
	case ProviderOpenAI, "":
		openaiEmbedder, err := NewOpenAIEmbedder(config)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai embedder: %w", err)
		}

		embedder = openaiEmbedder
		config.Model = openaiEmbedder.Model()
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", config.Provider)
	}

	if c == nil {
		return embedder, nil
	}

	return NewCachedEmbedder(embedder, c, config.Model, ttl), nil
}
