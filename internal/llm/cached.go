package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"codeberg.org/showcase/server/internal/cache"
	"codeberg.org/showcase/server/internal/logger"
)

// serves repeated query embeddings from a cache; cache failures fall through to the provider
type CachedEmbedder struct {
	inner Embedder
	cache cache.Cache
	model string
	ttl   time.Duration
}

func NewCachedEmbedder(inner Embedder, c cache.Cache, model string, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{
		inner: inner,
		cache: c,
		model: model,
		ttl:   ttl,
	}
}

func (e *CachedEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	key := embeddingKey(e.model, text)

	var cached []float32

	found, err := cache.GetJSON(ctx, e.cache, key, &cached)
	if err != nil {
		logger.FromContext(ctx).Warn("embedding cache read failed", "error", err)
	}

	if found && len(cached) > 0 {
		return cached, nil
	}

	embedding, err := e.inner.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, e.cache, key, embedding, e.ttl); err != nil {
		logger.FromContext(ctx).Warn("embedding cache write failed", "error", err)
	}

	return embedding, nil
}

// keys on model and trimmed text
func embeddingKey(model, text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return "embedding:" + model + ":" + hex.EncodeToString(sum[:])
}
