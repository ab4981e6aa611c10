package main

import (
	"context"
	"fmt"

	"codeberg.org/showcase/server/internal/assets"
	"codeberg.org/showcase/server/internal/cache"
	"codeberg.org/showcase/server/internal/config"
	"codeberg.org/showcase/server/internal/llm"
	"codeberg.org/showcase/server/internal/logger"
	"codeberg.org/showcase/server/internal/pinning"
	"codeberg.org/showcase/server/internal/querylog"
	"codeberg.org/showcase/server/internal/retriever"
	"codeberg.org/showcase/server/internal/vectorstore"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// client-side ceiling on embedding calls, below the provider's tier limits
	embeddingRequestsPerSecond = 20
	embeddingBurst             = 10
	embeddingMaxRetries        = 2
)

// creates and configures all service clients
func InitializeServices(ctx context.Context, cfg *config.Config, flags config.Flags, db *pgxpool.Pool, c cache.Cache) (*Services, error) {
	embedder, err := llm.NewEmbedder(llm.Config{
		Provider:          llm.ProviderOpenAI,
		APIKey:            cfg.OpenAIKey,
		Model:             cfg.EmbeddingModel,
		Dimensions:        cfg.EmbeddingDimensions,
		RequestsPerSecond: embeddingRequestsPerSecond,
		Burst:             embeddingBurst,
		MaxRetries:        embeddingMaxRetries,
	}, c, cfg.EmbeddingCacheTTL)

	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	store := vectorstore.New(db)

	if flags.Migrate {
		if err := store.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}

		logger.Info("database schema applied")
	}

	// decide the match signature once; Match still falls back per call if this is wrong
	if err := store.Probe(ctx); err != nil {
		logger.Warn("failed to probe match functions, assuming capability filter support", "error", err)
	}

	logger.Info("vector store ready",
		"match_function", store.MatchFunction(),
		"capability_filter", store.SupportsCapabilityFilter(),
	)

	assetRepo := assets.NewRepository(db)
	rules := pinning.NewCachedRuleStore(pinning.NewPostgresRuleStore(db), c, cfg.PinningCacheTTL)
	pins := pinning.NewResolver(rules, assetRepo)

	retrieverClient, err := retriever.New(embedder, store, pins,
		retriever.WithDefaultLimit(cfg.Search.DefaultLimit),
		retriever.WithMinSimilarity(cfg.Search.MinSimilarity),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create retriever: %w", err)
	}

	return &Services{
		VectorStore: store,
		Assets:      assetRepo,
		Rules:       rules,
		Retriever:   retrieverClient,
		QueryLog:    querylog.New(db),
	}, nil
}
