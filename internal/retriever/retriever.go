package retriever

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/showcase/server/internal/assets"
	"codeberg.org/showcase/server/internal/capability"
	"codeberg.org/showcase/server/internal/logger"
	"codeberg.org/showcase/server/internal/vectorstore"
)

// creates a retriever over the given collaborators; pins may be nil
func New(embedder Embedder, store VectorStore, pins PinResolver, opts ...Option) (*Client, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	if store == nil {
		return nil, ErrVectorStoreRequired
	}

	c := &Client{
		embedder:      embedder,
		store:         store,
		pins:          pins,
		boosts:        DefaultBoosts,
		defaultLimit:  defaultLimit,
		minSimilarity: defaultMinSimilarity,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// embeds the query, fetches limit*2 candidate chunks, reranks them with the
// quality boosts and returns at most limit results, one per asset.
// embedding and store failures are returned to the caller.
func (c *Client) SearchAssets(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = c.defaultLimit
	}

	minSimilarity := c.minSimilarity
	if opts.MinSimilarity != nil {
		minSimilarity = *opts.MinSimilarity
	}

	embedding, err := c.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	matches, err := c.store.Match(ctx, vectorstore.Query{
		Embedding:     embedding,
		MatchCount:    limit * overFetchFactor,
		MinSimilarity: minSimilarity,
		Types:         opts.Types,
		Client:        opts.Client,
		Capability:    opts.FilterCapability,
	})

	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	results := dedupeByAsset(rerank(matches, c.boosts, opts.BoostCapability))

	return truncate(results, limit), nil
}

// combines keyword pins with vector search. pinned assets come back as
// resolved and are never repeated in Searched. a failed vector search is
// logged and degrades to an empty Searched list; this method never fails.
func (c *Client) SearchWithPinning(ctx context.Context, query string, opts PinnedSearchOptions) PinnedSearchResult {
	log := logger.FromContext(ctx)

	limit := opts.Limit
	if limit <= 0 {
		limit = c.defaultLimit
	}

	detected := opts.Capability
	if detected == capability.None {
		detected = capability.Detect(query)
	}

	var pinned []assets.Asset
	if c.pins != nil {
		pinned = c.pins.GetPinnedAssets(ctx, query)
	}

	if pinned == nil {
		pinned = []assets.Asset{}
	}

	result := PinnedSearchResult{
		Pinned:             truncate(pinned, limit),
		Searched:           []SearchResult{},
		DetectedCapability: detected.Ptr(),
	}

	// pins already fill the page
	if len(result.Pinned) >= limit {
		return result
	}

	searchLimit := max(1, limit-len(result.Pinned))

	searched, err := c.SearchAssets(ctx, query, SearchOptions{
		Limit:            searchLimit + len(result.Pinned),
		Types:            opts.Types,
		FilterCapability: detected,
		BoostCapability:  detected,
	})

	if err != nil {
		log.Warn("vector search failed, returning pinned results only",
			"pinned", len(result.Pinned),
			"error", err,
		)

		result.SearchError = err

		return result
	}

	searched = excludePinned(searched, assetIDSet(result.Pinned))
	result.Searched = truncate(searched, searchLimit)

	return result
}
