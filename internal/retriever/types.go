package retriever

import (
	"context"
	"errors"

	"codeberg.org/showcase/server/internal/assets"
	"codeberg.org/showcase/server/internal/capability"
	"codeberg.org/showcase/server/internal/vectorstore"
)

var (
	ErrEmbedderRequired    = errors.New("embedder is required")
	ErrVectorStoreRequired = errors.New("vector store is required")
	ErrEmptyQuery          = errors.New("query is empty")
)

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type VectorStore interface {
	Match(ctx context.Context, q vectorstore.Query) ([]vectorstore.Match, error)
}

// best-effort keyword pins; never fails, returns an empty list instead
type PinResolver interface {
	GetPinnedAssets(ctx context.Context, query string) []assets.Asset
}

type Client struct {
	embedder Embedder
	store    VectorStore
	pins     PinResolver

	boosts        Boosts
	defaultLimit  int
	minSimilarity float64
}

// options for a plain vector search.
// FilterCapability restricts matches in the store; BoostCapability only rewards
// assets whose primary capability equals it. The two are independent.
type SearchOptions struct {
	Limit            int
	Types            []assets.Type
	Client           string
	MinSimilarity    *float64
	FilterCapability capability.Capability
	BoostCapability  capability.Capability
}

type SearchResult struct {
	Asset      assets.Asset `json:"asset"`
	Similarity float64      `json:"similarity"`
	ChunkText  string       `json:"chunk_text"`
}

type PinnedSearchOptions struct {
	Limit int
	Types []assets.Type

	// overrides detection when set
	Capability capability.Capability
}

type PinnedSearchResult struct {
	Pinned             []assets.Asset `json:"pinned"`
	Searched           []SearchResult `json:"searched"`
	DetectedCapability *string        `json:"detected_capability"`

	// set when the vector search failed and Searched was degraded to empty
	SearchError error `json:"-"`
}
