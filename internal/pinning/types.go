package pinning

import (
	"context"

	"codeberg.org/showcase/server/internal/assets"
)

// a manual keyword -> asset override
type Rule struct {
	Keyword  string `json:"keyword"`
	AssetID  string `json:"asset_id"`
	Priority int    `json:"priority"`
}

// source of pinning rules; implementations return rules ordered by priority, highest first
type RuleStore interface {
	ListRules(ctx context.Context) ([]Rule, error)
}

// batch asset lookup; result order may differ from ids
type AssetFetcher interface {
	GetByIDs(ctx context.Context, ids []string) ([]assets.Asset, error)
}
