package pinning

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"codeberg.org/showcase/server/internal/assets"
	"codeberg.org/showcase/server/internal/logger"
)

// resolves keyword pins for a query
type Resolver struct {
	rules  RuleStore
	assets AssetFetcher
}

func NewResolver(rules RuleStore, fetcher AssetFetcher) *Resolver {
	return &Resolver{
		rules:  rules,
		assets: fetcher,
	}
}

// returns the assets pinned by every rule whose keyword occurs in the query,
// in rule priority order. pinning is best-effort: lookup failures yield an
// empty list instead of an error.
func (r *Resolver) GetPinnedAssets(ctx context.Context, query string) []assets.Asset {
	log := logger.FromContext(ctx)

	rules, err := r.rules.ListRules(ctx)
	if err != nil {
		log.Warn("failed to load pinning rules, continuing without pins", "error", err)
		return []assets.Asset{}
	}

	ids := MatchRules(byPriority(rules), query)
	if len(ids) == 0 {
		return []assets.Asset{}
	}

	fetched, err := r.assets.GetByIDs(ctx, ids)
	if err != nil {
		log.Warn("failed to fetch pinned assets, continuing without pins",
			"asset_ids", ids,
			"error", err,
		)

		return []assets.Asset{}
	}

	byID := make(map[string]assets.Asset, len(fetched))
	for _, a := range fetched {
		byID[a.ID] = a
	}

	pinned := make([]assets.Asset, 0, len(ids))

	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			log.Debug("pinned asset no longer exists", "asset_id", id)
			continue
		}

		pinned = append(pinned, a)
	}

	return pinned
}

// returns the asset ids of rules whose keyword is a case-insensitive substring
// of query. rule order is kept and repeated ids keep their first position.
func MatchRules(rules []Rule, query string) []string {
	q := strings.ToLower(query)

	var ids []string
	seen := make(map[string]bool)

	for _, rule := range rules {
		keyword := strings.ToLower(rule.Keyword)
		if keyword == "" || !strings.Contains(q, keyword) {
			continue
		}

		if seen[rule.AssetID] {
			continue
		}

		seen[rule.AssetID] = true
		ids = append(ids, rule.AssetID)
	}

	return ids
}

// stable copy sorted by priority, highest first
func byPriority(rules []Rule) []Rule {
	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b Rule) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	return sorted
}
