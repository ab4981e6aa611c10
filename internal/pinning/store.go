package pinning

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/showcase/server/internal/cache"
	"codeberg.org/showcase/server/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

const rulesCacheKey = "pinning:rules"

// reads rules from the pinning_rules table
type PostgresRuleStore struct {
	db *pgxpool.Pool
}

func NewPostgresRuleStore(db *pgxpool.Pool) *PostgresRuleStore {
	return &PostgresRuleStore{db: db}
}

func (s *PostgresRuleStore) ListRules(ctx context.Context) ([]Rule, error) {
	rows, err := s.db.Query(ctx, queryListRules)
	if err != nil {
		return nil, fmt.Errorf("failed to query pinning rules: %w", err)
	}

	defer rows.Close()

	var rules []Rule

	for rows.Next() {
		var r Rule
		if err := rows.Scan(&r.Keyword, &r.AssetID, &r.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan pinning rule: %w", err)
		}

		rules = append(rules, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pinning rules: %w", err)
	}

	return rules, nil
}

// caches the full rule list; rules change rarely and every search reads them
type CachedRuleStore struct {
	inner RuleStore
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedRuleStore(inner RuleStore, c cache.Cache, ttl time.Duration) *CachedRuleStore {
	return &CachedRuleStore{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

func (s *CachedRuleStore) ListRules(ctx context.Context) ([]Rule, error) {
	var rules []Rule

	found, err := cache.GetJSON(ctx, s.cache, rulesCacheKey, &rules)
	if err != nil {
		logger.FromContext(ctx).Warn("pinning rule cache read failed", "error", err)
	}

	if found {
		return rules, nil
	}

	rules, err = s.inner.ListRules(ctx)
	if err != nil {
		return nil, err
	}

	// an empty list is cached too so a table without rules is not re-read per search
	if rules == nil {
		rules = []Rule{}
	}

	if err := cache.SetJSON(ctx, s.cache, rulesCacheKey, rules, s.ttl); err != nil {
		logger.FromContext(ctx).Warn("pinning rule cache write failed", "error", err)
	}

	return rules, nil
}

// drops the cached rule list so the next read hits the store
func (s *CachedRuleStore) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, rulesCacheKey)
}
