package vectorstore

import (
	"context"
	_ "embed"
	"fmt"
	"sync/atomic"

	"codeberg.org/showcase/server/internal/assets"
	"codeberg.org/showcase/server/internal/capability"
	"codeberg.org/showcase/server/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
)

//go:embed schema.sql
var schemaSQL string

// the subset of pgxpool.Pool the store needs
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// nearest-neighbour request over asset chunks
type Query struct {
	Embedding     []float32
	MatchCount    int
	MinSimilarity float64
	Types         []assets.Type
	Client        string
	Capability    capability.Capability
}

// one matching chunk together with its owning asset
type Match struct {
	Asset      assets.Asset
	Similarity float64
	ChunkText  string
}

// runs similarity queries through the match_asset_chunks SQL functions
type Store struct {
	db querier

	// whether match_asset_chunks_v2 (capability filter) is installed
	capabilityFilter atomic.Bool
}

func New(db querier) *Store {
	s := &Store{db: db}
	s.capabilityFilter.Store(true)

	return s
}

// checks once which match signature the database provides and caches the answer.
// on probe failure the v2 signature is assumed and Match falls back per call.
func (s *Store) Probe(ctx context.Context) error {
	var exists bool

	if err := s.db.QueryRow(ctx, queryFunctionExists, matchFunctionV2).Scan(&exists); err != nil {
		s.capabilityFilter.Store(true)
		return fmt.Errorf("failed to probe %s: %w", matchFunctionV2, err)
	}

	s.capabilityFilter.Store(exists)

	return nil
}

// reports whether the capability filter is applied in the database
func (s *Store) SupportsCapabilityFilter() bool {
	return s.capabilityFilter.Load()
}

// name of the SQL function Match currently calls
func (s *Store) MatchFunction() string {
	if s.SupportsCapabilityFilter() {
		return matchFunctionV2
	}

	return matchFunctionV1
}

// installs tables and match functions; idempotent
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	s.capabilityFilter.Store(true)

	return nil
}

// returns chunks ordered by raw similarity, highest first.
// when the capability-aware function is missing the capability filter
// becomes inert and the older signature is used instead.
func (s *Store) Match(ctx context.Context, q Query) ([]Match, error) {
	if s.capabilityFilter.Load() {
		matches, err := s.query(ctx, queryMatchV2, v2Args(q)...)
		if err == nil {
			return matches, nil
		}

		if !isMissingFunction(err) {
			return nil, err
		}

		s.capabilityFilter.Store(false)
		logger.FromContext(ctx).Warn("capability match function unavailable, using legacy signature",
			"function", matchFunctionV2,
			"error", err,
		)
	}

	return s.query(ctx, queryMatchV1, v1Args(q)...)
}

func v1Args(q Query) []any {
	var types []string
	for _, t := range q.Types {
		types = append(types, string(t))
	}

	var client *string
	if q.Client != "" {
		client = &q.Client
	}

	return []any{
		pgvector.NewVector(q.Embedding),
		q.MatchCount,
		q.MinSimilarity,
		types,
		client,
	}
}

func v2Args(q Query) []any {
	var capabilityFilter *string
	if q.Capability != capability.None {
		c := string(q.Capability)
		capabilityFilter = &c
	}

	return append(v1Args(q), capabilityFilter)
}

func (s *Store) query(ctx context.Context, sql string, args ...any) ([]Match, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute match query: %w", err)
	}

	defer rows.Close()

	var matches []Match

	for rows.Next() {
		var (
			rawAsset   []byte
			similarity float64
			chunkText  *string
		)

		if err := rows.Scan(&rawAsset, &similarity, &chunkText); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}

		asset, err := assets.DecodeRecord(rawAsset)
		if err != nil && asset.ID == "" {
			logger.FromContext(ctx).Warn("skipping undecodable asset in match results", "error", err)
			continue
		}

		if err != nil {
			logger.FromContext(ctx).Debug("asset metadata partially invalid", "asset_id", asset.ID, "error", err)
		}

		m := Match{
			Asset:      asset,
			Similarity: clampUnit(similarity),
		}

		if chunkText != nil {
			m.ChunkText = *chunkText
		}

		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}

	return matches, nil
}

// cosine similarity can dip below zero for opposed vectors
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}
