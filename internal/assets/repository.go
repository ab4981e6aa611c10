package assets

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/showcase/server/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAssetNotFound = errors.New("asset not found")

// read-only access to the assets table
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// fetches assets by id in one round trip; unknown ids are skipped and
// the result order is unspecified
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]Asset, error) {
	if len(ids) == 0 {
		return []Asset{}, nil
	}

	rows, err := r.db.Query(ctx, queryGetByIDs, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}

	defer rows.Close()

	out := make([]Asset, 0, len(ids))

	for rows.Next() {
		asset, err := scanAsset(ctx, rows)
		if err != nil {
			return nil, err
		}

		out = append(out, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", err)
	}

	return out, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*Asset, error) {
	asset, err := scanAsset(ctx, r.db.QueryRow(ctx, queryGetByID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAssetNotFound
	}

	if err != nil {
		return nil, err
	}

	return &asset, nil
}

func scanAsset(ctx context.Context, row pgx.Row) (Asset, error) {
	var (
		a        Asset
		typ      string
		metadata []byte
	)

	err := row.Scan(
		&a.ID,
		&typ,
		&a.Title,
		&a.ClientName,
		&a.Description,
		&a.Content,
		&metadata,
		&a.ThumbnailURL,
		&a.SourceURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		return Asset{}, fmt.Errorf("failed to scan asset: %w", err)
	}

	a.Type = Type(typ)

	md, err := ParseMetadata(metadata)
	if err != nil {
		logger.FromContext(ctx).Warn("asset metadata partially invalid", "asset_id", a.ID, "error", err)
	}

	a.Metadata = md

	return a, nil
}
