package querylog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"codeberg.org/showcase/server/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const defaultWriteTimeout = 3 * time.Second

// the subset of pgxpool.Pool the log needs
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Service struct {
	db           db
	writeTimeout time.Duration
	pending      sync.WaitGroup
}

func New(db db) *Service {
	return &Service{
		db:           db,
		writeTimeout: defaultWriteTimeout,
	}
}

// stores a search in the background. failures are logged and never reach
// the caller; the write outlives request cancellation but not writeTimeout.
func (s *Service) Record(ctx context.Context, e Entry) {
	log := logger.FromContext(ctx)
	writeCtx := context.WithoutCancel(ctx)

	s.pending.Add(1)

	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(writeCtx, s.writeTimeout)
		defer cancel()

		_, err := s.db.Exec(
			ctx,
			queryInsertSearch,
			e.Query,
			e.DetectedCapability.Ptr(),
			nonNil(e.PinnedIDs),
			nonNil(e.ResultIDs),
			e.SearchFailed,
			e.Latency.Milliseconds(),
		)

		if err != nil {
			log.Warn("failed to record search query", "error", err)
		}
	}()
}

// blocks until in-flight writes finish or ctx is done
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// per-capability traffic since the given time, busiest first
func (s *Service) Stats(ctx context.Context, since time.Time) ([]CapabilityStats, error) {
	rows, err := s.db.Query(ctx, queryCapabilityStats, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query search stats: %w", err)
	}

	defer rows.Close()

	stats := []CapabilityStats{}

	for rows.Next() {
		var cs CapabilityStats
		if err := rows.Scan(&cs.Capability, &cs.Searches, &cs.Failed, &cs.Empty, &cs.AvgLatencyMS); err != nil {
			return nil, fmt.Errorf("failed to scan search stats: %w", err)
		}

		stats = append(stats, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search stats: %w", err)
	}

	return stats, nil
}

// text[] columns are NOT NULL
func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}

	return ids
}
