package querylog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"codeberg.org/showcase/server/internal/capability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDB struct {
	mu    sync.Mutex
	args  [][]any
	exec  func(ctx context.Context) error
	query func(ctx context.Context, args ...any) (pgx.Rows, error)
}

func (m *mockDB) Exec(ctx context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	m.args = append(m.args, args)
	m.mu.Unlock()

	if m.exec != nil {
		return pgconn.CommandTag{}, m.exec(ctx)
	}

	return pgconn.CommandTag{}, nil
}

func (m *mockDB) Query(ctx context.Context, _ string, args ...any) (pgx.Rows, error) {
	return m.query(ctx, args...)
}

type statsRows struct {
	rows []CapabilityStats
	pos  int
}

func (r *statsRows) Close()                                       {}
func (r *statsRows) Err() error                                   { return nil }
func (r *statsRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *statsRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *statsRows) Values() ([]any, error)                       { return nil, nil }
func (r *statsRows) RawValues() [][]byte                          { return nil }
func (r *statsRows) Conn() *pgx.Conn                              { return nil }

func (r *statsRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}

	r.pos++

	return true
}

func (r *statsRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]

	*(dest[0].(*string)) = row.Capability
	*(dest[1].(*int)) = row.Searches
	*(dest[2].(*int)) = row.Failed
	*(dest[3].(*int)) = row.Empty
	*(dest[4].(*float64)) = row.AvgLatencyMS

	return nil
}

func TestRecord(t *testing.T) {
	db := &mockDB{}
	svc := New(db)

	svc.Record(context.Background(), Entry{
		Query:              "crowdstrike case study",
		DetectedCapability: capability.CustomerStorytelling,
		PinnedIDs:          []string{"x"},
		Latency:            120 * time.Millisecond,
	})

	require.NoError(t, svc.Wait(context.Background()))
	require.Len(t, db.args, 1)

	args := db.args[0]
	assert.Equal(t, "crowdstrike case study", args[0])
	assert.Equal(t, "customer-storytelling", *(args[1].(*string)))
	assert.Equal(t, []string{"x"}, args[2])
	assert.Equal(t, []string{}, args[3])
	assert.Equal(t, false, args[4])
	assert.Equal(t, int64(120), args[5])
}

func TestRecord_NoCapabilityIsNull(t *testing.T) {
	db := &mockDB{}
	svc := New(db)

	svc.Record(context.Background(), Entry{Query: "q"})
	require.NoError(t, svc.Wait(context.Background()))

	assert.Nil(t, db.args[0][1])
}

func TestRecord_SurvivesRequestCancellation(t *testing.T) {
	var writeErr error

	db := &mockDB{exec: func(ctx context.Context) error {
		writeErr = ctx.Err()
		return nil
	}}

	svc := New(db)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Record(ctx, Entry{Query: "q"})
	cancel()

	require.NoError(t, svc.Wait(context.Background()))
	assert.NoError(t, writeErr)
}

func TestRecord_FailureIsSwallowed(t *testing.T) {
	db := &mockDB{exec: func(context.Context) error {
		return errors.New("relation \"search_queries\" does not exist")
	}}

	svc := New(db)
	svc.Record(context.Background(), Entry{Query: "q"})

	assert.NoError(t, svc.Wait(context.Background()))
}

func TestWait_RespectsContext(t *testing.T) {
	release := make(chan struct{})
	db := &mockDB{exec: func(context.Context) error {
		<-release
		return nil
	}}

	svc := New(db)
	svc.Record(context.Background(), Entry{Query: "q"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, svc.Wait(ctx), context.DeadlineExceeded)

	close(release)
	assert.NoError(t, svc.Wait(context.Background()))
}

func TestStats(t *testing.T) {
	since := time.Now().Add(-24 * time.Hour)

	db := &mockDB{query: func(_ context.Context, args ...any) (pgx.Rows, error) {
		assert.Equal(t, since, args[0])
		return &statsRows{rows: []CapabilityStats{
			{Capability: "gtm-strategy", Searches: 12, Failed: 1, AvgLatencyMS: 210.5},
			{Capability: "", Searches: 4, Empty: 2},
		}}, nil
	}}

	stats, err := New(db).Stats(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "gtm-strategy", stats[0].Capability)
	assert.Equal(t, 2, stats[1].Empty)
}

func TestStats_QueryError(t *testing.T) {
	db := &mockDB{query: func(context.Context, ...any) (pgx.Rows, error) {
		return nil, errors.New("boom")
	}}

	_, err := New(db).Stats(context.Background(), time.Now())
	assert.Error(t, err)
}
