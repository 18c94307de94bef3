package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minseo-lab/chulgeun/internal/testutil"
)

// countingStore counts fetches so tests can prove at most one underlying
// read per TTL window.
type countingStore struct {
	rows    [][]string
	reads   int
	readErr error
}

func (s *countingStore) ReadAll(ctx context.Context) ([][]string, error) {
	s.reads++
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.rows, nil
}

func (s *countingStore) Append(ctx context.Context, cells []string) error {
	s.rows = append(s.rows, cells)
	return nil
}

func (s *countingStore) Close() error { return nil }

func newTestCache(s *countingStore) (*Cache, *testutil.FixedClock) {
	c := NewCache(s, 10*time.Second)
	clock := testutil.NewFixedClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	c.Now = clock.Now
	return c, clock
}

func TestCache_SingleFetchWithinTTL(t *testing.T) {
	s := &countingStore{rows: [][]string{{"2026-03-02 09:00:00", "홍길동", "출근"}}}
	c, _ := newTestCache(s)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rows, err := c.Records(ctx)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	}
	assert.Equal(t, 1, s.reads, "one underlying fetch per TTL window")
}

func TestCache_RefetchAfterTTL(t *testing.T) {
	s := &countingStore{}
	c, clock := newTestCache(s)
	ctx := context.Background()

	_, err := c.Records(ctx)
	require.NoError(t, err)

	clock.Advance(9 * time.Second)
	_, err = c.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.reads, "9s old snapshot still served")

	clock.Advance(2 * time.Second)
	_, err = c.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.reads, "snapshot past TTL refetched")
}

func TestCache_InvalidateForcesFetch(t *testing.T) {
	s := &countingStore{}
	c, _ := newTestCache(s)
	ctx := context.Background()

	_, err := c.Records(ctx)
	require.NoError(t, err)
	c.Invalidate()
	_, err = c.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.reads)
}

func TestCache_AppendInvalidates(t *testing.T) {
	s := &countingStore{}
	c, _ := newTestCache(s)
	ctx := context.Background()

	rows, err := c.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Read-after-write within the TTL window must see the new row.
	require.NoError(t, c.Append(ctx, []string{"2026-03-02 09:00:00", "홍길동", "출근"}))
	rows, err = c.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCache_ErrorsNotCached(t *testing.T) {
	s := &countingStore{readErr: errors.New("down")}
	c, _ := newTestCache(s)
	ctx := context.Background()

	_, err := c.Records(ctx)
	require.Error(t, err)

	s.readErr = nil
	rows, err := c.Records(ctx)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Equal(t, 2, s.reads)
}

func TestNewCache_DefaultTTL(t *testing.T) {
	c := NewCache(&countingStore{}, 0)
	assert.Equal(t, DefaultTTL, c.ttl)
}
