package store

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is the observed cache lifetime: stale reads up to ten seconds
// old are accepted by design.
const DefaultTTL = 10 * time.Second

// Cache is a short-TTL read-through cache over a RecordStore's ReadAll.
// Reads within the TTL share one snapshot; at most one underlying fetch
// runs per TTL window. Writes pass through to the store and invalidate the
// snapshot, so a status derivation after a successful append always sees
// the new row regardless of TTL.
//
// The cache is keyed on the store handle alone, independent of call
// arguments. Callers must not mutate the returned rows.
type Cache struct {
	mu        sync.Mutex
	store     RecordStore
	ttl       time.Duration
	rows      [][]string
	fetchedAt time.Time
	valid     bool

	// Now is the clock used for TTL checks. Tests override it.
	Now func() time.Time
}

// NewCache wraps store with a TTL cache. A non-positive ttl selects
// DefaultTTL.
func NewCache(store RecordStore, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: store, ttl: ttl, Now: time.Now}
}

// Records returns the cached snapshot, fetching from the store when the
// snapshot is missing, invalidated, or past its TTL. Fetch failures are
// returned to the caller and never cached.
func (c *Cache) Records(ctx context.Context) ([][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.Now().Sub(c.fetchedAt) < c.ttl {
		return c.rows, nil
	}

	rows, err := c.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	c.rows = rows
	c.fetchedAt = c.Now()
	c.valid = true
	return rows, nil
}

// Invalidate forces the next Records call to bypass the snapshot.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

// Append passes the write through to the store and invalidates the
// snapshot on success, keeping read-after-write consistency inside one
// session.
func (c *Cache) Append(ctx context.Context, cells []string) error {
	if err := c.store.Append(ctx, cells); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}
