package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDs generates record IDs "rec-000001", "rec-000002", ... in order.
//
// Production record IDs are UUIDv7 and differ on every run; tests that
// assert on stored rows plug ids.Next into the recorder to get stable,
// readable IDs instead.
//
// Thread-safety: Next is safe for concurrent use via internal mutex.
type SequenceIDs struct {
	mu  sync.Mutex
	seq int64
}

// NewSequenceIDs creates a generator whose first Next() returns "rec-000001".
func NewSequenceIDs() *SequenceIDs {
	return &SequenceIDs{}
}

// Next increments and returns the next ID. It has the same signature as
// the recorder's ID hook so it can be assigned directly.
func (g *SequenceIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("rec-%06d", g.seq)
}

// Reset restarts the sequence. After Reset the next call to Next()
// returns "rec-000001" again.
func (g *SequenceIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
