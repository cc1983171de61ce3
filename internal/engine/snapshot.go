package engine

import (
	"sync"

	"github.com/pennyflow/pennyflow-backend/internal/models"
)

// Snapshot is a stable, point-in-time view of the transaction list tagged
// with the revision it was taken at. Engine computations run against a
// snapshot; results are published only if the snapshot is still current.
type Snapshot struct {
	Transactions []models.Transaction
	Revision     uint64
}

// SnapshotSource hands out snapshots and validates their freshness. It is
// the explicit replacement for relying on a UI framework's change tracking:
// optimistic concurrency by revision counter, no locks held during compute.
type SnapshotSource struct {
	mu       sync.Mutex
	current  []models.Transaction
	revision uint64
}

func NewSnapshotSource() *SnapshotSource {
	return &SnapshotSource{}
}

// Replace installs a new transaction list and bumps the revision, making
// every previously taken snapshot stale.
func (s *SnapshotSource) Replace(txs []models.Transaction) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = append([]models.Transaction(nil), txs...)
	s.revision++
	return Snapshot{Transactions: s.current, Revision: s.revision}
}

// Take returns the current snapshot.
func (s *SnapshotSource) Take() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Transactions: s.current, Revision: s.revision}
}

// StillCurrent reports whether snap matches the latest known data. Callers
// computing off the interactive path must check this before publishing and
// discard stale results.
func (s *SnapshotSource) StillCurrent(snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snap.Revision == s.revision
}
