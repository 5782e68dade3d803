package memory

import (
	"context"
	"sync"
	"time"

	"github.com/AveryLClark/janus/internal/janus/types"
)

// AuditStore is a bounded in-memory log of entry/exit events, newest first.
// Truncation at the limit doubles as retention, so PruneOlderThan is a no-op.
type AuditStore struct {
	mu      sync.Mutex
	limit   int
	entries []types.AuditLogEntry
}

// NewAuditStore creates a log bounded to limit entries.
// A non-positive limit falls back to 10.
func NewAuditStore(limit int) *AuditStore {
	if limit <= 0 {
		limit = 10
	}
	return &AuditStore{limit: limit}
}

func (s *AuditStore) Append(_ context.Context, entry types.AuditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	s.entries = append([]types.AuditLogEntry{entry}, s.entries...)
	if len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
	return nil
}

func (s *AuditStore) Recent(_ context.Context) ([]types.AuditLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.AuditLogEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *AuditStore) PruneOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}
