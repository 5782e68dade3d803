package memory

import (
	"context"
	"sync"

	"github.com/AveryLClark/janus/internal/janus/types"
)

// PassStore is a bounded in-memory history of issued passes, newest first.
type PassStore struct {
	mu     sync.Mutex
	limit  int
	passes []types.VisitorPass
}

// NewPassStore creates a history bounded to limit entries.
// A non-positive limit falls back to 10.
func NewPassStore(limit int) *PassStore {
	if limit <= 0 {
		limit = 10
	}
	return &PassStore{limit: limit}
}

func (s *PassStore) Append(_ context.Context, pass types.VisitorPass) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.passes = append([]types.VisitorPass{pass}, s.passes...)
	if len(s.passes) > s.limit {
		s.passes = s.passes[:s.limit]
	}
	return nil
}

func (s *PassStore) Recent(_ context.Context) ([]types.VisitorPass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.VisitorPass, len(s.passes))
	copy(out, s.passes)
	return out, nil
}
