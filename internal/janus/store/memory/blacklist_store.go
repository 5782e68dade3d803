package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/AveryLClark/janus/internal/janus/store"
	"github.com/AveryLClark/janus/internal/janus/types"
)

// BlacklistStore is an in-memory deny list in insertion order.
type BlacklistStore struct {
	mu      sync.Mutex
	entries []types.BlacklistEntry
}

func NewBlacklistStore() *BlacklistStore {
	return &BlacklistStore{}
}

func (s *BlacklistStore) Add(_ context.Context, entry types.BlacklistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now().UTC()
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *BlacklistStore) List(_ context.Context) ([]types.BlacklistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.BlacklistEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *BlacklistStore) RemoveAt(_ context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return store.ErrIndexOutOfRange
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	return nil
}

func (s *BlacklistStore) Contains(_ context.Context, phone string) (bool, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}
