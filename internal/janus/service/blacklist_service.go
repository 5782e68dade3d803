package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/AveryLClark/janus/internal/janus/store"
	"github.com/AveryLClark/janus/internal/janus/types"
	"github.com/AveryLClark/janus/internal/metrics"
)

var (
	ErrBlacklistNameRequired   = errors.New("name is required")
	ErrBlacklistReasonRequired = errors.New("reason is required")
)

// BlacklistService manages the operator deny list. It is independent of
// the pass lifecycle; enforcement at issue time is a PassService policy.
type BlacklistService struct {
	store   store.BlacklistStore
	metrics *metrics.Metrics
	logger  *log.Logger
}

// NewBlacklistService initializes the size gauge from whatever the store
// already holds, so a restart over a persistent store reports the real count.
func NewBlacklistService(ctx context.Context, st store.BlacklistStore, m *metrics.Metrics, logger *log.Logger) *BlacklistService {
	s := &BlacklistService{store: st, metrics: m, logger: logger}

	entries, err := st.List(ctx)
	if err != nil {
		logger.Printf("blacklist size init: %v", err)
		return s
	}
	m.BlacklistSize.Set(float64(len(entries)))
	return s
}

// Add appends a deny-list record. The reason is operator-supplied and
// required; the registry is not mutated when it is missing.
func (s *BlacklistService) Add(ctx context.Context, req types.BlacklistAddRequest) (types.BlacklistEntry, error) {
	name := strings.TrimSpace(req.Name)
	reason := strings.TrimSpace(req.Reason)

	if name == "" {
		return types.BlacklistEntry{}, ErrBlacklistNameRequired
	}
	if reason == "" {
		return types.BlacklistEntry{}, ErrBlacklistReasonRequired
	}

	entry := types.BlacklistEntry{
		Name:    name,
		Phone:   strings.TrimSpace(req.Phone),
		Reason:  reason,
		AddedAt: time.Now().UTC(),
	}
	if err := s.store.Add(ctx, entry); err != nil {
		return types.BlacklistEntry{}, err
	}

	s.metrics.BlacklistSize.Inc()
	s.logger.Printf("blacklist add name=%q", entry.Name)
	return entry, nil
}

// List returns all records in insertion order.
func (s *BlacklistService) List(ctx context.Context) ([]types.BlacklistEntry, error) {
	return s.store.List(ctx)
}

// RemoveAt deletes the record at the given position. An out-of-range
// index surfaces store.ErrIndexOutOfRange instead of corrupting the list.
func (s *BlacklistService) RemoveAt(ctx context.Context, index int) error {
	if err := s.store.RemoveAt(ctx, index); err != nil {
		return err
	}
	s.metrics.BlacklistSize.Dec()
	s.logger.Printf("blacklist remove index=%d", index)
	return nil
}
