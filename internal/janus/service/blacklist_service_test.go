package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/AveryLClark/janus/internal/janus/service"
	"github.com/AveryLClark/janus/internal/janus/store"
	"github.com/AveryLClark/janus/internal/janus/store/memory"
	"github.com/AveryLClark/janus/internal/janus/types"
	"github.com/AveryLClark/janus/internal/metrics"
)

func newTestBlacklistService() (*service.BlacklistService, *memory.BlacklistStore) {
	st := memory.NewBlacklistStore()
	m := metrics.New(prometheus.NewRegistry())
	return service.NewBlacklistService(context.Background(), st, m, silentLogger()), st
}

func TestBlacklistAdd_AllFieldsPopulated(t *testing.T) {
	svc, _ := newTestBlacklistService()

	entry, err := svc.Add(context.Background(), types.BlacklistAddRequest{
		Name:   "Jane Doe",
		Phone:  "9998887776",
		Reason: "repeated unauthorized visits",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if entry.Name != "Jane Doe" || entry.Phone != "9998887776" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.Reason != "repeated unauthorized visits" {
		t.Errorf("unexpected reason %q", entry.Reason)
	}
	if entry.AddedAt.IsZero() {
		t.Error("expected added_at to be auto-set")
	}

	entries, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 entry, got %d", len(entries))
	}
}

func TestBlacklistAdd_MissingReasonRejected(t *testing.T) {
	svc, _ := newTestBlacklistService()

	_, err := svc.Add(context.Background(), types.BlacklistAddRequest{
		Name:  "Jane Doe",
		Phone: "9998887776",
	})
	if !errors.Is(err, service.ErrBlacklistReasonRequired) {
		t.Fatalf("expected ErrBlacklistReasonRequired, got %v", err)
	}

	entries, _ := svc.List(context.Background())
	if len(entries) != 0 {
		t.Errorf("expected registry unchanged, got %d entries", len(entries))
	}
}

func TestBlacklistRemoveAt_OutOfRange(t *testing.T) {
	svc, _ := newTestBlacklistService()

	if err := svc.RemoveAt(context.Background(), 0); !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange on empty registry, got %v", err)
	}

	_, _ = svc.Add(context.Background(), types.BlacklistAddRequest{
		Name: "Jane Doe", Phone: "9998887776", Reason: "repeated unauthorized visits",
	})

	if err := svc.RemoveAt(context.Background(), 5); !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := svc.RemoveAt(context.Background(), -1); !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange for negative index, got %v", err)
	}

	if err := svc.RemoveAt(context.Background(), 0); err != nil {
		t.Fatalf("RemoveAt valid index: %v", err)
	}
	entries, _ := svc.List(context.Background())
	if len(entries) != 0 {
		t.Errorf("expected empty registry after removal, got %d", len(entries))
	}
}

func TestBlacklistSizeGauge_SeededFromExistingStore(t *testing.T) {
	st := memory.NewBlacklistStore()
	for _, e := range []types.BlacklistEntry{
		{Name: "Jane Doe", Phone: "9998887776", Reason: "repeated unauthorized visits"},
		{Name: "John Roe", Phone: "1112223334", Reason: "trespassing"},
	} {
		if err := st.Add(context.Background(), e); err != nil {
			t.Fatalf("store add: %v", err)
		}
	}

	m := metrics.New(prometheus.NewRegistry())
	svc := service.NewBlacklistService(context.Background(), st, m, silentLogger())

	if got := testutil.ToFloat64(m.BlacklistSize); got != 2 {
		t.Fatalf("expected gauge seeded to 2, got %v", got)
	}

	if err := svc.RemoveAt(context.Background(), 0); err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	if got := testutil.ToFloat64(m.BlacklistSize); got != 1 {
		t.Errorf("expected gauge at 1 after removal, got %v", got)
	}
}
