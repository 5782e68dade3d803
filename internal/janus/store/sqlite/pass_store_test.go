package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AveryLClark/janus/internal/janus/types"

	sqlitestore "github.com/AveryLClark/janus/internal/janus/store/sqlite"
)

func samplePass(id string, issuedAt time.Time) types.VisitorPass {
	return types.VisitorPass{
		ID:                id,
		PassCode:          "AB12CD",
		PIN:               "4321",
		VisitorName:       "A. Visitor",
		Phone:             "9876543210",
		Purpose:           types.PurposeGuest,
		ResidentName:      "R. Owner",
		Unit:              "B-204",
		ExpectedArrival:   issuedAt,
		ExpectedDeparture: issuedAt.Add(2 * time.Hour),
		Status:            types.StatusPending,
		IssuedAt:          issuedAt,
	}
}

func TestPassStore_AppendAndRecent(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ps := sqlitestore.NewPassStore(conn, w, 10)

	issuedAt := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	if err := ps.Append(context.Background(), samplePass("pass-1", issuedAt)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	passes, err := ps.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(passes) != 1 {
		t.Fatalf("expected 1 pass, got %d", len(passes))
	}

	p := passes[0]
	if p.ID != "pass-1" || p.PassCode != "AB12CD" || p.PIN != "4321" {
		t.Errorf("unexpected pass %+v", p)
	}
	if p.Purpose != types.PurposeGuest {
		t.Errorf("expected purpose guest, got %q", p.Purpose)
	}
	if !p.IssuedAt.Equal(issuedAt) {
		t.Errorf("expected issued_at %v, got %v", issuedAt, p.IssuedAt)
	}
	if !p.ExpectedDeparture.Equal(issuedAt.Add(2 * time.Hour)) {
		t.Errorf("unexpected departure %v", p.ExpectedDeparture)
	}
}

func TestPassStore_RecentBoundedNewestFirst(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ps := sqlitestore.NewPassStore(conn, w, 10)

	base := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("pass-%02d", i)
		if err := ps.Append(context.Background(), samplePass(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Append %s: %v", id, err)
		}
	}

	passes, err := ps.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(passes) != 10 {
		t.Fatalf("expected read bounded to 10, got %d", len(passes))
	}
	if passes[0].ID != "pass-11" {
		t.Errorf("expected newest pass first, got %q", passes[0].ID)
	}
	if passes[9].ID != "pass-02" {
		t.Errorf("expected pass-02 last, got %q", passes[9].ID)
	}
}

func TestPassStore_SameMillisecondKeepsInsertionOrder(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ps := sqlitestore.NewPassStore(conn, w, 10)

	issuedAt := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	for _, id := range []string{"pass-a", "pass-b", "pass-c"} {
		if err := ps.Append(context.Background(), samplePass(id, issuedAt)); err != nil {
			t.Fatalf("Append %s: %v", id, err)
		}
	}

	passes, err := ps.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	for i, want := range []string{"pass-c", "pass-b", "pass-a"} {
		if passes[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, passes[i].ID)
		}
	}
}
