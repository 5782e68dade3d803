package store

import (
	"context"
	"time"

	"github.com/AveryLClark/janus/internal/janus/types"
)

// AuditStore persists entry/exit verification events as an append-only log.
type AuditStore interface {
	// Append records one entry or exit event.
	Append(ctx context.Context, entry types.AuditLogEntry) error

	// Recent returns up to the configured limit of events, most recent first.
	Recent(ctx context.Context) ([]types.AuditLogEntry, error)

	// PruneOlderThan deletes events before the cutoff and reports how many
	// were removed. Bounded in-memory stores may treat this as a no-op.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
