package store

import (
	"context"

	"github.com/AveryLClark/janus/internal/janus/types"
)

// PassStore keeps creation-time snapshots of issued passes. Snapshots are
// append-only: later status changes to the live pass are not written back.
type PassStore interface {
	// Append records a newly issued pass.
	Append(ctx context.Context, pass types.VisitorPass) error

	// Recent returns up to the configured history limit of snapshots,
	// most recent first.
	Recent(ctx context.Context) ([]types.VisitorPass, error)
}
