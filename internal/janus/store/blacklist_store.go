package store

import (
	"context"
	"errors"

	"github.com/AveryLClark/janus/internal/janus/types"
)

// ErrIndexOutOfRange is returned by RemoveAt for an index with no entry.
var ErrIndexOutOfRange = errors.New("blacklist index out of range")

// BlacklistStore holds operator-maintained deny-list records. Entries are
// ordered by insertion and addressed by position for removal.
type BlacklistStore interface {
	// Add appends a deny-list record.
	Add(ctx context.Context, entry types.BlacklistEntry) error

	// List returns all records in insertion order.
	List(ctx context.Context) ([]types.BlacklistEntry, error)

	// RemoveAt deletes the record at the given position.
	// Returns ErrIndexOutOfRange rather than corrupting the list.
	RemoveAt(ctx context.Context, index int) error

	// Contains reports whether a record matches the given phone number.
	Contains(ctx context.Context, phone string) (bool, error)
}
