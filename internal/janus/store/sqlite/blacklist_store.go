package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	dbpkg "github.com/AveryLClark/janus/internal/db"
	"github.com/AveryLClark/janus/internal/janus/store"
	"github.com/AveryLClark/janus/internal/janus/types"
)

// BlacklistStore keeps deny-list rows in insertion order using an
// AUTOINCREMENT position column.
type BlacklistStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewBlacklistStore(db *sql.DB, writer *dbpkg.Worker) *BlacklistStore {
	return &BlacklistStore{db: db, writer: writer}
}

func (s *BlacklistStore) Add(ctx context.Context, entry types.BlacklistEntry) error {
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now().UTC()
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO blacklist(name, phone, reason, added_at_ms)
VALUES (?, ?, ?, ?);
`, entry.Name, entry.Phone, entry.Reason, entry.AddedAt.UTC().UnixMilli()); err != nil {
			return fmt.Errorf("Add insert blacklist: %w", err)
		}
		return nil
	})
}

func (s *BlacklistStore) List(ctx context.Context) ([]types.BlacklistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, phone, reason, added_at_ms
FROM blacklist
ORDER BY position ASC;
`)
	if err != nil {
		return nil, fmt.Errorf("List query: %w", err)
	}
	defer rows.Close()

	var out []types.BlacklistEntry
	for rows.Next() {
		var (
			e       types.BlacklistEntry
			addedMs int64
		)
		if err := rows.Scan(&e.Name, &e.Phone, &e.Reason, &addedMs); err != nil {
			return nil, fmt.Errorf("List scan: %w", err)
		}
		e.AddedAt = time.UnixMilli(addedMs).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// RemoveAt resolves the index to a position inside the write transaction
// so a concurrent Add cannot shift the target row under us.
func (s *BlacklistStore) RemoveAt(ctx context.Context, index int) error {
	if index < 0 {
		return store.ErrIndexOutOfRange
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var position int64
		err := tx.QueryRowContext(ctx, `
SELECT position FROM blacklist
ORDER BY position ASC
LIMIT 1 OFFSET ?;
`, index).Scan(&position)
		if err == sql.ErrNoRows {
			return store.ErrIndexOutOfRange
		}
		if err != nil {
			return fmt.Errorf("RemoveAt resolve position: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM blacklist WHERE position = ?;`, position,
		); err != nil {
			return fmt.Errorf("RemoveAt delete: %w", err)
		}
		return nil
	})
}

func (s *BlacklistStore) Contains(ctx context.Context, phone string) (bool, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false, nil
	}

	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blacklist WHERE phone = ?;`, phone,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("Contains query: %w", err)
	}
	return n > 0, nil
}
