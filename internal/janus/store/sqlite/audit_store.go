package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/AveryLClark/janus/internal/db"
	"github.com/AveryLClark/janus/internal/janus/types"
)

// AuditStore persists entry/exit events append-only. Unlike the bounded
// memory store, rows accumulate until the retention pruner removes them;
// Recent bounds only the read side.
type AuditStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
	limit  int
}

func NewAuditStore(db *sql.DB, writer *dbpkg.Worker, limit int) *AuditStore {
	if limit <= 0 {
		limit = 10
	}
	return &AuditStore{db: db, writer: writer, limit: limit}
}

func (s *AuditStore) Append(ctx context.Context, entry types.AuditLogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO audit_events(
  event_id, visitor_name, event_type, pass_code, occurred_at_ms, verified_by
) VALUES (?, ?, ?, ?, ?, ?);
`,
			entry.ID, entry.VisitorName, string(entry.Type), entry.PassCode,
			entry.Timestamp.UTC().UnixMilli(), string(entry.VerifiedBy),
		); err != nil {
			return fmt.Errorf("Append insert audit event: %w", err)
		}
		return nil
	})
}

func (s *AuditStore) Recent(ctx context.Context) ([]types.AuditLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT event_id, visitor_name, event_type, pass_code, occurred_at_ms, verified_by
FROM audit_events
ORDER BY occurred_at_ms DESC, rowid DESC
LIMIT ?;
`, s.limit)
	if err != nil {
		return nil, fmt.Errorf("Recent query: %w", err)
	}
	defer rows.Close()

	var out []types.AuditLogEntry
	for rows.Next() {
		var (
			e          types.AuditLogEntry
			eventType  string
			verifiedBy string
			occurredMs int64
		)
		if err := rows.Scan(&e.ID, &e.VisitorName, &eventType, &e.PassCode, &occurredMs, &verifiedBy); err != nil {
			return nil, fmt.Errorf("Recent scan: %w", err)
		}
		e.Type = types.AuditEventType(eventType)
		e.VerifiedBy = types.VerifiedBy(verifiedBy)
		e.Timestamp = time.UnixMilli(occurredMs).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// PruneOlderThan deletes audit rows before the cutoff. Returns the
// number of rows deleted. Uses the idx_audit_time index for an
// efficient range scan.
func (s *AuditStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cutoffMs := cutoff.UTC().UnixMilli()

	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
DELETE FROM audit_events
WHERE occurred_at_ms < ?;
`, cutoffMs)
		if err != nil {
			return fmt.Errorf("PruneOlderThan: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}
