package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/AveryLClark/janus/internal/db"
	"github.com/AveryLClark/janus/internal/janus/types"
)

// PassStore persists creation-time pass snapshots. Rows are never
// updated; the live pass diverges from its snapshot by design.
type PassStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
	limit  int
}

func NewPassStore(db *sql.DB, writer *dbpkg.Worker, limit int) *PassStore {
	if limit <= 0 {
		limit = 10
	}
	return &PassStore{db: db, writer: writer, limit: limit}
}

func (s *PassStore) Append(ctx context.Context, pass types.VisitorPass) error {
	if pass.IssuedAt.IsZero() {
		pass.IssuedAt = time.Now().UTC()
	}

	var verified int
	if pass.SecurityVerified {
		verified = 1
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO passes(
  pass_id, pass_code, pin, visitor_name, phone, purpose, vehicle,
  resident_name, unit, expected_arrival_ms, expected_departure_ms,
  status, security_verified, issued_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`,
			pass.ID, pass.PassCode, pass.PIN, pass.VisitorName, pass.Phone,
			string(pass.Purpose), pass.Vehicle, pass.ResidentName, pass.Unit,
			pass.ExpectedArrival.UTC().UnixMilli(),
			pass.ExpectedDeparture.UTC().UnixMilli(),
			string(pass.Status), verified, pass.IssuedAt.UTC().UnixMilli(),
		); err != nil {
			return fmt.Errorf("Append insert pass: %w", err)
		}
		return nil
	})
}

func (s *PassStore) Recent(ctx context.Context) ([]types.VisitorPass, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT pass_id, pass_code, pin, visitor_name, phone, purpose, vehicle,
       resident_name, unit, expected_arrival_ms, expected_departure_ms,
       status, security_verified, issued_at_ms
FROM passes
ORDER BY issued_at_ms DESC, rowid DESC
LIMIT ?;
`, s.limit)
	if err != nil {
		return nil, fmt.Errorf("Recent query: %w", err)
	}
	defer rows.Close()

	var out []types.VisitorPass
	for rows.Next() {
		var (
			p          types.VisitorPass
			purpose    string
			status     string
			arrivalMs  int64
			departMs   int64
			verified   int
			issuedAtMs int64
		)
		if err := rows.Scan(
			&p.ID, &p.PassCode, &p.PIN, &p.VisitorName, &p.Phone, &purpose,
			&p.Vehicle, &p.ResidentName, &p.Unit, &arrivalMs, &departMs,
			&status, &verified, &issuedAtMs,
		); err != nil {
			return nil, fmt.Errorf("Recent scan: %w", err)
		}
		p.Purpose = types.Purpose(purpose)
		p.Status = types.Status(status)
		p.SecurityVerified = verified == 1
		p.ExpectedArrival = time.UnixMilli(arrivalMs).UTC()
		p.ExpectedDeparture = time.UnixMilli(departMs).UTC()
		p.IssuedAt = time.UnixMilli(issuedAtMs).UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}
