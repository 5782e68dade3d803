package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SeedDevOptions struct {
	// Optional: a starter blacklist record so the dev surface has data.
	BlacklistName   string
	BlacklistPhone  string
	BlacklistReason string
}

func SeedDev(ctx context.Context, db *sql.DB, opt SeedDevOptions) error {
	if opt.BlacklistName == "" {
		return nil
	}
	if opt.BlacklistReason == "" {
		opt.BlacklistReason = "dev seed"
	}

	now := time.Now().UTC().UnixMilli()

	var exists int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blacklist WHERE name = ? AND phone = ?;`,
		opt.BlacklistName, opt.BlacklistPhone,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("seed blacklist lookup: %w", err)
	}
	if exists > 0 {
		return nil
	}

	if _, err := db.ExecContext(ctx, `
INSERT INTO blacklist(name, phone, reason, added_at_ms)
VALUES (?, ?, ?, ?);`,
		opt.BlacklistName, opt.BlacklistPhone, opt.BlacklistReason, now,
	); err != nil {
		return fmt.Errorf("seed blacklist: %w", err)
	}

	return nil
}
