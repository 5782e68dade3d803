package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/AveryLClark/janus/internal/db"
)

func openSeedTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:test_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		t.Name(),
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("openSeedTestDB: sql.Open: %v", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := db.Migrate(context.Background(), conn); err != nil {
		conn.Close()
		t.Fatalf("openSeedTestDB: migrate: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestSeedDev_InsertsStarterBlacklistEntry(t *testing.T) {
	conn := openSeedTestDB(t)

	opt := db.SeedDevOptions{
		BlacklistName:   "Sample Blocked Visitor",
		BlacklistPhone:  "0000000000",
		BlacklistReason: "dev seed",
	}
	if err := db.SeedDev(context.Background(), conn, opt); err != nil {
		t.Fatalf("SeedDev: %v", err)
	}

	var n int
	err := conn.QueryRow(
		`SELECT COUNT(*) FROM blacklist WHERE name = ? AND phone = ?;`,
		opt.BlacklistName, opt.BlacklistPhone,
	).Scan(&n)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 seeded row, got %d", n)
	}

	// Rerunning the seed must not duplicate the row.
	if err := db.SeedDev(context.Background(), conn, opt); err != nil {
		t.Fatalf("SeedDev rerun: %v", err)
	}
	if err := conn.QueryRow(`SELECT COUNT(*) FROM blacklist;`).Scan(&n); err != nil {
		t.Fatalf("count after rerun: %v", err)
	}
	if n != 1 {
		t.Errorf("expected seed to be idempotent, got %d rows", n)
	}
}

func TestSeedDev_NoNameIsNoOp(t *testing.T) {
	conn := openSeedTestDB(t)

	if err := db.SeedDev(context.Background(), conn, db.SeedDevOptions{}); err != nil {
		t.Fatalf("SeedDev: %v", err)
	}

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM blacklist;`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty blacklist, got %d rows", n)
	}
}
