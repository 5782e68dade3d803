package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	// DB
	Env    string // "dev" | "prod"
	Store  string // "memory" | "sqlite"
	DBPath string // e.g. "./data/janus.db"

	// Bounded history views
	HistoryLimit int // pass snapshots kept/shown, default 10
	AuditLimit   int // audit entries shown, default 10

	// Audit retention (sqlite store only)
	AuditRetentionDays int // 0 = keep forever
	PruneIntervalHours int // how often the pruner runs (default 6)

	// External QR endpoint
	QREndpoint string
	QRSize     int

	// Whether a blacklisted phone number blocks pass issuance.
	EnforceBlacklist bool
}

func FromEnv() Config {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	addr := getenvDefault("JANUS_HTTP_ADDR", ":8080")

	env := strings.ToLower(getenvDefault("JANUS_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	st := strings.ToLower(getenvDefault("JANUS_STORE", "memory"))
	if st != "memory" && st != "sqlite" {
		st = "memory"
	}

	enforce := strings.EqualFold(os.Getenv("JANUS_ENFORCE_BLACKLIST"), "true") ||
		os.Getenv("JANUS_ENFORCE_BLACKLIST") == "1"

	return Config{
		HTTPAddr: addr,
		Env:      env,
		Store:    st,
		DBPath:   getenvDefault("JANUS_DB_PATH", "./data/janus.db"),

		HistoryLimit: getenvInt("JANUS_HISTORY_LIMIT", 10),
		AuditLimit:   getenvInt("JANUS_AUDIT_LIMIT", 10),

		AuditRetentionDays: getenvInt("JANUS_AUDIT_RETENTION_DAYS", 30),
		PruneIntervalHours: getenvInt("JANUS_PRUNE_INTERVAL_HOURS", 6),

		QREndpoint: getenvDefault("JANUS_QR_ENDPOINT", ""),
		QRSize:     getenvInt("JANUS_QR_SIZE", 200),

		EnforceBlacklist: enforce,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
