package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AveryLClark/janus/internal/config"
	"github.com/AveryLClark/janus/internal/db"
	"github.com/AveryLClark/janus/internal/httpapi"
	"github.com/AveryLClark/janus/internal/janus/service"
	janusstore "github.com/AveryLClark/janus/internal/janus/store"
	"github.com/AveryLClark/janus/internal/janus/store/memory"
	"github.com/AveryLClark/janus/internal/janus/store/sqlite"
	"github.com/AveryLClark/janus/internal/metrics"
	"github.com/AveryLClark/janus/internal/qr"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "janus-server ", log.LstdFlags|log.LUTC)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	// Stores
	var (
		passStore      janusstore.PassStore
		auditStore     janusstore.AuditStore
		blacklistStore janusstore.BlacklistStore
	)

	if cfg.Store == "sqlite" {
		sqlDB, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
		if err != nil {
			logger.Fatalf("open db: %v", err)
		}
		defer sqlDB.Close()

		writer := db.NewWorker(sqlDB)
		defer writer.Close()

		if cfg.Env == "dev" {
			if err := db.SeedDev(ctx, sqlDB, db.SeedDevOptions{
				BlacklistName:   "Sample Blocked Visitor",
				BlacklistPhone:  "0000000000",
				BlacklistReason: "dev seed",
			}); err != nil {
				logger.Printf("seed dev: %v", err)
			}
		}

		passStore = sqlite.NewPassStore(sqlDB, writer, cfg.HistoryLimit)
		auditStore = sqlite.NewAuditStore(sqlDB, writer, cfg.AuditLimit)
		blacklistStore = sqlite.NewBlacklistStore(sqlDB, writer)
	} else {
		passStore = memory.NewPassStore(cfg.HistoryLimit)
		auditStore = memory.NewAuditStore(cfg.AuditLimit)
		blacklistStore = memory.NewBlacklistStore()
	}

	// Services
	passSvc := service.NewPassService(passStore, auditStore, blacklistStore, service.PassPolicy{
		EnforceBlacklist: cfg.EnforceBlacklist,
	}, m, logger)
	defer passSvc.Close()

	blacklistSvc := service.NewBlacklistService(ctx, blacklistStore, m, logger)

	// Audit retention only matters for the unbounded sqlite store.
	if cfg.Store == "sqlite" {
		pruner := service.NewAuditPruner(auditStore, service.PrunerConfig{
			RetentionDays: cfg.AuditRetentionDays,
			IntervalHours: cfg.PruneIntervalHours,
		}, logger)
		pruner.Start(ctx)
		defer pruner.Stop()
	}

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:           logger,
		Addr:             cfg.HTTPAddr,
		PassService:      passSvc,
		BlacklistService: blacklistSvc,
		QREncoder:        qr.NewEncoder(cfg.QREndpoint, cfg.QRSize),
		MetricsRegistry:  registry,
	})

	go func() {
		logger.Printf("listening on %s (store=%s)", cfg.HTTPAddr, cfg.Store)
		if err := srv.Start(); err != nil {
			logger.Printf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
