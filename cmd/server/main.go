// Package main runs the fund model API server: HTTP endpoints for parameter
// defaults, model runs, stored run retrieval and spreadsheet export, a
// WebSocket feed of completed runs, and a Prometheus metrics listener.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"venture-fund-lab/internal/api"
	"venture-fund-lab/internal/config"
	"venture-fund-lab/internal/observability"
	"venture-fund-lab/internal/storage"
	chstore "venture-fund-lab/internal/storage/clickhouse"
	"venture-fund-lab/internal/storage/memory"
	"venture-fund-lab/internal/storage/migrations"
	pgstore "venture-fund-lab/internal/storage/postgres"
)

// allStores holds the storage implementations the API uses.
type allStores struct {
	runRecordStore      storage.RunRecordStore
	companyOutcomeStore storage.CompanyOutcomeStore
}

func main() {
	// Load .env file if exists; system env vars take precedence.
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to YAML config file")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	stores, cleanup, err := createStores(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	server := api.NewServer(stores.runRecordStore, stores.companyOutcomeStore, logger)

	// Channel to signal completion
	done := make(chan error, 1)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	// Metrics listener on its own address
	go startMetricsServer(cfg.Server.MetricsAddr, logger)

	err = server.Run(ctx, cfg.Server.Addr)
	done <- err
	cancel()

	if err != nil && err != context.Canceled && err != http.ErrServerClosed {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates the run and outcome stores. Runs live in PostgreSQL,
// archived outcomes in ClickHouse, or both in memory when configured so.
func createStores(ctx context.Context, cfg config.Config) (*allStores, func(), error) {
	if cfg.Storage.UseMemory {
		stores := &allStores{
			runRecordStore:      memory.NewRunRecordStore(),
			companyOutcomeStore: memory.NewCompanyOutcomeStore(),
		}
		return stores, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, cfg.Storage.PostgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres migrations: %w", err)
	}

	chConn, err := migrations.RunClickhouseMigrations(ctx, cfg.Storage.ClickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
	}

	stores := &allStores{
		runRecordStore:      pgstore.NewRunRecordStore(pool),
		companyOutcomeStore: chstore.NewCompanyOutcomeStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// startMetricsServer serves Prometheus metrics and a liveness probe.
func startMetricsServer(addr string, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	logger.Printf("Metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Printf("Metrics server error: %v", err)
	}
}
