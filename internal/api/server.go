// Package api exposes the fund model over HTTP: parameter defaults, model
// runs, stored run retrieval, spreadsheet export, and a WebSocket feed of
// completed runs.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"venture-fund-lab/internal/observability"
	"venture-fund-lab/internal/reporting"
	"venture-fund-lab/internal/storage"
)

// Server wires the engine, stores, and live feed behind an http.Handler.
type Server struct {
	runStore     storage.RunRecordStore
	outcomeStore storage.CompanyOutcomeStore
	generator    *reporting.Generator
	hub          *Hub
	logger       *log.Logger

	startedAt time.Time
	now       func() time.Time
}

// NewServer creates a Server. The hub is started by Run.
func NewServer(runStore storage.RunRecordStore, outcomeStore storage.CompanyOutcomeStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Writer(), "[api] ", log.LstdFlags)
	}
	return &Server{
		runStore:     runStore,
		outcomeStore: outcomeStore,
		generator:    reporting.NewGenerator(),
		hub:          NewHub(logger),
		logger:       logger,
		startedAt:    time.Now().UTC(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock, used by tests for deterministic records.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	s.generator = s.generator.WithClock(now)
	return s
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/model/parameters", s.handleGetParameters)
	mux.HandleFunc("POST /api/model/run", s.handleRunModel)
	mux.HandleFunc("GET /api/model/runs", s.handleListRuns)
	mux.HandleFunc("GET /api/model/runs/{id}", s.handleGetRun)
	mux.HandleFunc("POST /api/model/export", s.handleExport)

	mux.HandleFunc("GET /ws", s.handleWS)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.Handle("GET /metrics", observability.Handler())

	return mux
}

// Run starts the hub and serves HTTP until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	go s.hub.Run(ctx)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Printf("API listening on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
		"ws_clients":     s.hub.ClientCount(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing to do but log.
		log.Printf("write json response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}
