// Package server exposes the trading engine and the cross-traded-pairs
// workflow over a small JSON HTTP surface.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"trading_go/internal/domain"
	"trading_go/internal/infra"
	"trading_go/internal/service"
)

// Server is the HTTP boundary in front of the trader and reconciler.
type Server struct {
	trader     *service.Trader
	reconciler *service.Reconciler
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer wires the handlers onto a mux listening on addr.
func NewServer(addr string, trader *service.Trader, reconciler *service.Reconciler, logger *slog.Logger) *Server {
	s := &Server{
		trader:     trader,
		reconciler: reconciler,
		logger:     logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /quotes", s.handleQuotes)
	mux.HandleFunc("POST /trading/start", s.handleStart)
	mux.HandleFunc("POST /trading/stop", s.handleStop)
	mux.HandleFunc("GET /cross-pairs", s.handleCrossPairs)
	mux.HandleFunc("POST /cross-pairs/refresh", s.handleRefresh)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.trader.Status())
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.trader.MarketSnapshot())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := s.trader.Start(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": string(domain.StateRunning)})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if err := s.trader.Stop(); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": string(domain.StateHalted)})
}

func (s *Server) handleCrossPairs(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.reconciler.Latest(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if snapshot == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no snapshot computed yet"})
		return
	}
	writeJSON(w, http.StatusOK, snapshotPayload(*snapshot))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.reconciler.Refresh(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotPayload(snapshot))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, infra.GlobalMetrics.Snapshot())
}

// snapshotPayload renders the persisted wire shape:
// {"computedAt": ISO-8601 UTC, "pairs": ["BASE-QUOTE", ...]}.
func snapshotPayload(snapshot domain.CrossTradedPairsSnapshot) map[string]any {
	return map[string]any{
		"computedAt": snapshot.ComputedAt.UTC().Format(time.RFC3339),
		"pairs":      snapshot.PairKeys(),
	}
}

// writeError maps the domain error taxonomy onto response classes:
// validation -> 400, dependency -> 503, repository -> 500,
// state-machine conflicts -> 409.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	case domain.IsExternalDependency(err):
		status = http.StatusServiceUnavailable
	case domain.IsRepository(err):
		status = http.StatusInternalServerError
	case errors.Is(err, domain.ErrAlreadyRunning), errors.Is(err, domain.ErrNotRunning):
		status = http.StatusConflict
	}

	s.logger.Warn("request failed", slog.Int("status", status), slog.Any("error", err))
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
