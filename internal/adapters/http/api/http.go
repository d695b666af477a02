// Package api declares the operational HTTP endpoints: health/metrics and
// dataset statistics. The MCP transport has its own server; these routes
// exist for probes and scrapers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/unirank/unirank/internal/adapters/repository"
)

// StatsProvider exposes the dataset counters the stats endpoint reports.
type StatsProvider interface {
	Stats(ctx context.Context) repository.Stats
	Years(ctx context.Context) []int
}

// Server wires the operational HTTP routes.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
}

// NewServer creates an API server over the given stats provider.
func NewServer(provider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(provider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
