// Package api declares the operational HTTP endpoints.
package api

import (
	"net/http"

	"github.com/unirank/unirank/internal/adapters/repository"
)

// StatsHandler handles stats requests.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

type statsResponse struct {
	Dataset repository.Stats `json:"dataset"`
	Years   []int            `json:"years"`
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Dataset: h.provider.Stats(r.Context()),
		Years:   h.provider.Years(r.Context()),
	})
}
