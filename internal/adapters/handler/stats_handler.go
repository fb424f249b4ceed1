package handler

import (
	"net/http"

	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

type StatsHandler struct {
	statsService ports.StatsService
}

func NewStatsHandler(stats ports.StatsService) *StatsHandler {
	return &StatsHandler{statsService: stats}
}

func (h *StatsHandler) PublicStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.PublicStats(r.Context())
	if err != nil {
		http.Error(w, "failed to fetch stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
