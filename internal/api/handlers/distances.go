package handlers

import (
	"kill-chain-service/internal/api/dto"
	"kill-chain-service/internal/ports"
	"log/slog"
	"net/http"
	"slices"
	"strings"
)

// DistanceHandler serves the platform distances saved by the last run.
type DistanceHandler struct {
	Store ports.AssignmentStore
}

// List handles GET /distances?target=<name>. Platforms are sorted by name.
func (h *DistanceHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	target := strings.TrimSpace(r.URL.Query().Get("target"))
	if target == "" {
		writeError(w, r, http.StatusBadRequest, "target query parameter is required")
		return
	}

	byPlatform, err := h.Store.DistancesTo(r.Context(), target)
	if err != nil {
		slog.ErrorContext(r.Context(), "list distances failed", "target", target, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDistancesResponse{
		Target:    target,
		Distances: make([]dto.DistanceResponse, 0, len(byPlatform)),
	}
	for platform, nm := range byPlatform {
		res.Distances = append(res.Distances, dto.DistanceResponse{Platform: platform, NauticalMiles: nm})
	}
	slices.SortFunc(res.Distances, func(a, b dto.DistanceResponse) int {
		return strings.Compare(a.Platform, b.Platform)
	})

	writeJSON(w, r, http.StatusOK, res)
}
