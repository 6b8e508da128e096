package handlers

import (
	"kill-chain-service/internal/api/dto"
	"kill-chain-service/internal/ports"
	"log/slog"
	"net/http"
)

// MissionHandler exposes read-only mission retrieval endpoints.
type MissionHandler struct {
	Repo ports.RecordRepository
}

func (h *MissionHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	missions, err := h.Repo.ListMissions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list missions failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListMissionsResponse{
		Missions: make([]dto.MissionResponse, 0, len(missions)),
	}
	for _, m := range missions {
		res.Missions = append(res.Missions, dto.MissionResponse{
			TargetName:             m.TargetName,
			Category:               m.Category.String(),
			TargetType:             m.TargetType,
			TargetLatitude:         m.TargetLatitudeDMS,
			TargetLongitude:        m.TargetLongitudeDMS,
			TargetSpeed:            m.TargetSpeed,
			TargetAltitude:         m.TargetAltitude,
			TargetDestructionValue: m.TargetDestructionValue,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
