package handlers

import (
	"encoding/json"
	"kill-chain-service/internal/api/dto"
	"kill-chain-service/internal/domain"
	"log/slog"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func assignmentResponse(a domain.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		Mission:        a.MissionName,
		Reconnaissance: a.ReconLabel,
		Controller:     a.ControllerLabel,
		Strike:         a.StrikeLabel,
		Score:          a.Score,
		Status:         string(a.Status),
		Reason:         a.Reason,
	}
}
