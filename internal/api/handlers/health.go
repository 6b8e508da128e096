package handlers

import (
	"context"
	"log/slog"
	"net/http"
)

// HealthHandler provides a liveness check. When Ping is set the backing
// store is checked too.
type HealthHandler struct {
	Ping func(ctx context.Context) error
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Ping != nil {
		if err := h.Ping(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", "err", err)
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}

	res := map[string]string{"status": "ok"}
	writeJSON(w, r, http.StatusOK, res)
}
