package api

import (
	"context"
	"kill-chain-service/internal/api/handlers"
	"kill-chain-service/internal/ports"
	"kill-chain-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// metrics and ping may be nil.
func NewRouter(
	repo ports.RecordRepository,
	store ports.AssignmentStore,
	opts services.AssignOptions,
	metrics http.Handler,
	ping func(ctx context.Context) error,
) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Ping: ping}
	missionHandler := &handlers.MissionHandler{Repo: repo}
	assignmentHandler := &handlers.AssignmentHandler{
		Repo:    repo,
		Store:   store,
		Options: opts,
	}
	distanceHandler := &handlers.DistanceHandler{Store: store}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/missions", missionHandler.List)
	mux.HandleFunc("/assignments", assignmentHandler.Handle)
	mux.HandleFunc("/distances", distanceHandler.List)
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}

	return loggingMiddleware(mux)
}
