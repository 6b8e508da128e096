package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"kill-chain-service/internal/adapters/records"
	"kill-chain-service/internal/api/dto"
	"kill-chain-service/internal/domain"
	"kill-chain-service/internal/ports"
	"kill-chain-service/internal/services"
	"log/slog"
	"net/http"
)

const maxAssignBody = 8 << 20

type AssignmentHandler struct {
	Repo    ports.RecordRepository
	Store   ports.AssignmentStore
	Options services.AssignOptions
}

// Handle serves GET (latest stored run) and POST (new run) on one path.
func (h *AssignmentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.assign(w, r)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *AssignmentHandler) list(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.ListAssignments(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list assignments failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListAssignmentsResponse{Assignments: make([]dto.AssignmentResponse, 0, len(rows))}
	for _, a := range rows {
		res.Assignments = append(res.Assignments, assignmentResponse(a))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// assign evaluates the posted records, or the stored ones when the body is
// empty, and persists the result.
func (h *AssignmentHandler) assign(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAssignBody))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	var in *services.AssignInput
	var warnings []string
	if !req.Empty() {
		recs, err := records.Build(&records.Document{Sections: []records.Section{
			records.NewSection(records.SectionMissions, req.Missions),
			records.NewSection(domain.CategoryReconnaissance.String(), req.Reconnaissance),
			records.NewSection(domain.CategoryStrike.String(), req.Strike),
		}})
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		for _, warn := range recs.Warnings {
			warnings = append(warnings, warn.Error())
		}
		input := recs.Input()
		in = &input
	}

	res, err := services.RunAssignments(r.Context(), in, h.Repo, h.Store, h.Options)
	if err != nil {
		slog.ErrorContext(r.Context(), "run assignments failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	out := dto.AssignResponse{
		Assignments: make([]dto.AssignmentResponse, 0, len(res.Chains)),
		Warnings:    warnings,
	}
	for _, warn := range res.Warnings {
		out.Warnings = append(out.Warnings, warn.Error())
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}

	for _, a := range res.Assignments() {
		out.Assignments = append(out.Assignments, assignmentResponse(a))
		switch a.Status {
		case domain.StatusResolved:
			out.Stats.Resolved++
		case domain.StatusUnresolved:
			out.Stats.Unresolved++
		case domain.StatusFailed:
			out.Stats.Failed++
		}
	}
	out.Stats.Missions = len(res.Chains)
	out.Stats.DistancesComputed, out.Stats.DistancesReused = res.Distances.Stats()

	writeJSON(w, r, http.StatusOK, out)
}
