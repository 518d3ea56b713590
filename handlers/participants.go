// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/judgeboard/metrics"
	"github.com/danielhkuo/judgeboard/middleware"
	"github.com/danielhkuo/judgeboard/models"
	"github.com/danielhkuo/judgeboard/store"
)

type ParticipantHandler struct {
	store   store.Store
	metrics *metrics.Manager
}

func NewParticipantHandler(s store.Store, m *metrics.Manager) *ParticipantHandler {
	return &ParticipantHandler{store: s, metrics: m}
}

// ListParticipants handles GET /participants
func (h *ParticipantHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.store.ListParticipants(r.Context())
	if err != nil {
		slog.Error("failed to list participants", "error", err)
		h.metrics.StoreError("list_participants")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load participants")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, participants)
}

// CreateParticipant handles POST /participants
func (h *ParticipantHandler) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	var req models.CreateParticipantRequest
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	p := models.Participant{ID: req.ID, Name: req.Name, Title: req.Title}
	err := h.store.InsertParticipant(r.Context(), p)
	if errors.Is(err, store.ErrDuplicate) {
		middleware.ErrorResponse(w, http.StatusConflict, fmt.Sprintf("Participant %s already exists", req.ID))
		return
	}
	if err != nil {
		slog.Error("failed to insert participant", "error", err, "participant_id", req.ID)
		h.metrics.StoreError("insert_participant")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create participant")
		return
	}

	slog.Info("participant created", "participant_id", p.ID)
	middleware.JSONResponse(w, http.StatusCreated, p)
}

// UpdateParticipant handles PATCH /participants/{id}
func (h *ParticipantHandler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.UpdateParticipantRequest
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.store.UpdateParticipant(r.Context(), id, store.ParticipantUpdate{Name: req.Name, Title: req.Title})
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found")
		return
	}
	if err != nil {
		slog.Error("failed to update participant", "error", err, "participant_id", id)
		h.metrics.StoreError("update_participant")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update participant")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, p)
}

// DeleteParticipant handles DELETE /participants/{id} (admin)
// Score records of the participant are kept and export as "Unknown".
func (h *ParticipantHandler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.store.DeleteParticipant(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete participant", "error", err, "participant_id", id)
		h.metrics.StoreError("delete_participant")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete participant")
		return
	}

	slog.Info("participant deleted", "participant_id", id, "remote", middleware.GetClientIP(r))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteParticipantScores handles DELETE /participants/{id}/scores (admin)
// Optional judge and section query parameters narrow the deletion.
func (h *ParticipantHandler) DeleteParticipantScores(w http.ResponseWriter, r *http.Request) {
	filter := store.ScoreFilter{
		ParticipantID: r.PathValue("id"),
		Judge:         r.URL.Query().Get("judge"),
	}
	if s := r.URL.Query().Get("section"); s != "" {
		section, err := models.ParseSection(s)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown section %q", s))
			return
		}
		filter.Section = section
	}

	n, err := h.store.DeleteScores(r.Context(), filter)
	if err != nil {
		slog.Error("failed to delete scores", "error", err, "participant_id", filter.ParticipantID)
		h.metrics.StoreError("delete_scores")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete scores")
		return
	}
	h.metrics.ScoresDeleted(n)

	slog.Info("participant scores deleted",
		"participant_id", filter.ParticipantID,
		"judge", filter.Judge,
		"section", filter.Section,
		"deleted", n,
	)
	middleware.JSONResponse(w, http.StatusOK, models.DeleteScoresResponse{
		Deleted: n,
		Message: fmt.Sprintf("Deleted %d score record(s).", n),
	})
}
