// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/judgeboard/metrics"
	"github.com/danielhkuo/judgeboard/middleware"
	"github.com/danielhkuo/judgeboard/models"
	"github.com/danielhkuo/judgeboard/rubric"
	"github.com/danielhkuo/judgeboard/scoring"
	"github.com/danielhkuo/judgeboard/store"
)

type ScoreHandler struct {
	store   store.Store
	ev      *rubric.Event
	metrics *metrics.Manager
}

func NewScoreHandler(s store.Store, ev *rubric.Event, m *metrics.Manager) *ScoreHandler {
	return &ScoreHandler{store: s, ev: ev, metrics: m}
}

// ListScores handles GET /scores
// Returns every score record, newest first.
func (h *ScoreHandler) ListScores(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListScores(r.Context())
	if err != nil {
		slog.Error("failed to list scores", "error", err)
		h.metrics.StoreError("list_scores")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load scores")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, records)
}

// SubmitScore handles POST /scores
// Validates the sheet against the section's rubric and replaces any earlier
// sheet from the same judge for that participant and section.
func (h *ScoreHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitScoreRequest
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	section, err := models.ParseSection(req.Section)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Please select a valid section.")
		return
	}
	rb, ok := h.ev.Rubric(section)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Please select a valid section.")
		return
	}

	raw := make(map[string]string, len(req.Scores))
	for id, v := range req.Scores {
		raw[id] = string(v)
	}

	sheet, err := scoring.Validate(rb, raw)
	if err != nil {
		var verr *scoring.ValidationError
		if errors.As(err, &verr) {
			h.metrics.ValidationFailed(verr.Kind())
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.store.ReplaceScore(r.Context(), models.ScoreRecord{
		ParticipantID: req.ParticipantID,
		Judge:         req.Judge,
		Section:       section,
		Scores:        sheet.Scores,
		Total:         sheet.Total,
		Remark:        req.Remark,
	})
	if err != nil {
		slog.Error("failed to store score", "error", err,
			"participant_id", req.ParticipantID, "judge", req.Judge, "section", section)
		h.metrics.StoreError("replace_score")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error submitting scores. Please try again.")
		return
	}
	h.metrics.ScoreSubmitted(string(section))

	slog.Info("score submitted",
		"participant_id", rec.ParticipantID,
		"judge", rec.Judge,
		"section", rec.Section,
		"total", rec.Total,
	)

	// refreshed ranking for the section the judge just scored
	snap, _ := store.LoadSnapshot(r.Context(), h.store, h.ev.Participants)
	rankings := scoring.Aggregate(snap, section)
	h.metrics.SetRankedParticipants(string(section), len(rankings))

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitScoreResponse{
		Record:   rec,
		Message:  "Scores submitted successfully!",
		Rankings: rankings,
	})
}

// ClearScores handles DELETE /scores (admin)
// Requires confirm=true so a stray request cannot wipe the event.
func (h *ScoreHandler) ClearScores(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		middleware.ErrorResponse(w, http.StatusPreconditionRequired, "Add confirm=true to delete every score.")
		return
	}

	n, err := h.store.DeleteAllScores(r.Context())
	if err != nil {
		slog.Error("failed to clear scores", "error", err)
		h.metrics.StoreError("delete_all_scores")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error clearing scores. Please try again.")
		return
	}
	h.metrics.ScoresDeleted(n)

	slog.Warn("all scores cleared", "deleted", n, "remote", middleware.GetClientIP(r))
	middleware.JSONResponse(w, http.StatusOK, models.DeleteScoresResponse{
		Deleted: n,
		Message: "All scores have been cleared successfully.",
	})
}
