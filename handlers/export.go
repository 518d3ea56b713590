// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/danielhkuo/judgeboard/cliparse"
	"github.com/danielhkuo/judgeboard/export"
	"github.com/danielhkuo/judgeboard/metrics"
	"github.com/danielhkuo/judgeboard/middleware"
	"github.com/danielhkuo/judgeboard/models"
	"github.com/danielhkuo/judgeboard/rubric"
	"github.com/danielhkuo/judgeboard/scoring"
	"github.com/danielhkuo/judgeboard/store"
)

type ExportHandler struct {
	store   store.Store
	ev      *rubric.Event
	loc     *time.Location
	metrics *metrics.Manager
	now     func() time.Time
}

func NewExportHandler(s store.Store, ev *rubric.Event, cfg cliparse.Config, m *metrics.Manager) *ExportHandler {
	return &ExportHandler{store: s, ev: ev, loc: cfg.ExportLocation(), metrics: m, now: time.Now}
}

// input loads the snapshot to export. It writes the error response and
// returns false when there is nothing to export.
func (h *ExportHandler) input(w http.ResponseWriter, r *http.Request) (export.Input, bool) {
	snap, warnings := store.LoadSnapshot(r.Context(), h.store, h.ev.Participants)
	if slices.Contains(warnings, store.WarnScoresUnavailable) {
		h.metrics.StoreError("load_snapshot")
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Could not load scores. Please try again.")
		return export.Input{}, false
	}
	if len(snap.Scores) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "No scores to export.")
		return export.Input{}, false
	}
	return export.Input{Snapshot: snap, Event: h.ev, Location: h.loc}, true
}

func (h *ExportHandler) send(w http.ResponseWriter, contentType, ext string, body []byte) {
	name := export.FileName(h.ev.ExportPrefix, h.now().In(h.loc), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
	h.metrics.ExportServed(ext)
	slog.Info("export served", "format", ext, "file", name, "bytes", len(body))
}

// ExportCSV handles GET /export/scores.csv
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	in, ok := h.input(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, in); err != nil {
		slog.Error("failed to write csv", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build export")
		return
	}
	h.send(w, "text/csv; charset=utf-8", "csv", buf.Bytes())
}

// ExportSpreadsheet handles GET /export/scores.xls
// ?rankings=false leaves out the per-section ranking tables.
func (h *ExportHandler) ExportSpreadsheet(w http.ResponseWriter, r *http.Request) {
	withRankings := true
	if v := r.URL.Query().Get("rankings"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "rankings must be true or false")
			return
		}
		withRankings = b
	}

	in, ok := h.input(w, r)
	if !ok {
		return
	}

	var standings []models.SectionResults
	if withRankings {
		standings = scoring.Standings(in.Snapshot, h.ev)
	}

	var buf bytes.Buffer
	if err := export.WriteSpreadsheet(&buf, in, standings); err != nil {
		slog.Error("failed to write spreadsheet", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build export")
		return
	}
	h.send(w, "application/vnd.ms-excel", "xls", buf.Bytes())
}
