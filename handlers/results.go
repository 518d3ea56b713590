// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/danielhkuo/judgeboard/metrics"
	"github.com/danielhkuo/judgeboard/middleware"
	"github.com/danielhkuo/judgeboard/models"
	"github.com/danielhkuo/judgeboard/rubric"
	"github.com/danielhkuo/judgeboard/scoring"
	"github.com/danielhkuo/judgeboard/store"
)

type ResultsHandler struct {
	store   store.Store
	ev      *rubric.Event
	metrics *metrics.Manager
}

func NewResultsHandler(s store.Store, ev *rubric.Event, m *metrics.Manager) *ResultsHandler {
	return &ResultsHandler{store: s, ev: ev, metrics: m}
}

// GetResults handles GET /results
// Rankings, tie groups and winner for every section. Store failures degrade
// to partial data and are reported in warnings.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	snap, warnings := store.LoadSnapshot(r.Context(), h.store, h.ev.Participants)
	if len(warnings) > 0 {
		h.metrics.StoreError("load_snapshot")
	}

	sections := scoring.Standings(snap, h.ev)
	for _, s := range sections {
		h.metrics.SetRankedParticipants(string(s.Section), len(s.Rankings))
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Event:    h.ev.Name,
		Sections: sections,
		Warnings: warnings,
	})
}

// section resolves the {section} path value to its rubric.
func (h *ResultsHandler) section(w http.ResponseWriter, r *http.Request) (rubric.Rubric, bool) {
	s, err := models.ParseSection(r.PathValue("section"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("Unknown section %q", r.PathValue("section")))
		return rubric.Rubric{}, false
	}
	rb, ok := h.ev.Rubric(s)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("Unknown section %q", r.PathValue("section")))
		return rubric.Rubric{}, false
	}
	return rb, true
}

// GetSectionResults handles GET /results/{section}
// ?first=<participant id> shows a tied participant in first place without
// changing the computed ranking.
func (h *ResultsHandler) GetSectionResults(w http.ResponseWriter, r *http.Request) {
	rb, ok := h.section(w, r)
	if !ok {
		return
	}

	snap, warnings := store.LoadSnapshot(r.Context(), h.store, h.ev.Participants)
	if len(warnings) > 0 {
		h.metrics.StoreError("load_snapshot")
	}

	res, err := scoring.SectionResults(snap, rb, r.URL.Query().Get("first"))
	switch {
	case errors.Is(err, scoring.ErrOverrideUnknown), errors.Is(err, scoring.ErrOverrideNotTied):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to compute section results", "error", err, "section", rb.Section)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}
	h.metrics.SetRankedParticipants(string(rb.Section), len(res.Rankings))

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Event:    h.ev.Name,
		Sections: []models.SectionResults{res},
		Warnings: warnings,
	})
}

// GetSectionChart handles GET /results/{section}/chart
// Renders an HTML bar chart of average scores in ranking order.
func (h *ResultsHandler) GetSectionChart(w http.ResponseWriter, r *http.Request) {
	rb, ok := h.section(w, r)
	if !ok {
		return
	}

	snap, _ := store.LoadSnapshot(r.Context(), h.store, h.ev.Participants)
	rows := scoring.Aggregate(snap, rb.Section)

	names := make([]string, 0, len(rows))
	avgs := make([]opts.BarData, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Participant.Name)
		avgs = append(avgs, opts.BarData{
			Name:  row.Participant.ID,
			Value: fmt.Sprintf("%.2f", row.AvgScore),
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: h.ev.Name + " " + string(rb.Section), Width: "100%", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{Title: string(rb.Section), Subtitle: fmt.Sprintf("%s, %d ranked", h.ev.Name, len(rows))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Average", Min: 0, Max: rb.MaxTotal()}),
	)
	bar.SetXAxis(names).
		AddSeries("Average score", avgs,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		slog.Error("failed to render chart", "error", err, "section", rb.Section)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
