// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/judgeboard/cliparse"
	"github.com/danielhkuo/judgeboard/handlers"
	"github.com/danielhkuo/judgeboard/metrics"
	"github.com/danielhkuo/judgeboard/middleware"
	"github.com/danielhkuo/judgeboard/rubric"
	"github.com/danielhkuo/judgeboard/store"
)

func NewRouter(s store.Store, ev *rubric.Event, cfg cliparse.Config, m *metrics.Manager) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	rubricHandler := handlers.NewRubricHandler(ev)
	participantHandler := handlers.NewParticipantHandler(s, m)
	scoreHandler := handlers.NewScoreHandler(s, ev, m)
	resultsHandler := handlers.NewResultsHandler(s, ev, m)
	exportHandler := handlers.NewExportHandler(s, ev, cfg, m)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithMetrics(m, middleware.WithLogging(h)))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAdmin(cfg.AdminPassword, h)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	// Event configuration
	handle("GET /rubric", rubricHandler.GetRubric)

	// Participants
	handle("GET /participants", participantHandler.ListParticipants)
	handle("POST /participants", participantHandler.CreateParticipant)
	handle("PATCH /participants/{id}", participantHandler.UpdateParticipant)
	handle("DELETE /participants/{id}", admin(participantHandler.DeleteParticipant))
	handle("DELETE /participants/{id}/scores", admin(participantHandler.DeleteParticipantScores))

	// Scoring
	handle("GET /scores", scoreHandler.ListScores)
	handle("POST /scores", scoreHandler.SubmitScore)
	handle("DELETE /scores", admin(scoreHandler.ClearScores))

	// Results
	handle("GET /results", resultsHandler.GetResults)
	handle("GET /results/{section}", resultsHandler.GetSectionResults)
	handle("GET /results/{section}/chart", resultsHandler.GetSectionChart)

	// Exports
	handle("GET /export/scores.csv", exportHandler.ExportCSV)
	handle("GET /export/scores.xls", exportHandler.ExportSpreadsheet)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("judgeboard API v1"))
	})

	return mux
}
