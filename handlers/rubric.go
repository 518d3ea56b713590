// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/judgeboard/middleware"
	"github.com/danielhkuo/judgeboard/models"
	"github.com/danielhkuo/judgeboard/rubric"
)

type RubricHandler struct {
	ev *rubric.Event
}

func NewRubricHandler(ev *rubric.Event) *RubricHandler {
	return &RubricHandler{ev: ev}
}

// GetRubric handles GET /rubric
// Returns the event name, the judge list and every section's criteria.
func (h *RubricHandler) GetRubric(w http.ResponseWriter, r *http.Request) {
	resp := models.EventResponse{
		Event:   h.ev.Name,
		Judges:  append([]string{}, h.ev.Judges...),
		Rubrics: make([]models.RubricView, 0, len(h.ev.Sections)),
	}

	for _, rb := range h.ev.Rubrics() {
		view := models.RubricView{
			Section:  rb.Section,
			Slug:     rb.Section.Slug(),
			MaxTotal: rb.MaxTotal(),
			Criteria: make([]models.CriterionView, 0, len(rb.Criteria)),
		}
		for _, c := range rb.Criteria {
			view.Criteria = append(view.Criteria, models.CriterionView{
				ID:          c.ID,
				Label:       c.Label,
				Description: c.Description,
				Max:         c.Max,
			})
		}
		resp.Rubrics = append(resp.Rubrics, view)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
