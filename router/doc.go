// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the judgeboard API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, event, cfg, metrics)

Every API route is wrapped with request logging and Prometheus metrics.

# Endpoints

Health and monitoring:

	GET /health
	GET /metrics

Event:

	GET /rubric - Judges and scoring criteria per section

Participants:

	GET    /participants             - List, ordered by id
	POST   /participants             - Add a participant
	PATCH  /participants/{id}        - Edit name or title
	DELETE /participants/{id}        - Remove (admin)
	DELETE /participants/{id}/scores - Remove their scores, optionally ?judge= and ?section= (admin)

Scores:

	GET    /scores              - Every record, newest first
	POST   /scores              - Submit or resubmit a score sheet
	DELETE /scores?confirm=true - Clear all scores (admin)

Results:

	GET /results                   - Rankings for both sections
	GET /results/{section}         - One section, ?first= picks among tied leaders
	GET /results/{section}/chart   - Bar chart of averages (HTML)

Exports:

	GET /export/scores.csv
	GET /export/scores.xls - ?rankings=false omits ranking tables

Admin routes require the X-Admin-Password header.
*/
package router
