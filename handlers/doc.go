// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the judgeboard API.

# Handler Types

Each handler is a struct holding its store, event and metrics dependencies:

  - RubricHandler: judges and scoring criteria
  - ParticipantHandler: roster management
  - ScoreHandler: score submission, listing and clearing
  - ResultsHandler: rankings, tie groups, winner, chart
  - ExportHandler: CSV and spreadsheet downloads

	scoreHandler := handlers.NewScoreHandler(store, event, metrics)

# Score Submission

POST /scores validates every criterion of the section's rubric, in rubric
order, and reports the first problem:

	Please enter score for "Presentation & Delivery".
	Score for "Presentation & Delivery" must be between 0 and 5.

Accepted sheets replace the judge's previous sheet for the same participant
and section. The response carries the stored record and the refreshed ranking
of that section.

# Results

Rankings are recomputed from a fresh snapshot on every request. When the
store cannot be read, results fall back to an empty score list or the
configured roster and include a warning instead of failing.

# Error Responses

All errors use the same JSON structure:

	{
	  "error": "Bad Request",
	  "message": "Score for \"Presentation Skills\" must be between 0 and 5."
	}

Common status codes:

  - 400: validation failed, unknown override
  - 401/403: admin password missing or wrong
  - 404: unknown participant or section, nothing to export
  - 409: participant id already exists
  - 428: clear-all without confirm=true
  - 500: database error
*/
package handlers
