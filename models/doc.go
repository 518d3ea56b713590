// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitScoreRequest: judge, participant_id, section, scores, remark
  - CreateParticipantRequest: id, name, title
  - UpdateParticipantRequest: name, title (both optional)

Score values use RawScore so that judges may send either 4.5 or "4.5".

# Response Types

  - SubmitScoreResponse: stored record plus the refreshed section ranking
  - ResultsResponse / SectionResults: rankings, tie groups, winner
  - EventResponse: judges and rubrics
  - ErrorResponse: error, message

# Domain Types

  - Participant: id, name, paper title
  - ScoreRecord: one judge's rubric scores for one participant in one section
  - Snapshot: everything the ranking engine reads
  - RankingRow, TieGroup, Winner: ranking engine output

# Sections

	SectionBestPaper       = "Best Paper"        (slug best-paper)
	SectionYoungResearcher = "Young Researcher"  (slug young-researcher)
*/
package models
