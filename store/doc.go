// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists score records and participants.

Store is the interface the HTTP layer depends on; SQLStore implements it for
sqlite and postgres with queries built by squirrel.

# Score Records

A judge holds at most one record per participant and section. ReplaceScore
overwrites that record with a single INSERT ... ON CONFLICT DO UPDATE, so two
concurrent resubmissions can never leave a gap or a duplicate.

ListScores returns records newest first (created_at, then id, descending).

DeleteScores refuses an empty ScoreFilter; clearing everything goes through
DeleteAllScores.

# Participants

SeedParticipants inserts the configured roster at startup and leaves existing
rows untouched. Deleting a participant keeps its score records.

# Snapshots

LoadSnapshot reads both collections in parallel and degrades instead of
failing, returning warnings for any part it had to substitute.
*/
package store
