// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/judgeboard/models"
)

// Warnings attached to a degraded snapshot.
const (
	WarnScoresUnavailable       = "Could not load scores; showing none."
	WarnParticipantsUnavailable = "Could not load participants; using the event roster."
)

// LoadSnapshot reads scores and participants concurrently. A failed read
// does not fail the snapshot: scores fall back to empty, participants to
// fallback, and a warning describing the gap is returned.
func LoadSnapshot(ctx context.Context, s Store, fallback []models.Participant) (models.Snapshot, []string) {
	var (
		snap                models.Snapshot
		scoresErr, partsErr error
		// no shared context: one failed read must not cancel the other
		g errgroup.Group
	)

	g.Go(func() error {
		snap.Scores, scoresErr = s.ListScores(ctx)
		if scoresErr != nil {
			return fmt.Errorf("list scores: %w", scoresErr)
		}
		return nil
	})
	g.Go(func() error {
		snap.Participants, partsErr = s.ListParticipants(ctx)
		if partsErr != nil {
			return fmt.Errorf("list participants: %w", partsErr)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Warn("snapshot degraded", "error", err)
	}

	var warnings []string
	if scoresErr != nil {
		snap.Scores = []models.ScoreRecord{}
		warnings = append(warnings, WarnScoresUnavailable)
	}
	if partsErr != nil {
		snap.Participants = append([]models.Participant(nil), fallback...)
		warnings = append(warnings, WarnParticipantsUnavailable)
	}
	return snap, warnings
}
