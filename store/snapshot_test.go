// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/judgeboard/models"
	"github.com/danielhkuo/judgeboard/store"
	"github.com/danielhkuo/judgeboard/testutil"
)

// brokenStore fails the reads it is told to fail.
type brokenStore struct {
	store.Store
	scores, participants bool
}

var errDown = errors.New("database is down")

func (b brokenStore) ListScores(ctx context.Context) ([]models.ScoreRecord, error) {
	if b.scores {
		return nil, errDown
	}
	return b.Store.ListScores(ctx)
}

func (b brokenStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	if b.participants {
		return nil, errDown
	}
	return b.Store.ListParticipants(ctx)
}

func TestLoadSnapshot(t *testing.T) {
	_, s := testutil.SetupTestStore(t)
	ev := testutil.TestEvent(t)
	testutil.SeedParticipants(t, s, ev)
	testutil.AddTestScore(t, s, "P01", "J1", models.SectionBestPaper, testutil.FullSheet(t, ev, models.SectionBestPaper, 4), t0)

	snap, warnings := store.LoadSnapshot(context.Background(), s, nil)
	assert.Empty(t, warnings)
	assert.Len(t, snap.Scores, 1)
	assert.Len(t, snap.Participants, len(ev.Participants))
}

func TestLoadSnapshot_Degraded(t *testing.T) {
	_, s := testutil.SetupTestStore(t)
	ev := testutil.TestEvent(t)
	testutil.AddTestScore(t, s, "P01", "J1", models.SectionBestPaper, testutil.FullSheet(t, ev, models.SectionBestPaper, 4), t0)

	fallback := []models.Participant{{ID: "P01", Name: "Fallback"}}

	snap, warnings := store.LoadSnapshot(context.Background(), brokenStore{Store: s, participants: true}, fallback)
	assert.Equal(t, []string{store.WarnParticipantsUnavailable}, warnings)
	assert.Equal(t, fallback, snap.Participants)
	assert.Len(t, snap.Scores, 1)

	snap, warnings = store.LoadSnapshot(context.Background(), brokenStore{Store: s, scores: true, participants: true}, fallback)
	require.Len(t, warnings, 2)
	assert.NotNil(t, snap.Scores)
	assert.Empty(t, snap.Scores)
}

func TestLoadSnapshot_OneFailedReadKeepsTheOther(t *testing.T) {
	_, s := testutil.SetupTestStore(t)
	ev := testutil.TestEvent(t)
	testutil.SeedParticipants(t, s, ev)

	snap, warnings := store.LoadSnapshot(context.Background(), brokenStore{Store: s, scores: true}, nil)
	assert.Equal(t, []string{store.WarnScoresUnavailable}, warnings)
	assert.Empty(t, snap.Scores)
	assert.Len(t, snap.Participants, len(ev.Participants))
}
