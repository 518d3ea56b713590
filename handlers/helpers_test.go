// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/judgeboard/cliparse"
	"github.com/danielhkuo/judgeboard/metrics"
	"github.com/danielhkuo/judgeboard/models"
	"github.com/danielhkuo/judgeboard/rubric"
	"github.com/danielhkuo/judgeboard/store"
	"github.com/danielhkuo/judgeboard/testutil"
)

var testTime = time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store   *store.SQLStore
	ev      *rubric.Event
	cfg     cliparse.Config
	metrics *metrics.Manager
}

// newFixture returns a seeded store and the default event.
func newFixture(t *testing.T) fixture {
	t.Helper()
	_, s := testutil.SetupTestStore(t)
	ev := testutil.TestEvent(t)
	testutil.SeedParticipants(t, s, ev)
	return fixture{store: s, ev: ev, cfg: testutil.GetTestConfig(), metrics: metrics.NewManager()}
}

// sheet builds a submission body with every criterion set to value.
func (f fixture) sheet(t *testing.T, pid, judge string, section models.Section, value any) map[string]any {
	t.Helper()
	rb, ok := f.ev.Rubric(section)
	if !ok {
		t.Fatalf("No rubric for %s", section)
	}
	scores := make(map[string]any, len(rb.Criteria))
	for _, c := range rb.Criteria {
		scores[c.ID] = value
	}
	return map[string]any{
		"judge":          judge,
		"participant_id": pid,
		"section":        string(section),
		"scores":         scores,
	}
}

// addScore stores a full sheet with every criterion at value.
func (f fixture) addScore(t *testing.T, pid, judge string, section models.Section, value float64, at time.Time) {
	t.Helper()
	testutil.AddTestScore(t, f.store, pid, judge, section, testutil.FullSheet(t, f.ev, section, value), at)
}

var errDown = errors.New("database is down")

// brokenStore fails the reads it is told to fail.
type brokenStore struct {
	store.Store
	scores, participants bool
}

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
