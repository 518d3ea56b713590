// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/judgeboard/models"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicate   = errors.New("already exists")
	ErrEmptyFilter = errors.New("delete filter matches every record")
)

// ScoreFilter selects score records. Empty fields match anything.
type ScoreFilter struct {
	ParticipantID string
	Judge         string
	Section       models.Section
}

// Empty reports whether the filter would match every record.
func (f ScoreFilter) Empty() bool {
	return f.ParticipantID == "" && f.Judge == "" && f.Section == ""
}

// ParticipantUpdate carries the fields to change; nil fields are kept.
type ParticipantUpdate struct {
	Name  *string
	Title *string
}

// Store persists score records and participants.
type Store interface {
	// InsertScore adds a new record. It fails with ErrDuplicate when the
	// judge already scored the participant in that section.
	InsertScore(ctx context.Context, rec models.ScoreRecord) (models.ScoreRecord, error)
	// ReplaceScore stores rec as the only record for its
	// (participant, judge, section) in a single statement.
	ReplaceScore(ctx context.Context, rec models.ScoreRecord) (models.ScoreRecord, error)
	// ListScores returns every record, newest first.
	ListScores(ctx context.Context) ([]models.ScoreRecord, error)
	DeleteScores(ctx context.Context, f ScoreFilter) (int64, error)
	DeleteAllScores(ctx context.Context) (int64, error)

	// ListParticipants returns every participant ordered by id.
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	InsertParticipant(ctx context.Context, p models.Participant) error
	UpdateParticipant(ctx context.Context, id string, u ParticipantUpdate) (models.Participant, error)
	DeleteParticipant(ctx context.Context, id string) error
	// SeedParticipants inserts the participants that do not exist yet and
	// returns how many were added.
	SeedParticipants(ctx context.Context, ps []models.Participant) (int64, error)
}
