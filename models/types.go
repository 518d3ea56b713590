// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Section is one of the two award categories a participant is judged under.
type Section string

// Section constants
const (
	SectionBestPaper       Section = "Best Paper"
	SectionYoungResearcher Section = "Young Researcher"
)

// Sections lists every section in display order.
var Sections = []Section{SectionBestPaper, SectionYoungResearcher}

var ErrUnknownSection = errors.New("unknown section")

// ParseSection accepts either the display name ("Best Paper") or the URL slug ("best-paper").
func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if s == string(sec) || s == sec.Slug() {
			return sec, nil
		}
	}
	return "", ErrUnknownSection
}

// Slug returns the URL form of the section
func (s Section) Slug() string {
	switch s {
	case SectionBestPaper:
		return "best-paper"
	case SectionYoungResearcher:
		return "young-researcher"
	}
	return ""
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	return s.Slug() != ""
}

// RawScore is a criterion score as typed by a judge. JSON numbers and strings
// are both accepted; validation happens in the scoring package.
type RawScore string

func (r *RawScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RawScore(s)
	default:
		*r = RawScore(data)
	}
	return nil
}

// Request types

type SubmitScoreRequest struct {
	Judge         string              `json:"judge" validate:"required,max=120"`
	ParticipantID string              `json:"participant_id" validate:"required,max=64"`
	Section       string              `json:"section" validate:"required"`
	Scores        map[string]RawScore `json:"scores" validate:"required"`
	Remark        string              `json:"remark" validate:"max=2000"`
}

// Normalize trims the free-text fields so blank values fail "required".
func (r *SubmitScoreRequest) Normalize() {
	r.Judge = strings.TrimSpace(r.Judge)
	r.ParticipantID = strings.TrimSpace(r.ParticipantID)
	r.Section = strings.TrimSpace(r.Section)
	r.Remark = strings.TrimSpace(r.Remark)
}

type CreateParticipantRequest struct {
	ID    string `json:"id" validate:"required,max=64"`
	Name  string `json:"name" validate:"required,max=200"`
	Title string `json:"title" validate:"max=500"`
}

func (r *CreateParticipantRequest) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.Name = strings.TrimSpace(r.Name)
	r.Title = strings.TrimSpace(r.Title)
}

type UpdateParticipantRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Title *string `json:"title" validate:"omitempty,max=500"`
}

// Response types

type SubmitScoreResponse struct {
	Record   ScoreRecord  `json:"record"`
	Message  string       `json:"message"`
	Rankings []RankingRow `json:"rankings"`
}

type DeleteScoresResponse struct {
	Deleted int64  `json:"deleted"`
	Message string `json:"message"`
}

type SectionResults struct {
	Section   Section      `json:"section"`
	MaxTotal  float64      `json:"max_total"`
	Rankings  []RankingRow `json:"rankings"`
	TieGroups []TieGroup   `json:"tie_groups"`
	Winner    *Winner      `json:"winner,omitempty"`
}

type ResultsResponse struct {
	Event    string           `json:"event"`
	Sections []SectionResults `json:"sections"`
	Warnings []string         `json:"warnings,omitempty"`
}

type CriterionView struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Max         float64 `json:"max"`
}

type RubricView struct {
	Section  Section         `json:"section"`
	Slug     string          `json:"slug"`
	MaxTotal float64         `json:"max_total"`
	Criteria []CriterionView `json:"criteria"`
}

type EventResponse struct {
	Event   string       `json:"event"`
	Judges  []string     `json:"judges"`
	Rubrics []RubricView `json:"rubrics"`
}

// Domain types

type Participant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type ScoreRecord struct {
	ID            string             `json:"id"`
	ParticipantID string             `json:"participant_id"`
	Judge         string             `json:"judge"`
	Section       Section            `json:"section"`
	Scores        map[string]float64 `json:"scores"`
	Total         float64            `json:"total"`
	Remark        string             `json:"remark,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// Snapshot is the read-only input of the ranking engine.
// Scores are newest first, participants ordered by id.
type Snapshot struct {
	Scores       []ScoreRecord
	Participants []Participant
}

// Result types

type Contribution struct {
	Judge     string    `json:"judge"`
	Total     float64   `json:"total"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type RankingRow struct {
	Rank          int            `json:"rank"` // 1-indexed ranking
	Participant   Participant    `json:"participant"`
	AvgScore      float64        `json:"avg_score"`
	JudgeCount    int            `json:"judge_count"`
	Spread        float64        `json:"spread"`
	Contributions []Contribution `json:"contributions"`
}

type TieGroup struct {
	AvgScore       float64  `json:"avg_score"`
	FirstRank      int      `json:"first_rank"`
	ParticipantIDs []string `json:"participant_ids"`
}

// Tied reports whether more than one participant shares the group's average.
func (g TieGroup) Tied() bool {
	return len(g.ParticipantIDs) > 1
}

type Winner struct {
	Participant Participant `json:"participant"`
	AvgScore    float64     `json:"avg_score"`
	Manual      bool        `json:"manual"`
	Contested   bool        `json:"contested"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
