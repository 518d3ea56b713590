// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"errors"
	"math"

	"github.com/danielhkuo/judgeboard/models"
)

// DefaultTieEpsilon is the tolerance under which two averages count as equal.
const DefaultTieEpsilon = 1e-4

var (
	ErrOverrideUnknown = errors.New("participant is not ranked in this section")
	ErrOverrideNotTied = errors.New("participant is not tied for first place")
)

// DetectTies partitions sorted rows into runs of equal average. A row joins
// the current group when it is within epsilon of the group's first row, so
// groups never chain across a wider spread than epsilon.
func DetectTies(rows []models.RankingRow, epsilon float64) []models.TieGroup {
	var groups []models.TieGroup
	for _, row := range rows {
		n := len(groups)
		if n > 0 && math.Abs(groups[n-1].AvgScore-row.AvgScore) <= epsilon {
			groups[n-1].ParticipantIDs = append(groups[n-1].ParticipantIDs, row.Participant.ID)
			continue
		}
		groups = append(groups, models.TieGroup{
			AvgScore:       row.AvgScore,
			FirstRank:      row.Rank,
			ParticipantIDs: []string{row.Participant.ID},
		})
	}
	return groups
}

// PickWinner returns the participant to display in first place. Without an
// override it is the first ranked row. An override must name a participant in
// the top tie group. Returns nil when there are no rows.
func PickWinner(rows []models.RankingRow, groups []models.TieGroup, override string) (*models.Winner, error) {
	if len(rows) == 0 {
		if override != "" {
			return nil, ErrOverrideUnknown
		}
		return nil, nil
	}

	contested := len(groups) > 0 && groups[0].Tied()
	if override == "" {
		return &models.Winner{Participant: rows[0].Participant, AvgScore: rows[0].AvgScore, Contested: contested}, nil
	}

	var row *models.RankingRow
	for i := range rows {
		if rows[i].Participant.ID == override {
			row = &rows[i]
			break
		}
	}
	if row == nil {
		return nil, ErrOverrideUnknown
	}

	for _, id := range groups[0].ParticipantIDs {
		if id == override {
			return &models.Winner{Participant: row.Participant, AvgScore: row.AvgScore, Manual: true, Contested: contested}, nil
		}
	}
	return nil, ErrOverrideNotTied
}
