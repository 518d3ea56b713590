// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/danielhkuo/judgeboard/models"
	"github.com/danielhkuo/judgeboard/rubric"
)

// Aggregate ranks the participants of one section by their average total.
//
// Records are grouped by participant in snapshot order, so each row's
// contributions keep the order of the snapshot (newest first). Groups whose
// participant is missing from the snapshot are dropped.
func Aggregate(snap models.Snapshot, section models.Section) []models.RankingRow {
	type group struct {
		sum      float64
		totals   []float64
		contribs []models.Contribution
	}

	groups := make(map[string]*group)
	var order []string
	for _, rec := range snap.Scores {
		if rec.Section != section {
			continue
		}
		g, ok := groups[rec.ParticipantID]
		if !ok {
			g = &group{}
			groups[rec.ParticipantID] = g
			order = append(order, rec.ParticipantID)
		}
		g.sum += rec.Total
		g.totals = append(g.totals, rec.Total)
		g.contribs = append(g.contribs, models.Contribution{
			Judge:     rec.Judge,
			Total:     rec.Total,
			Remark:    rec.Remark,
			CreatedAt: rec.CreatedAt,
		})
	}

	participants := make(map[string]models.Participant, len(snap.Participants))
	for _, p := range snap.Participants {
		participants[p.ID] = p
	}

	rows := make([]models.RankingRow, 0, len(order))
	for _, pid := range order {
		p, ok := participants[pid]
		if !ok {
			continue
		}
		g := groups[pid]
		rows = append(rows, models.RankingRow{
			Participant:   p,
			AvgScore:      g.sum / float64(len(g.totals)),
			JudgeCount:    len(g.totals),
			Spread:        stat.PopStdDev(g.totals, nil),
			Contributions: g.contribs,
		})
	}

	// Higher average wins; equal averages fall back to participant ID (ascending)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AvgScore != rows[j].AvgScore {
			return rows[i].AvgScore > rows[j].AvgScore
		}
		return rows[i].Participant.ID < rows[j].Participant.ID
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// SectionResults aggregates one section and annotates ties and the winner.
// firstOverride optionally names the participant to show in first place when
// several share the top average; it never changes the computed order.
func SectionResults(snap models.Snapshot, r rubric.Rubric, firstOverride string) (models.SectionResults, error) {
	rows := Aggregate(snap, r.Section)
	groups := DetectTies(rows, DefaultTieEpsilon)

	winner, err := PickWinner(rows, groups, firstOverride)
	if err != nil {
		return models.SectionResults{}, err
	}

	tied := make([]models.TieGroup, 0)
	for _, g := range groups {
		if g.Tied() {
			tied = append(tied, g)
		}
	}

	return models.SectionResults{
		Section:   r.Section,
		MaxTotal:  r.MaxTotal(),
		Rankings:  rows,
		TieGroups: tied,
		Winner:    winner,
	}, nil
}

// Standings computes the results of every section of the event.
func Standings(snap models.Snapshot, ev *rubric.Event) []models.SectionResults {
	rubrics := ev.Rubrics()
	out := make([]models.SectionResults, 0, len(rubrics))
	for _, r := range rubrics {
		// no override, cannot fail
		res, _ := SectionResults(snap, r, "")
		out = append(out, res)
	}
	return out
}
