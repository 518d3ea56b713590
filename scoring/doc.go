// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring is the ranking engine: it validates judge score sheets and
turns a snapshot of score records into per-section rankings.

# Validation

	v, err := scoring.Validate(rubric, map[string]string{"presentation": "4.5", ...})

Criteria are checked in rubric order and the first failure wins. The error is
a *ValidationError wrapping ErrMissingScore, ErrInvalidScore or ErrOutOfRange.
On success v.Total is the sum of all criterion scores; client totals are never
trusted.

# Ranking

	rows := scoring.Aggregate(snapshot, models.SectionBestPaper)

Records of the section are grouped by participant, averaged (plain mean of
judge totals) and sorted by average descending, then participant ID
ascending. Records pointing at deleted participants produce no row.

# Ties

DetectTies groups rows whose averages lie within DefaultTieEpsilon. PickWinner
lets an organiser choose which tied participant is shown first; the choice is
only an annotation and never touches stored scores or the computed order.

Every function here is pure and safe to call concurrently.
*/
package scoring
