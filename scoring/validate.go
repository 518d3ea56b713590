// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/danielhkuo/judgeboard/rubric"
)

var (
	ErrMissingScore = errors.New("missing score")
	ErrInvalidScore = errors.New("invalid score")
	ErrOutOfRange   = errors.New("score out of range")
)

// ValidationError reports the first criterion that failed validation.
type ValidationError struct {
	CriterionID string
	Criterion   string // label shown to judges
	Max         float64
	Err         error // one of ErrMissingScore, ErrInvalidScore, ErrOutOfRange
}

func (e *ValidationError) Error() string {
	switch e.Err {
	case ErrMissingScore:
		return fmt.Sprintf("Please enter score for %q.", e.Criterion)
	case ErrOutOfRange:
		return fmt.Sprintf("Score for %q must be between 0 and %s.", e.Criterion, strconv.FormatFloat(e.Max, 'f', -1, 64))
	default:
		return fmt.Sprintf("Invalid score for %q.", e.Criterion)
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Kind is a short machine-readable name of the failure, used as a metric label.
func (e *ValidationError) Kind() string {
	switch e.Err {
	case ErrMissingScore:
		return "missing"
	case ErrOutOfRange:
		return "out_of_range"
	default:
		return "invalid"
	}
}

// Validated is a checked score sheet.
type Validated struct {
	Scores map[string]float64
	Total  float64
}

// Validate checks raw judge input against rubric r. Criteria are visited in
// rubric order and the first failure is returned. Keys that are not part of
// the rubric are ignored. Values are not rounded: any finite number within
// [0, max] is accepted.
func Validate(r rubric.Rubric, raw map[string]string) (Validated, error) {
	out := Validated{Scores: make(map[string]float64, len(r.Criteria))}

	for _, c := range r.Criteria {
		s := strings.TrimSpace(raw[c.ID])
		if s == "" {
			return Validated{}, &ValidationError{CriterionID: c.ID, Criterion: c.Label, Max: c.Max, Err: ErrMissingScore}
		}

		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Validated{}, &ValidationError{CriterionID: c.ID, Criterion: c.Label, Max: c.Max, Err: ErrInvalidScore}
		}

		if v < 0 || v > c.Max {
			return Validated{}, &ValidationError{CriterionID: c.ID, Criterion: c.Label, Max: c.Max, Err: ErrOutOfRange}
		}

		out.Scores[c.ID] = v
		out.Total += v
	}

	return out, nil
}
