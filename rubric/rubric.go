// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rubric

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/judgeboard/models"
)

//go:embed event.yaml
var defaultEvent []byte

var ErrInvalidEvent = errors.New("invalid event config")

type Criterion struct {
	ID          string  `yaml:"id" validate:"required"`
	Label       string  `yaml:"label" validate:"required"`
	Description string  `yaml:"description"`
	Max         float64 `yaml:"max" validate:"gt=0"`
}

// Rubric is the ordered criteria list of one section.
type Rubric struct {
	Section  models.Section `yaml:"name" validate:"required"`
	Criteria []Criterion    `yaml:"criteria" validate:"required,min=1,dive"`
}

// MaxTotal is the highest total a single judge can award.
func (r Rubric) MaxTotal() float64 {
	var sum float64
	for _, c := range r.Criteria {
		sum += c.Max
	}
	return sum
}

func (r Rubric) Criterion(id string) (Criterion, bool) {
	for _, c := range r.Criteria {
		if c.ID == id {
			return c, true
		}
	}
	return Criterion{}, false
}

// Event is the static configuration of one judging event. It is loaded once
// at startup and shared read-only by everything else.
type Event struct {
	Name         string               `yaml:"name" validate:"required"`
	ExportPrefix string               `yaml:"export_prefix"`
	Judges       []string             `yaml:"judges" validate:"dive,required"`
	Participants []models.Participant `yaml:"participants"`
	Sections     []Rubric             `yaml:"sections" validate:"required,len=2,dive"`
}

// Rubric returns the rubric for section s.
func (e *Event) Rubric(s models.Section) (Rubric, bool) {
	for _, r := range e.Sections {
		if r.Section == s {
			return r, true
		}
	}
	return Rubric{}, false
}

// Rubrics returns the rubrics in models.Sections order.
func (e *Event) Rubrics() []Rubric {
	out := make([]Rubric, 0, len(models.Sections))
	for _, s := range models.Sections {
		if r, ok := e.Rubric(s); ok {
			out = append(out, r)
		}
	}
	return out
}

// Default returns the embedded ICCIET 2025 event.
func Default() (*Event, error) {
	return Parse(defaultEvent)
}

// Load reads the event file at path, or the embedded default when path is empty.
func Load(path string) (*Event, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates an event document. Unknown keys are rejected.
func Parse(data []byte) (*Event, error) {
	var ev Event
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if ev.ExportPrefix == "" {
		ev.ExportPrefix = strings.Join(strings.Fields(ev.Name), "_")
	}
	if err := ev.validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}

var eventValidator = validator.New()

func (e *Event) validate() error {
	if err := eventValidator.Struct(e); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	seen := make(map[models.Section]bool)
	for _, r := range e.Sections {
		if !r.Section.Valid() {
			return fmt.Errorf("%w: unknown section %q", ErrInvalidEvent, r.Section)
		}
		if seen[r.Section] {
			return fmt.Errorf("%w: section %q defined twice", ErrInvalidEvent, r.Section)
		}
		seen[r.Section] = true

		ids := make(map[string]bool)
		for _, c := range r.Criteria {
			if ids[c.ID] {
				return fmt.Errorf("%w: duplicate criterion %q in %s", ErrInvalidEvent, c.ID, r.Section)
			}
			ids[c.ID] = true
		}
	}

	pids := make(map[string]bool)
	for _, p := range e.Participants {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("%w: participant needs id and name", ErrInvalidEvent)
		}
		if pids[p.ID] {
			return fmt.Errorf("%w: duplicate participant %q", ErrInvalidEvent, p.ID)
		}
		pids[p.ID] = true
	}
	return nil
}
