package io

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/slok/compassq/internal/model"
)

// Format is a snapshot serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format for a file extension, JSON by default.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Snapshot represents the serialized board. The shape is the `compassq-data-v1`
// document: timestamps are epoch milliseconds.
type Snapshot struct {
	Tasks    []Task `json:"tasks" yaml:"tasks"`
	Archived []Task `json:"archived" yaml:"archived"`
}

// Task represents a serialized task.
type Task struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Important   bool   `json:"important" yaml:"important"`
	DueAt       int64  `json:"dueAt" yaml:"dueAt"`
	CreatedAt   int64  `json:"createdAt" yaml:"createdAt"`
	Quadrant    string `json:"quadrant" yaml:"quadrant"`
	CompletedAt *int64 `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

// Encode serializes a snapshot.
func Encode(s model.Snapshot, f Format) ([]byte, error) {
	dto := fromModel(s)

	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(dto, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("could not marshal JSON: %w", err)
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(dto)
		if err != nil {
			return nil, fmt.Errorf("could not marshal YAML: %w", err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("unknown format %q: %w", f, model.ErrNotValid)
}

// Decode deserializes and validates a snapshot. Missing sequences are empty.
func Decode(data []byte, f Format) (*model.Snapshot, error) {
	var dto Snapshot

	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &dto); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &dto); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q: %w", f, model.ErrNotValid)
	}

	s := dto.toModel()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	return &s, nil
}

func fromModel(s model.Snapshot) Snapshot {
	conv := func(tasks []model.Task) []Task {
		res := make([]Task, 0, len(tasks))
		for _, t := range tasks {
			var completedAt *int64
			if t.CompletedAt != nil {
				ms := t.CompletedAt.UnixMilli()
				completedAt = &ms
			}
			res = append(res, Task{
				ID:          t.ID,
				Title:       t.Title,
				Important:   t.Important,
				DueAt:       t.DueAt.UnixMilli(),
				CreatedAt:   t.CreatedAt.UnixMilli(),
				Quadrant:    string(t.Quadrant),
				CompletedAt: completedAt,
			})
		}
		return res
	}

	return Snapshot{Tasks: conv(s.Tasks), Archived: conv(s.Archived)}
}

func (s Snapshot) toModel() model.Snapshot {
	conv := func(tasks []Task) []model.Task {
		res := make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			var completedAt *time.Time
			if t.CompletedAt != nil {
				c := time.UnixMilli(*t.CompletedAt).UTC()
				completedAt = &c
			}
			res = append(res, model.Task{
				ID:          t.ID,
				Title:       t.Title,
				Important:   t.Important,
				DueAt:       time.UnixMilli(t.DueAt).UTC(),
				CreatedAt:   time.UnixMilli(t.CreatedAt).UTC(),
				Quadrant:    model.Quadrant(t.Quadrant),
				CompletedAt: completedAt,
			})
		}
		return res
	}

	return model.Snapshot{Tasks: conv(s.Tasks), Archived: conv(s.Archived)}
}
