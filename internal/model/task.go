package model

import (
	"fmt"
	"strings"
	"time"
)

// Task is a single entry of the priority matrix.
//
// Quadrant is a cached projection of Classify(Important, DueAt), it is
// recomputed on every mutation that touches Important or DueAt and never set
// on its own.
type Task struct {
	ID        string
	Title     string
	Important bool
	DueAt     time.Time
	CreatedAt time.Time
	Quadrant  Quadrant
	// CompletedAt is only set while the task is archived.
	CompletedAt *time.Time
}

// Archived returns true when the task has been completed.
func (t Task) Archived() bool { return t.CompletedAt != nil }

// Urgent returns the urgency of the task at a point in time.
func (t Task) Urgent(now time.Time) bool { return IsUrgent(t.DueAt, now) }

// Clone returns a copy of the task that doesn't share memory with the original.
func (t Task) Clone() Task {
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		t.CompletedAt = &c
	}
	return t
}

// Validate validates the task model.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required: %w", ErrNotValid)
	}

	if _, err := NormalizeTitle(t.Title); err != nil {
		return err
	}

	if err := t.Quadrant.Validate(); err != nil {
		return fmt.Errorf("task %s: %w", t.ID, err)
	}

	if t.DueAt.IsZero() {
		return fmt.Errorf("task %s due at is required: %w", t.ID, ErrNotValid)
	}

	if t.CreatedAt.IsZero() {
		return fmt.Errorf("task %s created at is required: %w", t.ID, ErrNotValid)
	}

	if t.CompletedAt != nil && t.CompletedAt.IsZero() {
		return fmt.Errorf("task %s completed at can't be zero: %w", t.ID, ErrNotValid)
	}

	return nil
}

// NormalizeTitle trims a task title and checks it's not empty.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("task title is required: %w", ErrNotValid)
	}
	return title, nil
}
