package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	// UrgencyThreshold is the window before the due time in which a task is urgent.
	UrgencyThreshold = 24 * time.Hour
	// UrgencyThresholdHours is UrgencyThreshold expressed in hours, used by hour based inputs.
	UrgencyThresholdHours = 24
	// QuadrantCapacity is the maximum number of active tasks a quadrant holds under user control.
	QuadrantCapacity = 10
)

// Quadrant is one of the four priority buckets of the matrix.
type Quadrant string

const (
	// Q1 holds urgent and important tasks.
	Q1 Quadrant = "Q1"
	// Q2 holds not urgent but important tasks.
	Q2 Quadrant = "Q2"
	// Q3 holds urgent but not important tasks.
	Q3 Quadrant = "Q3"
	// Q4 holds not urgent and not important tasks.
	Q4 Quadrant = "Q4"
)

// Quadrants is the canonical quadrant order, used to flatten the board into a single list.
var Quadrants = []Quadrant{Q1, Q2, Q3, Q4}

// ParseQuadrant parses a quadrant identifier, case insensitive.
func ParseQuadrant(s string) (Quadrant, error) {
	q := Quadrant(strings.ToUpper(strings.TrimSpace(s)))
	if err := q.Validate(); err != nil {
		return "", err
	}
	return q, nil
}

// Validate validates the quadrant identifier.
func (q Quadrant) Validate() error {
	switch q {
	case Q1, Q2, Q3, Q4:
		return nil
	}
	return fmt.Errorf("quadrant %q is invalid (allowed: Q1, Q2, Q3, Q4): %w", string(q), ErrNotValid)
}

// Urgent returns true for the quadrants on the urgent axis.
func (q Quadrant) Urgent() bool { return q == Q1 || q == Q3 }

// Important returns true for the quadrants on the important axis.
func (q Quadrant) Important() bool { return q == Q1 || q == Q2 }

// Title returns the human readable quadrant name.
func (q Quadrant) Title() string {
	switch q {
	case Q1:
		return "Urgent + Important"
	case Q2:
		return "Not Urgent + Important"
	case Q3:
		return "Urgent + Not Important"
	case Q4:
		return "Not Urgent + Not Important"
	}
	return string(q)
}

// IsUrgent returns true when the due time falls inside the urgency window.
// Overdue tasks are urgent.
func IsUrgent(dueAt, now time.Time) bool {
	return dueAt.Sub(now) <= UrgencyThreshold
}

// QuadrantFor returns the quadrant at the cross of both axes.
func QuadrantFor(important, urgent bool) Quadrant {
	switch {
	case important && urgent:
		return Q1
	case important && !urgent:
		return Q2
	case !important && urgent:
		return Q3
	default:
		return Q4
	}
}

// Classify returns the quadrant of a task using a single `now` for the urgency check.
func Classify(important bool, dueAt, now time.Time) Quadrant {
	return QuadrantFor(important, IsUrgent(dueAt, now))
}
