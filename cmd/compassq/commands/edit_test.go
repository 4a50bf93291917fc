package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slok/compassq/internal/matrix"
	"github.com/slok/compassq/internal/model"
)

func TestEditValuesRequest(t *testing.T) {
	now := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	task := model.Task{
		ID:        "a",
		Title:     "write docs",
		Important: true,
		DueAt:     now.Add(71*time.Hour + 30*time.Minute),
		CreatedAt: now,
		Quadrant:  model.Q2,
	}

	tests := map[string]struct {
		task   model.Task
		values editValues
		expReq matrix.EditRequest
	}{
		"Without flags the current values should be kept.": {
			task:   task,
			expReq: matrix.EditRequest{ID: "a", Title: "write docs", Hours: 72, Urgent: false, Important: true},
		},
		"Set flags should replace the current values.": {
			task:   task,
			values: editValues{title: "new", titleSet: true, hours: 30, hoursSet: true, important: false, importantSet: true},
			expReq: matrix.EditRequest{ID: "a", Title: "new", Hours: 30, Urgent: false, Important: false},
		},
		"Switching urgency on without hours should suggest urgent hours.": {
			task:   task,
			values: editValues{urgent: true, urgentSet: true},
			expReq: matrix.EditRequest{ID: "a", Title: "write docs", Hours: 6, Urgent: true, Important: true},
		},
		"Switching urgency with hours should use the hours.": {
			task:   task,
			values: editValues{urgent: true, urgentSet: true, hours: 3, hoursSet: true},
			expReq: matrix.EditRequest{ID: "a", Title: "write docs", Hours: 3, Urgent: true, Important: true},
		},
		"Overdue tasks should start with a full urgency window.": {
			task: model.Task{
				ID: "b", Title: "late", DueAt: now.Add(-time.Hour), CreatedAt: now, Quadrant: model.Q3,
			},
			values: editValues{urgent: false, urgentSet: true},
			expReq: matrix.EditRequest{ID: "b", Title: "late", Hours: 48, Urgent: false, Important: false},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expReq, test.values.request(test.task, now))
		})
	}
}
