package matrix_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/compassq/internal/matrix"
	"github.com/slok/compassq/internal/model"
	"github.com/slok/compassq/internal/notify/notifymock"
)

func expectFeedback(f model.Feedback) func(m *notifymock.Notifier) {
	return func(m *notifymock.Notifier) {
		m.On("Feedback", mock.Anything, f).Once()
	}
}

func expectRejection(msg string) func(m *notifymock.Notifier) {
	return func(m *notifymock.Notifier) {
		m.On("Notify", mock.Anything, msg).Once()
		m.On("Feedback", mock.Anything, model.FeedbackRejection).Once()
	}
}

func TestBoardCreate(t *testing.T) {
	tests := map[string]struct {
		snapshot model.Snapshot
		req      matrix.CreateRequest
		mock     func(m *notifymock.Notifier)
		expTask  *model.Task
		expTasks []string
		expErr   error
	}{
		"An important task due in half an hour should go to Q1.": {
			req:  matrix.CreateRequest{Title: "  Ship release  ", Important: true, Urgent: true, Hours: 0.5},
			mock: expectFeedback(model.FeedbackSuccess),
			expTask: &model.Task{
				ID:        "new-1",
				Title:     "Ship release",
				Important: true,
				DueAt:     t0.Add(30 * time.Minute),
				CreatedAt: t0,
				Quadrant:  model.Q1,
			},
			expTasks: []string{"new-1"},
		},

		"Urgent tasks with far hours should be clamped to the urgency window.": {
			req:  matrix.CreateRequest{Title: "t", Important: false, Urgent: true, Hours: 48},
			mock: expectFeedback(model.FeedbackSuccess),
			expTask: &model.Task{
				ID:        "new-1",
				Title:     "t",
				DueAt:     t0.Add(24 * time.Hour),
				CreatedAt: t0,
				Quadrant:  model.Q3,
			},
			expTasks: []string{"new-1"},
		},

		"Not urgent tasks with close hours should be moved past the urgency window.": {
			req:  matrix.CreateRequest{Title: "t", Important: true, Urgent: false, Hours: 2},
			mock: expectFeedback(model.FeedbackSuccess),
			expTask: &model.Task{
				ID:        "new-1",
				Title:     "t",
				Important: true,
				DueAt:     t0.Add(25 * time.Hour),
				CreatedAt: t0,
				Quadrant:  model.Q2,
			},
			expTasks: []string{"new-1"},
		},

		"New tasks should be added at the front.": {
			snapshot: model.Snapshot{Tasks: []model.Task{fixture("a", model.Q4)}},
			req:      matrix.CreateRequest{Title: "t", Hours: 100},
			mock:     expectFeedback(model.FeedbackSuccess),
			expTask: &model.Task{
				ID:        "new-1",
				Title:     "t",
				DueAt:     t0.Add(100 * time.Hour),
				CreatedAt: t0,
				Quadrant:  model.Q4,
			},
			expTasks: []string{"new-1", "a"},
		},

		"An empty title should be rejected.": {
			req:    matrix.CreateRequest{Title: "   ", Hours: 1},
			mock:   expectRejection("Title is required"),
			expErr: model.ErrNotValid,
		},

		"Negative hours should be rejected.": {
			req:    matrix.CreateRequest{Title: "t", Hours: -1},
			mock:   expectRejection("Enter a valid non-negative number of hours."),
			expErr: model.ErrNotValid,
		},

		"Non finite hours should be rejected.": {
			req:    matrix.CreateRequest{Title: "t", Hours: math.Inf(1)},
			mock:   expectRejection("Enter a valid non-negative number of hours."),
			expErr: model.ErrNotValid,
		},

		"Creating on a full quadrant should be rejected without adding the task.": {
			snapshot: model.Snapshot{Tasks: fullQuadrant(model.Q1)},
			req:      matrix.CreateRequest{Title: "t", Important: true, Urgent: true, Hours: 1},
			mock:     expectRejection("Quadrant limit reached (10). Try another quadrant or complete/delete tasks."),
			expTasks: ids(fullQuadrant(model.Q1)),
			expErr:   model.ErrCapacityExceeded,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			mn := notifymock.NewNotifier(t)
			test.mock(mn)
			b := newBoard(t, boardOpts{snapshot: test.snapshot, notifier: mn})

			gotTask, err := b.Create(context.TODO(), test.req)

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				assert.Nil(gotTask)
			} else if assert.NoError(err) {
				assert.Equal(test.expTask, gotTask)
			}
			if test.expTasks != nil {
				assert.Equal(test.expTasks, ids(b.Snapshot().Tasks))
			}
		})
	}
}

func TestBoardEdit(t *testing.T) {
	tests := map[string]struct {
		snapshot model.Snapshot
		req      matrix.EditRequest
		mock     func(m *notifymock.Notifier)
		expTask  *model.Task
		expErr   error
	}{
		"Editing a task should replace its values and classify it again.": {
			snapshot: model.Snapshot{Tasks: []model.Task{fixture("a", model.Q4)}},
			req:      matrix.EditRequest{ID: "a", Title: "new", Hours: 3, Urgent: true, Important: true},
			mock:     expectFeedback(model.FeedbackSuccess),
			expTask: &model.Task{
				ID:        "a",
				Title:     "new",
				Important: true,
				DueAt:     t0.Add(3 * time.Hour),
				CreatedAt: t0.Add(-time.Hour),
				Quadrant:  model.Q1,
			},
		},

		"Editing a task inside a full quadrant should not be limited by its own slot.": {
			snapshot: model.Snapshot{Tasks: fullQuadrant(model.Q1)},
			req:      matrix.EditRequest{ID: "Q1-full-3", Title: "renamed", Hours: 1, Urgent: true, Important: true},
			mock:     expectFeedback(model.FeedbackSuccess),
			expTask: &model.Task{
				ID:        "Q1-full-3",
				Title:     "renamed",
				Important: true,
				DueAt:     t0.Add(time.Hour),
				CreatedAt: t0.Add(-time.Hour),
				Quadrant:  model.Q1,
			},
		},

		"Editing a missing task should be ignored.": {
			req:  matrix.EditRequest{ID: "missing", Title: "t", Hours: 1},
			mock: func(m *notifymock.Notifier) {},
		},

		"Editing with an empty title should be rejected.": {
			snapshot: model.Snapshot{Tasks: []model.Task{fixture("a", model.Q4)}},
			req:      matrix.EditRequest{ID: "a", Title: "", Hours: 1},
			mock:     expectRejection("Title is required"),
			expErr:   model.ErrNotValid,
		},

		"Editing with NaN hours should be rejected.": {
			snapshot: model.Snapshot{Tasks: []model.Task{fixture("a", model.Q4)}},
			req:      matrix.EditRequest{ID: "a", Title: "t", Hours: math.NaN()},
			mock:     expectRejection("Enter a valid non-negative number of hours."),
			expErr:   model.ErrNotValid,
		},

		"Editing into a full quadrant should reject the whole edit.": {
			snapshot: model.Snapshot{Tasks: append(fullQuadrant(model.Q1), fixture("a", model.Q4))},
			req:      matrix.EditRequest{ID: "a", Title: "new title", Hours: 1, Urgent: true, Important: true},
			mock:     expectRejection("Quadrant limit reached (10). Clear room first."),
			expErr:   model.ErrCapacityExceeded,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			mn := notifymock.NewNotifier(t)
			test.mock(mn)
			b := newBoard(t, boardOpts{snapshot: test.snapshot, notifier: mn})
			before := b.Snapshot()

			gotTask, err := b.Edit(context.TODO(), test.req)

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				assert.Equal(before, b.Snapshot())
				return
			}
			if assert.NoError(err) {
				assert.Equal(test.expTask, gotTask)
			}
			if test.expTask == nil {
				assert.Equal(before, b.Snapshot())
			}
		})
	}
}

func TestScenarioCreateThenEditToNotUrgent(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := newBoard(t, boardOpts{})

	task, err := b.Create(context.TODO(), matrix.CreateRequest{Title: "t", Important: true, Urgent: true, Hours: 0.5})
	require.NoError(err)
	assert.Equal(model.Q1, task.Quadrant)

	task, err = b.Edit(context.TODO(), matrix.EditRequest{ID: task.ID, Title: "t", Hours: 48, Urgent: false, Important: true})
	require.NoError(err)
	assert.Equal(model.Q2, task.Quadrant)
	assert.Equal(t0.Add(48*time.Hour), task.DueAt)
}

func TestBoardCompleteRestoreRoundTrip(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	now := t0
	b := newBoard(t, boardOpts{
		snapshot: model.Snapshot{Tasks: []model.Task{fixture("a", model.Q2), fixture("b", model.Q1)}},
		now:      func() time.Time { return now },
	})
	orig, err := b.GetTask("a")
	require.NoError(err)

	completed, err := b.Complete(context.TODO(), "a")
	require.NoError(err)
	require.NotNil(completed.CompletedAt)
	assert.Equal(t0, *completed.CompletedAt)
	assert.Equal([]string{"b"}, ids(b.Snapshot().Tasks))
	assert.Equal([]string{"a"}, ids(b.Snapshot().Archived))

	now = now.Add(time.Hour)
	restored, err := b.Restore(context.TODO(), "a")
	require.NoError(err)
	assert.Equal(orig, restored)
	assert.Nil(restored.CompletedAt)
	assert.Equal([]string{"a", "b"}, ids(b.Snapshot().Tasks))
	assert.Empty(b.Snapshot().Archived)
}

func TestBoardCompleteShouldPrependToArchive(t *testing.T) {
	b := newBoard(t, boardOpts{snapshot: model.Snapshot{
		Tasks:    []model.Task{fixture("a", model.Q1)},
		Archived: []model.Task{archivedFixture("old", model.Q2)},
	}})

	_, err := b.Complete(context.TODO(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "old"}, ids(b.Snapshot().Archived))
}

func TestBoardRestore(t *testing.T) {
	overdue := archivedFixture("overdue", model.Q2)
	overdue.DueAt = t0.Add(-time.Hour)

	tests := map[string]struct {
		snapshot    model.Snapshot
		id          string
		mock        func(m *notifymock.Notifier)
		expQuadrant model.Quadrant
		expErr      error
	}{
		"Restoring should classify the task with its stored due time.": {
			snapshot:    model.Snapshot{Archived: []model.Task{overdue}},
			id:          "overdue",
			mock:        expectFeedback(model.FeedbackSuccess),
			expQuadrant: model.Q1,
		},

		"Restoring into a full quadrant should keep the task archived.": {
			snapshot: model.Snapshot{Tasks: fullQuadrant(model.Q2), Archived: []model.Task{archivedFixture("a", model.Q2)}},
			id:       "a",
			mock:     expectRejection("Quadrant limit reached (10). Clear room first."),
			expErr:   model.ErrCapacityExceeded,
		},

		"Restoring a missing task should be ignored.": {
			id:   "missing",
			mock: func(m *notifymock.Notifier) {},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			mn := notifymock.NewNotifier(t)
			test.mock(mn)
			b := newBoard(t, boardOpts{snapshot: test.snapshot, notifier: mn})
			before := b.Snapshot()

			got, err := b.Restore(context.TODO(), test.id)

			switch {
			case test.expErr != nil:
				assert.ErrorIs(err, test.expErr)
				assert.Equal(before, b.Snapshot())
			case test.expQuadrant == "":
				assert.NoError(err)
				assert.Nil(got)
				assert.Equal(before, b.Snapshot())
			default:
				assert.NoError(err)
				assert.Equal(test.expQuadrant, got.Quadrant)
				assert.Nil(got.CompletedAt)
			}
		})
	}
}

func TestBoardDeletes(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	mn := notifymock.NewNotifier(t)
	mn.On("Feedback", mock.Anything, model.FeedbackDestructive).Twice()
	b := newBoard(t, boardOpts{
		notifier: mn,
		snapshot: model.Snapshot{
			Tasks:    []model.Task{fixture("a", model.Q1), fixture("b", model.Q3)},
			Archived: []model.Task{archivedFixture("c", model.Q2)},
		},
	})

	deleted, err := b.Delete(context.TODO(), "a")
	require.NoError(err)
	assert.Equal("a", deleted.ID)

	deleted, err = b.DeleteArchived(context.TODO(), "c")
	require.NoError(err)
	assert.Equal("c", deleted.ID)

	// Missing tasks are no-ops, archived IDs are not active ones and the other way around.
	deleted, err = b.Delete(context.TODO(), "c")
	require.NoError(err)
	assert.Nil(deleted)
	deleted, err = b.DeleteArchived(context.TODO(), "b")
	require.NoError(err)
	assert.Nil(deleted)
	completed, err := b.Complete(context.TODO(), "missing")
	require.NoError(err)
	assert.Nil(completed)

	assert.Equal([]string{"b"}, ids(b.Snapshot().Tasks))
	assert.Empty(b.Snapshot().Archived)
}

func TestBoardCapacityInvariant(t *testing.T) {
	b := newBoard(t, boardOpts{})

	for range 15 {
		_, _ = b.Create(context.TODO(), matrix.CreateRequest{Title: "t", Important: true, Urgent: true, Hours: 1})
		_, _ = b.Create(context.TODO(), matrix.CreateRequest{Title: "t", Urgent: false, Hours: 72})
	}

	s := b.Snapshot()
	for _, q := range model.Quadrants {
		assert.LessOrEqual(t, s.CountQuadrant(q, ""), model.QuadrantCapacity)
	}
	assert.Equal(t, model.QuadrantCapacity, s.CountQuadrant(model.Q1, ""))
	assert.Equal(t, model.QuadrantCapacity, s.CountQuadrant(model.Q4, ""))
}
