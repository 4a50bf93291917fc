package matrix

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
)

const (
	msgTitleRequired = "Title is required"
	msgInvalidHours  = "Enter a valid non-negative number of hours."
)

// CreateRequest are the values of a new task.
type CreateRequest struct {
	Title     string
	Important bool
	// Urgent is the urgency the user asked for, Hours are moved onto its axis.
	Urgent bool
	Hours  float64
}

// EditRequest are the new values of an existing task, all of them replace the
// current ones.
type EditRequest struct {
	ID        string
	Title     string
	Hours     float64
	Urgent    bool
	Important bool
}

// Create adds a new task at the front of the active tasks.
func (b *Board) Create(ctx context.Context, r CreateRequest) (*model.Task, error) {
	title, hours, err := b.validateForm(ctx, r.Title, r.Hours)
	if err != nil {
		return nil, fmt.Errorf("could not create task: %w", err)
	}

	var created model.Task
	err = b.update(func(cur model.Snapshot, now time.Time) (*model.Snapshot, error) {
		id := b.newID()
		if _, ok := cur.TaskIndex(id); ok {
			return nil, fmt.Errorf("task %s: %w", id, model.ErrAlreadyExists)
		}
		if _, ok := cur.ArchivedIndex(id); ok {
			return nil, fmt.Errorf("task %s: %w", id, model.ErrAlreadyExists)
		}

		dueAt := now.Add(model.HoursToDuration(model.NormalizeHours(hours, r.Urgent)))
		q := model.Classify(r.Important, dueAt, now)
		if err := CheckCapacity(cur, q, "", b.capacity); err != nil {
			return nil, err
		}

		created = model.Task{
			ID:        id,
			Title:     title,
			Important: r.Important,
			DueAt:     dueAt,
			CreatedAt: now,
			Quadrant:  q,
		}
		next := cur.Clone()
		next.Tasks = slices.Insert(next.Tasks, 0, created)
		return &next, nil
	})
	if err != nil {
		if errors.Is(err, model.ErrCapacityExceeded) {
			b.reject(ctx, capacityMsg(b.capacity, "Try another quadrant or complete/delete tasks."))
		}
		return nil, fmt.Errorf("could not create task: %w", err)
	}

	b.logger.WithCtxValues(ctx).WithValues(log.Kv{"task-id": created.ID, "quadrant": created.Quadrant}).Debugf("Task created")
	b.notifier.Feedback(ctx, model.FeedbackSuccess)

	return &created, nil
}

// Edit replaces the title, due time and importance of an active task. The
// edit is applied as a whole or not at all, a full destination quadrant
// rejects every change. Missing tasks are ignored.
func (b *Board) Edit(ctx context.Context, r EditRequest) (*model.Task, error) {
	title, hours, err := b.validateForm(ctx, r.Title, r.Hours)
	if err != nil {
		return nil, fmt.Errorf("could not edit task: %w", err)
	}

	var edited *model.Task
	err = b.update(func(cur model.Snapshot, now time.Time) (*model.Snapshot, error) {
		i, ok := cur.TaskIndex(r.ID)
		if !ok {
			return nil, nil
		}

		t := cur.Tasks[i].Clone()
		t.Title = title
		t.Important = r.Important
		t.DueAt = now.Add(model.HoursToDuration(model.NormalizeHours(hours, r.Urgent)))
		q := model.Classify(t.Important, t.DueAt, now)
		if q != t.Quadrant {
			if err := CheckCapacity(cur, q, t.ID, b.capacity); err != nil {
				return nil, err
			}
		}
		t.Quadrant = q

		next := cur.Clone()
		next.Tasks[i] = t
		edited = &t
		return &next, nil
	})
	if err != nil {
		if errors.Is(err, model.ErrCapacityExceeded) {
			b.reject(ctx, capacityMsg(b.capacity, "Clear room first."))
		}
		return nil, fmt.Errorf("could not edit task: %w", err)
	}
	if edited == nil {
		return nil, nil
	}

	b.logger.WithCtxValues(ctx).WithValues(log.Kv{"task-id": edited.ID, "quadrant": edited.Quadrant}).Debugf("Task edited")
	b.notifier.Feedback(ctx, model.FeedbackSuccess)

	return edited, nil
}

// Complete archives an active task. Missing tasks are ignored.
func (b *Board) Complete(ctx context.Context, id string) (*model.Task, error) {
	var completed *model.Task
	err := b.update(func(cur model.Snapshot, now time.Time) (*model.Snapshot, error) {
		i, ok := cur.TaskIndex(id)
		if !ok {
			return nil, nil
		}

		next := cur.Clone()
		t := next.Tasks[i]
		t.CompletedAt = &now
		next.Tasks = slices.Delete(next.Tasks, i, i+1)
		next.Archived = slices.Insert(next.Archived, 0, t)
		completed = &t
		return &next, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not complete task: %w", err)
	}
	if completed == nil {
		return nil, nil
	}

	b.notifier.Feedback(ctx, model.FeedbackSuccess)
	c := completed.Clone()
	return &c, nil
}

// Delete removes an active task. Missing tasks are ignored.
func (b *Board) Delete(ctx context.Context, id string) (*model.Task, error) {
	var deleted *model.Task
	err := b.update(func(cur model.Snapshot, _ time.Time) (*model.Snapshot, error) {
		i, ok := cur.TaskIndex(id)
		if !ok {
			return nil, nil
		}

		next := cur.Clone()
		t := next.Tasks[i]
		next.Tasks = slices.Delete(next.Tasks, i, i+1)
		deleted = &t
		return &next, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not delete task: %w", err)
	}
	if deleted == nil {
		return nil, nil
	}

	b.notifier.Feedback(ctx, model.FeedbackDestructive)
	return deleted, nil
}

// Restore moves an archived task back to the front of the active tasks. The
// due time is kept, the quadrant is computed again from it.
func (b *Board) Restore(ctx context.Context, id string) (*model.Task, error) {
	var restored *model.Task
	err := b.update(func(cur model.Snapshot, now time.Time) (*model.Snapshot, error) {
		i, ok := cur.ArchivedIndex(id)
		if !ok {
			return nil, nil
		}

		t := cur.Archived[i].Clone()
		t.Quadrant = model.Classify(t.Important, t.DueAt, now)
		if err := CheckCapacity(cur, t.Quadrant, t.ID, b.capacity); err != nil {
			return nil, err
		}
		t.CompletedAt = nil

		next := cur.Clone()
		next.Archived = slices.Delete(next.Archived, i, i+1)
		next.Tasks = slices.Insert(next.Tasks, 0, t)
		restored = &t
		return &next, nil
	})
	if err != nil {
		if errors.Is(err, model.ErrCapacityExceeded) {
			b.reject(ctx, capacityMsg(b.capacity, "Clear room first."))
		}
		return nil, fmt.Errorf("could not restore task: %w", err)
	}
	if restored == nil {
		return nil, nil
	}

	b.notifier.Feedback(ctx, model.FeedbackSuccess)
	return restored, nil
}

// DeleteArchived removes an archived task. Missing tasks are ignored.
func (b *Board) DeleteArchived(ctx context.Context, id string) (*model.Task, error) {
	var deleted *model.Task
	err := b.update(func(cur model.Snapshot, _ time.Time) (*model.Snapshot, error) {
		i, ok := cur.ArchivedIndex(id)
		if !ok {
			return nil, nil
		}

		next := cur.Clone()
		t := next.Archived[i]
		next.Archived = slices.Delete(next.Archived, i, i+1)
		deleted = &t
		return &next, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not delete archived task: %w", err)
	}
	if deleted == nil {
		return nil, nil
	}

	b.notifier.Feedback(ctx, model.FeedbackDestructive)
	return deleted, nil
}

func (b *Board) validateForm(ctx context.Context, title string, hours float64) (string, float64, error) {
	title, err := model.NormalizeTitle(title)
	if err != nil {
		b.reject(ctx, msgTitleRequired)
		return "", 0, err
	}

	if err := model.ValidateHours(hours); err != nil {
		b.reject(ctx, msgInvalidHours)
		return "", 0, err
	}

	return title, hours, nil
}

func (b *Board) reject(ctx context.Context, msg string) {
	b.notifier.Notify(ctx, msg)
	b.notifier.Feedback(ctx, model.FeedbackRejection)
}
