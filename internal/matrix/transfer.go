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

const msgInvalidTransferHours = "Please enter a valid non-negative number of hours."

// HoursPrompter asks the user for a new due time, in hours from now, when a
// transfer crosses the urgency boundary. Returning ok false cancels the transfer.
type HoursPrompter interface {
	RequestHours(ctx context.Context, defaultHours float64) (hours float64, ok bool, err error)
}

//go:generate mockery --case underscore --output matrixmock --outpkg matrixmock --name HoursPrompter

// PromptFunc is a helper to create prompters from functions.
type PromptFunc func(ctx context.Context, defaultHours float64) (float64, bool, error)

func (p PromptFunc) RequestHours(ctx context.Context, defaultHours float64) (float64, bool, error) {
	return p(ctx, defaultHours)
}

// DeclinePrompter cancels every request.
var DeclinePrompter = PromptFunc(func(context.Context, float64) (float64, bool, error) { return 0, false, nil })

// AnswerHours returns a prompter that always answers with the same hours.
func AnswerHours(hours float64) HoursPrompter {
	return PromptFunc(func(context.Context, float64) (float64, bool, error) { return hours, true, nil })
}

// Position is a place on the board, Index is relative to the quadrant.
type Position struct {
	Quadrant model.Quadrant
	Index    int
}

// TransferRequest moves a task to a quadrant position.
type TransferRequest struct {
	TaskID string
	// From is where the caller saw the task, its index is used as a hint.
	From Position
	To   Position
	// Prompter overrides the board prompter for this transfer when set.
	Prompter HoursPrompter
}

func (r TransferRequest) validate() error {
	if r.TaskID == "" {
		return fmt.Errorf("task id is required: %w", model.ErrNotValid)
	}
	if err := r.From.Quadrant.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := r.To.Quadrant.Validate(); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if r.To.Index < 0 {
		return fmt.Errorf("destination index can't be negative: %w", model.ErrNotValid)
	}
	return nil
}

// Transfer moves an active task to another quadrant or position. The task takes
// the importance of the destination, and when the move crosses the urgency
// boundary the prompter is asked for a new due time. Any failure leaves the
// board untouched. Missing tasks are ignored.
func (b *Board) Transfer(ctx context.Context, r TransferRequest) (*model.Task, error) {
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid transfer: %w", err)
	}

	b.beginDrag()
	defer b.endDrag()

	dst := r.To.Quadrant
	logger := b.logger.WithCtxValues(ctx).WithValues(log.Kv{"task-id": r.TaskID, "to": dst})

	current := b.Snapshot()
	i, ok := current.TaskIndex(r.TaskID)
	if !ok {
		return nil, nil
	}
	task := current.Tasks[i]

	var hours *float64
	if task.Quadrant.Urgent() != dst.Urgent() {
		prompter := b.prompter
		if r.Prompter != nil {
			prompter = r.Prompter
		}
		h, err := b.requestHours(ctx, prompter, task, dst)
		if err != nil {
			return nil, fmt.Errorf("could not transfer task: %w", err)
		}
		hours = &h
	}

	var moved *model.Task
	err := b.update(func(cur model.Snapshot, now time.Time) (*model.Snapshot, error) {
		i, ok := cur.TaskIndex(r.TaskID)
		if !ok {
			return nil, nil
		}

		t := cur.Tasks[i].Clone()
		src := t.Quadrant
		if hours != nil {
			t.DueAt = now.Add(model.HoursToDuration(*hours))
		}
		t.Important = dst.Important()
		if t.Urgent(now) != dst.Urgent() {
			t.DueAt = now.Add(model.HoursToDuration(model.FallbackHours(dst.Urgent())))
		}

		if dst != src {
			if err := CheckCapacity(cur, dst, t.ID, b.capacity); err != nil {
				return nil, err
			}
		}

		buckets := model.GroupByQuadrant(cur.Clone().Tasks)
		hint := -1
		if r.From.Quadrant == src {
			hint = r.From.Index
		}
		j := bucketIndex(buckets[src], t.ID, hint)
		buckets[src] = slices.Delete(buckets[src], j, j+1)
		t.Quadrant = dst
		buckets[dst] = slices.Insert(buckets[dst], min(r.To.Index, len(buckets[dst])), t)

		next := cur.Clone()
		next.Tasks = buckets.Flatten()
		moved = &t
		return &next, nil
	})
	if err != nil {
		if errors.Is(err, model.ErrCapacityExceeded) {
			b.reject(ctx, capacityMsg(b.capacity, "Clear room first."))
		}
		return nil, fmt.Errorf("could not transfer task: %w", err)
	}
	if moved == nil {
		return nil, nil
	}

	logger.Debugf("Task transferred")
	b.notifier.Feedback(ctx, model.FeedbackSuccess)

	return moved, nil
}

// requestHours asks for the new due time of a task moving to dst, clamped onto
// the urgency axis of dst.
func (b *Board) requestHours(ctx context.Context, p HoursPrompter, t model.Task, dst model.Quadrant) (float64, error) {
	def := model.TransferHoursDefault(t.DueAt, b.now())
	hours, ok, err := p.RequestHours(ctx, def)
	if err != nil {
		return 0, fmt.Errorf("could not request hours: %w", err)
	}
	if !ok {
		return 0, fmt.Errorf("hours request for task %s declined: %w", t.ID, model.ErrCancelled)
	}
	if err := model.ValidateHours(hours); err != nil {
		b.reject(ctx, msgInvalidTransferHours)
		return 0, err
	}

	return model.ClampHours(hours, dst.Urgent()), nil
}

// bucketIndex returns the index of a task in its quadrant, trusting the hint
// only when it points to the same task.
func bucketIndex(tasks []model.Task, id string, hint int) int {
	if hint >= 0 && hint < len(tasks) && tasks[hint].ID == id {
		return hint
	}
	return slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID == id })
}
