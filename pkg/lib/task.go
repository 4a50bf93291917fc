package lib

import (
	"context"

	"github.com/slok/compassq/internal/matrix"
	"github.com/slok/compassq/internal/model"
)

// CreateTask adds a task at the front of the board.
//
// Returns [ErrNotValid] for an empty title or invalid hours, and
// [ErrCapacityExceeded] if the destination quadrant is full.
func (c *Client) CreateTask(ctx context.Context, opts CreateTaskOpts) (*Task, error) {
	t, err := c.board.Create(ctx, matrix.CreateRequest{
		Title:     opts.Title,
		Important: opts.Important,
		Urgent:    opts.Urgent,
		Hours:     opts.Hours,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalTaskPtr(t), nil
}

// EditTask replaces the title, due time and importance of an active task.
// The edit is applied as a whole or not at all.
//
// Returns a nil task without error if no active task has the id.
func (c *Client) EditTask(ctx context.Context, id string, opts EditTaskOpts) (*Task, error) {
	t, err := c.board.Edit(ctx, matrix.EditRequest{
		ID:        id,
		Title:     opts.Title,
		Hours:     opts.Hours,
		Urgent:    opts.Urgent,
		Important: opts.Important,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalTaskPtr(t), nil
}

// MoveTask moves an active task to a position of a quadrant. The task takes
// the importance of the destination, when the urgency changes new hours are
// asked to the prompter (or taken from opts). Pass nil opts for defaults.
//
// Returns [ErrCancelled] if the hours question is declined and a nil task
// without error if no active task has the id.
func (c *Client) MoveTask(ctx context.Context, id string, to Quadrant, index int, opts *MoveTaskOpts) (*Task, error) {
	current, err := c.board.GetTask(id)
	if err != nil || current.Archived() {
		return nil, nil
	}

	req := matrix.TransferRequest{
		TaskID: id,
		From:   matrix.Position{Quadrant: current.Quadrant, Index: -1},
		To:     matrix.Position{Quadrant: model.Quadrant(to), Index: index},
	}
	if opts != nil {
		if opts.Hours != nil {
			req.Prompter = matrix.AnswerHours(*opts.Hours)
		}
		if opts.FromIndex != nil {
			req.From.Index = *opts.FromIndex
		}
	}

	t, err := c.board.Transfer(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalTaskPtr(t), nil
}

// CompleteTask moves an active task to the front of the archive.
func (c *Client) CompleteTask(ctx context.Context, id string) (*Task, error) {
	t, err := c.board.Complete(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return fromInternalTaskPtr(t), nil
}

// DeleteTask removes an active task without archiving it.
func (c *Client) DeleteTask(ctx context.Context, id string) (*Task, error) {
	t, err := c.board.Delete(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return fromInternalTaskPtr(t), nil
}

// RestoreTask moves an archived task back to the front of the board,
// classified at the current time.
//
// Returns [ErrCapacityExceeded] if its quadrant is full.
func (c *Client) RestoreTask(ctx context.Context, id string) (*Task, error) {
	t, err := c.board.Restore(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return fromInternalTaskPtr(t), nil
}

// DeleteArchivedTask removes a task from the archive.
func (c *Client) DeleteArchivedTask(ctx context.Context, id string) (*Task, error) {
	t, err := c.board.DeleteArchived(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return fromInternalTaskPtr(t), nil
}

// GetTask returns an active or archived task.
//
// Returns [ErrNotFound] if no task has the id.
func (c *Client) GetTask(_ context.Context, id string) (*Task, error) {
	t, err := c.board.GetTask(id)
	if err != nil {
		return nil, mapError(err)
	}
	return fromInternalTaskPtr(t), nil
}
