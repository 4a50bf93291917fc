package lib

import (
	"errors"
	"time"

	"github.com/slok/compassq/internal/matrix"
	"github.com/slok/compassq/internal/model"
	"github.com/slok/compassq/internal/notify"
)

// StorageType identifies where the board is persisted.
type StorageType string

const (
	// StorageSQLite keeps the board in a local SQLite database.
	StorageSQLite StorageType = "sqlite"
	// StorageRedis keeps the board as a JSON document in a Redis key.
	StorageRedis StorageType = "redis"
	// StorageFile keeps the board in a JSON or YAML file, chosen by extension.
	StorageFile StorageType = "file"
	// StorageMemory keeps the board in memory only.
	// Use this for unit testing, nothing survives [Client.Close].
	StorageMemory StorageType = "memory"
)

// Quadrant identifies a cell of the priority matrix.
type Quadrant string

const (
	// QuadrantUrgentImportant is Q1, do first.
	QuadrantUrgentImportant Quadrant = "Q1"
	// QuadrantImportant is Q2, not urgent but important.
	QuadrantImportant Quadrant = "Q2"
	// QuadrantUrgent is Q3, urgent but not important.
	QuadrantUrgent Quadrant = "Q3"
	// QuadrantOther is Q4, neither urgent nor important.
	QuadrantOther Quadrant = "Q4"
)

// Quadrants lists the quadrants in display order.
var Quadrants = []Quadrant{QuadrantUrgentImportant, QuadrantImportant, QuadrantUrgent, QuadrantOther}

// Capacity is the maximum number of active tasks a quadrant accepts.
const Capacity = model.QuadrantCapacity

// Task is a board task returned by the SDK.
//
// This is a read-only copy of the task at the time of the API call.
type Task struct {
	// ID is the unique identifier (ULID) assigned at creation.
	ID string
	// Title is the trimmed, non empty title.
	Title string
	// Important is the importance flag.
	Important bool
	// Quadrant is where the task sits. Archived tasks keep their last quadrant.
	Quadrant Quadrant
	// DueAt is when the task is due, the task is urgent within 24h of it.
	DueAt time.Time
	// CreatedAt is when the task was created.
	CreatedAt time.Time
	// CompletedAt is when the task was completed. Nil for active tasks.
	CompletedAt *time.Time
}

// Board is a copy of the whole board.
type Board struct {
	// Tasks are the active tasks in board order.
	Tasks []Task
	// Archived are the completed tasks, most recent first.
	Archived []Task
}

// CreateTaskOpts are the values of a new task.
type CreateTaskOpts struct {
	Title     string
	Important bool
	// Urgent selects the urgency of the task, Hours are moved onto it: urgent
	// tasks are due in at most 24h and non urgent ones in at least 25h.
	Urgent bool
	// Hours until the task is due, counted from now.
	Hours float64
}

// EditTaskOpts are the new values of a task, all of them replace the current ones.
type EditTaskOpts struct {
	Title     string
	Hours     float64
	Urgent    bool
	Important bool
}

// MoveTaskOpts are the optional settings of a move.
type MoveTaskOpts struct {
	// Hours answers the hours question without asking the prompter. They are
	// clamped onto the urgency of the destination.
	Hours *float64
	// FromIndex is where the caller saw the task inside its quadrant, a wrong
	// hint is ignored.
	FromIndex *int
}

// Feedback is the outcome signal of an operation.
type Feedback = model.Feedback

const (
	FeedbackSuccess     = model.FeedbackSuccess
	FeedbackRejection   = model.FeedbackRejection
	FeedbackDestructive = model.FeedbackDestructive
)

// Notifier receives the user facing messages and outcome signals of the board.
type Notifier = notify.Notifier

// HoursPrompter is asked for new hours when a move crosses the urgency
// boundary. Answering false cancels the move.
type HoursPrompter = matrix.HoursPrompter

// PromptFunc adapts a function to a [HoursPrompter].
type PromptFunc = matrix.PromptFunc

var (
	// ErrNotFound is returned when a task does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a task id is already used.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned for invalid input.
	ErrNotValid = errors.New("not valid")
	// ErrCapacityExceeded is returned when the destination quadrant is full.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrCancelled is returned when the hours question of a move is declined.
	ErrCancelled = errors.New("cancelled")
)

// --- Internal conversion helpers ---

func fromInternalTask(t model.Task) Task {
	res := Task{
		ID:        t.ID,
		Title:     t.Title,
		Important: t.Important,
		Quadrant:  Quadrant(t.Quadrant),
		DueAt:     t.DueAt,
		CreatedAt: t.CreatedAt,
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		res.CompletedAt = &c
	}
	return res
}

func fromInternalTaskPtr(t *model.Task) *Task {
	if t == nil {
		return nil
	}
	res := fromInternalTask(*t)
	return &res
}

func fromInternalTaskList(ts []model.Task) []Task {
	result := make([]Task, 0, len(ts))
	for _, t := range ts {
		result = append(result, fromInternalTask(t))
	}
	return result
}

func fromInternalSnapshot(s model.Snapshot) Board {
	return Board{
		Tasks:    fromInternalTaskList(s.Tasks),
		Archived: fromInternalTaskList(s.Archived),
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case isInternalError(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case isInternalError(err, model.ErrAlreadyExists):
		return joinErrors(err, ErrAlreadyExists)
	case isInternalError(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	case isInternalError(err, model.ErrCapacityExceeded):
		return joinErrors(err, ErrCapacityExceeded)
	case isInternalError(err, model.ErrCancelled):
		return joinErrors(err, ErrCancelled)
	default:
		return err
	}
}

func isInternalError(err, target error) bool {
	for {
		if err == target {
			return true
		}
		unwrapped := unwrapSingle(err)
		if unwrapped == nil {
			return false
		}
		err = unwrapped
	}
}

func unwrapSingle(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }
