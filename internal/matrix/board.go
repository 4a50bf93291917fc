package matrix

import (
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
	"github.com/slok/compassq/internal/notify"
)

// BoardConfig is the configuration for the board.
type BoardConfig struct {
	// Snapshot is the initial state, normally loaded from a repository.
	Snapshot model.Snapshot
	Notifier notify.Notifier
	Prompter HoursPrompter
	// Capacity is the maximum number of active tasks per quadrant.
	// Default: model.QuadrantCapacity.
	Capacity int
	Now      func() time.Time
	NewID    func() string
	Logger   log.Logger
}

func (c *BoardConfig) defaults() error {
	if err := c.Snapshot.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	if c.Notifier == nil {
		c.Notifier = notify.Noop
	}
	if c.Prompter == nil {
		c.Prompter = DeclinePrompter
	}
	if c.Capacity < 0 {
		return fmt.Errorf("capacity can't be negative")
	}
	if c.Capacity == 0 {
		c.Capacity = model.QuadrantCapacity
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewID == nil {
		c.NewID = func() string { return ulid.Make().String() }
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "matrix.Board"})
	return nil
}

// Board is the single writer of the task snapshot. Every mutation builds a new
// snapshot from the current one and replaces it as a whole, readers always get
// a complete snapshot.
type Board struct {
	mu       sync.RWMutex
	snapshot model.Snapshot
	version  uint64
	dragging int
	subs     map[int]chan struct{}
	nextSub  int

	notifier notify.Notifier
	prompter HoursPrompter
	capacity int
	now      func() time.Time
	newID    func() string
	logger   log.Logger
}

// NewBoard creates a new board.
func NewBoard(cfg BoardConfig) (*Board, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Board{
		snapshot: cfg.Snapshot.Clone(),
		subs:     map[int]chan struct{}{},
		notifier: cfg.Notifier,
		prompter: cfg.Prompter,
		capacity: cfg.Capacity,
		now:      cfg.Now,
		newID:    cfg.NewID,
		logger:   cfg.Logger,
	}, nil
}

// Snapshot returns a copy of the current state.
func (b *Board) Snapshot() model.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot.Clone()
}

// Version is increased on every committed change.
func (b *Board) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Dragging returns true while a transfer is in flight.
func (b *Board) Dragging() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dragging > 0
}

// GetTask returns an active or archived task by ID.
func (b *Board) GetTask(id string) (*model.Task, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i, ok := b.snapshot.TaskIndex(id); ok {
		t := b.snapshot.Tasks[i].Clone()
		return &t, nil
	}
	if i, ok := b.snapshot.ArchivedIndex(id); ok {
		t := b.snapshot.Archived[i].Clone()
		return &t, nil
	}

	return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
}

// Subscribe returns a channel that receives a signal after every committed
// change and every transfer start or end. Signals are coalesced, a slow
// subscriber only misses intermediate ones. The returned func unsubscribes.
func (b *Board) Subscribe() (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSub
	b.nextSub++
	ch := make(chan struct{}, 1)
	b.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// update runs fn with the current snapshot under the write lock and commits the
// snapshot it returns. A nil snapshot without error means nothing to change.
// fn must not modify the snapshot it receives.
func (b *Board) update(fn func(current model.Snapshot, now time.Time) (*model.Snapshot, error)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := fn(b.snapshot, b.now())
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}

	b.snapshot = *next
	b.version++
	b.broadcast()

	return nil
}

func (b *Board) beginDrag() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dragging++
	b.broadcast()
}

func (b *Board) endDrag() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dragging--
	b.broadcast()
}

// broadcast must be called with the lock held.
func (b *Board) broadcast() {
	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
