package matrix

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
)

const (
	MinWakeDelay     = 500 * time.Millisecond
	MaxWakeDelay     = 10 * time.Minute
	DefaultWakeDelay = time.Minute
)

// WakeDelay returns how long until the next active task becomes urgent,
// clamped to [MinWakeDelay, MaxWakeDelay]. DefaultWakeDelay is returned when
// no task is waiting to become urgent.
func WakeDelay(tasks []model.Task, now time.Time) time.Duration {
	var next time.Duration
	for _, t := range tasks {
		d := t.DueAt.Sub(now) - model.UrgencyThreshold
		if d > 0 && (next == 0 || d < next) {
			next = d
		}
	}

	switch {
	case next == 0:
		return DefaultWakeDelay
	case next < MinWakeDelay:
		return MinWakeDelay
	case next > MaxWakeDelay:
		return MaxWakeDelay
	}
	return next
}

// RecomputeQuadrants classifies the tasks again at now. It returns a new slice
// with the same order and the number of tasks whose quadrant changed.
func RecomputeQuadrants(tasks []model.Task, now time.Time) ([]model.Task, int) {
	res := make([]model.Task, 0, len(tasks))
	changed := 0
	for _, t := range tasks {
		t = t.Clone()
		if q := model.Classify(t.Important, t.DueAt, now); q != t.Quadrant {
			t.Quadrant = q
			changed++
		}
		res = append(res, t)
	}
	return res, changed
}

// WakeDelay returns the delay until the board needs to be reclassified.
func (b *Board) WakeDelay() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return WakeDelay(b.snapshot.Tasks, b.now())
}

// Reclassify moves the active tasks whose urgency changed with time to their
// new quadrant. Capacity is not enforced, time can't be rejected. Nothing is
// done while a transfer is in flight. Returns the number of moved tasks.
func (b *Board) Reclassify(ctx context.Context) (int, error) {
	changed := 0
	err := b.update(func(cur model.Snapshot, now time.Time) (*model.Snapshot, error) {
		if b.dragging > 0 {
			return nil, nil
		}

		tasks, n := RecomputeQuadrants(cur.Tasks, now)
		if n == 0 {
			return nil, nil
		}

		next := cur.Clone()
		next.Tasks = tasks
		changed = n
		return &next, nil
	})
	if err != nil {
		return 0, fmt.Errorf("could not reclassify tasks: %w", err)
	}

	if changed > 0 {
		b.logger.WithCtxValues(ctx).WithValues(log.Kv{"changed": changed}).Infof("Tasks reclassified")
	}

	return changed, nil
}

// Replace swaps the whole board content, like a fresh load. The new tasks are
// classified at the current time and capacity is not enforced.
func (b *Board) Replace(ctx context.Context, s model.Snapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("could not replace board: %w", err)
	}

	err := b.update(func(_ model.Snapshot, now time.Time) (*model.Snapshot, error) {
		next := s.Clone()
		next.Tasks, _ = RecomputeQuadrants(next.Tasks, now)
		return &next, nil
	})
	if err != nil {
		return fmt.Errorf("could not replace board: %w", err)
	}

	b.logger.WithCtxValues(ctx).WithValues(log.Kv{"tasks": len(s.Tasks), "archived": len(s.Archived)}).Infof("Board replaced")

	return nil
}
