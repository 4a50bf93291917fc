package model

import "fmt"

// Snapshot is the full board state at one instant: the active tasks in display
// order and the archived tasks, most recently completed first.
type Snapshot struct {
	Tasks    []Task
	Archived []Task
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Tasks:    cloneTasks(s.Tasks),
		Archived: cloneTasks(s.Archived),
	}
}

// Validate validates the snapshot model.
func (s Snapshot) Validate() error {
	ids := make(map[string]struct{}, len(s.Tasks)+len(s.Archived))
	check := func(t Task) error {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, ok := ids[t.ID]; ok {
			return fmt.Errorf("task id %s is duplicated: %w", t.ID, ErrNotValid)
		}
		ids[t.ID] = struct{}{}
		return nil
	}

	for _, t := range s.Tasks {
		if err := check(t); err != nil {
			return err
		}
		if t.Archived() {
			return fmt.Errorf("active task %s can't have a completion time: %w", t.ID, ErrNotValid)
		}
	}

	for _, t := range s.Archived {
		if err := check(t); err != nil {
			return err
		}
		if !t.Archived() {
			return fmt.Errorf("archived task %s requires a completion time: %w", t.ID, ErrNotValid)
		}
	}

	return nil
}

// TaskIndex returns the position of an active task.
func (s Snapshot) TaskIndex(id string) (int, bool) { return indexOf(s.Tasks, id) }

// ArchivedIndex returns the position of an archived task.
func (s Snapshot) ArchivedIndex(id string) (int, bool) { return indexOf(s.Archived, id) }

// CountQuadrant counts the active tasks stored in a quadrant, ignoring the task
// with excludeID (use an empty ID to count all of them).
func (s Snapshot) CountQuadrant(q Quadrant, excludeID string) int {
	n := 0
	for _, t := range s.Tasks {
		if t.Quadrant == q && (excludeID == "" || t.ID != excludeID) {
			n++
		}
	}
	return n
}

// Buckets groups active tasks by quadrant keeping their relative order.
type Buckets map[Quadrant][]Task

// GroupByQuadrant splits tasks by their stored quadrant.
func GroupByQuadrant(tasks []Task) Buckets {
	b := make(Buckets, len(Quadrants))
	for _, q := range Quadrants {
		b[q] = []Task{}
	}
	for _, t := range tasks {
		b[t.Quadrant] = append(b[t.Quadrant], t)
	}
	return b
}

// Flatten concatenates the buckets in canonical quadrant order.
func (b Buckets) Flatten() []Task {
	tasks := []Task{}
	for _, q := range Quadrants {
		tasks = append(tasks, b[q]...)
	}
	return tasks
}

func cloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return []Task{}
	}

	c := make([]Task, len(tasks))
	for i, t := range tasks {
		c[i] = t.Clone()
	}
	return c
}

func indexOf(tasks []Task, id string) (int, bool) {
	for i, t := range tasks {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}
