package matrix

import (
	"fmt"

	"github.com/slok/compassq/internal/model"
)

// CheckCapacity returns model.ErrCapacityExceeded when the quadrant already
// holds capacity active tasks. The task with excludeID is not counted, so a
// task never competes with itself.
func CheckCapacity(s model.Snapshot, q model.Quadrant, excludeID string, capacity int) error {
	n := s.CountQuadrant(q, excludeID)
	if n >= capacity {
		return fmt.Errorf("quadrant %s holds %d tasks (limit %d): %w", q, n, capacity, model.ErrCapacityExceeded)
	}
	return nil
}

func capacityMsg(capacity int, hint string) string {
	return fmt.Sprintf("Quadrant limit reached (%d). %s", capacity, hint)
}
