package printer

import "github.com/slok/compassq/internal/model"

// Printer knows how to print board information in different formats.
type Printer interface {
	// PrintBoard prints active tasks grouped by quadrant, only the given
	// quadrants when any.
	PrintBoard(tasks []model.Task, quadrants ...model.Quadrant) error
	PrintArchived(tasks []model.Task) error
	PrintTask(task model.Task) error
	PrintMessage(msg string) error
}
