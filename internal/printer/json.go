package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/compassq/internal/model"
)

// JSONPrinter prints board information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type taskOutput struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Important   bool       `json:"important"`
	Quadrant    string     `json:"quadrant"`
	DueAt       time.Time  `json:"due_at"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type quadrantOutput struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Count    int          `json:"count"`
	Capacity int          `json:"capacity"`
	Tasks    []taskOutput `json:"tasks"`
}

type boardOutput struct {
	Quadrants []quadrantOutput `json:"quadrants"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

func newTaskOutput(t model.Task) taskOutput {
	out := taskOutput{
		ID:        t.ID,
		Title:     t.Title,
		Important: t.Important,
		Quadrant:  string(t.Quadrant),
		DueAt:     t.DueAt.UTC(),
		CreatedAt: t.CreatedAt.UTC(),
	}
	if t.CompletedAt != nil {
		utcTime := t.CompletedAt.UTC()
		out.CompletedAt = &utcTime
	}
	return out
}

func newTaskOutputs(tasks []model.Task) []taskOutput {
	res := make([]taskOutput, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, newTaskOutput(t))
	}
	return res
}

// PrintBoard prints the quadrants with their tasks in JSON format.
func (j *JSONPrinter) PrintBoard(tasks []model.Task, quadrants ...model.Quadrant) error {
	if len(quadrants) == 0 {
		quadrants = model.Quadrants
	}

	buckets := model.GroupByQuadrant(tasks)
	output := boardOutput{Quadrants: []quadrantOutput{}}
	for _, q := range quadrants {
		output.Quadrants = append(output.Quadrants, quadrantOutput{
			ID:       string(q),
			Title:    q.Title(),
			Count:    len(buckets[q]),
			Capacity: model.QuadrantCapacity,
			Tasks:    newTaskOutputs(buckets[q]),
		})
	}

	return j.encode(output)
}

// PrintArchived prints archived tasks in JSON format.
func (j *JSONPrinter) PrintArchived(tasks []model.Task) error {
	return j.encode(newTaskOutputs(tasks))
}

// PrintTask prints a task in JSON format.
func (j *JSONPrinter) PrintTask(task model.Task) error {
	return j.encode(newTaskOutput(task))
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
