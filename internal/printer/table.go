package printer

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/slok/compassq/internal/model"
)

// TablePrinter prints board information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintBoard prints one section per quadrant with its occupancy.
func (t *TablePrinter) PrintBoard(tasks []model.Task, quadrants ...model.Quadrant) error {
	if len(quadrants) == 0 {
		quadrants = model.Quadrants
	}

	now := time.Now()
	buckets := model.GroupByQuadrant(tasks)
	for i, q := range quadrants {
		if i > 0 {
			fmt.Fprintln(t.writer)
		}

		bucket := buckets[q]
		fmt.Fprintf(t.writer, "%s %s (%d/%d)\n", q, q.Title(), len(bucket), model.QuadrantCapacity)
		if len(bucket) == 0 {
			fmt.Fprintln(t.writer, "  (empty)")
			continue
		}

		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		for _, task := range bucket {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", task.ID, task.Title, RemainingLabel(task.DueAt, now))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	return nil
}

// PrintArchived prints archived tasks in a table format.
func (t *TablePrinter) PrintArchived(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "ID\tTITLE\tQUADRANT\tCOMPLETED")

	// Print rows.
	for _, task := range tasks {
		completed := "-"
		if task.CompletedAt != nil {
			completed = TimeAgo(*task.CompletedAt)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", task.ID, task.Title, task.Quadrant, completed)
	}

	return nil
}

// PrintTask prints detailed task information.
func (t *TablePrinter) PrintTask(task model.Task) error {
	important := "no"
	if task.Important {
		important = "yes"
	}

	fmt.Fprintf(t.writer, "ID:         %s\n", task.ID)
	fmt.Fprintf(t.writer, "Title:      %s\n", task.Title)
	fmt.Fprintf(t.writer, "Quadrant:   %s (%s)\n", task.Quadrant, task.Quadrant.Title())
	fmt.Fprintf(t.writer, "Important:  %s\n", important)
	fmt.Fprintf(t.writer, "Due:        %s\n", FormatTimestamp(task.DueAt))
	if task.CompletedAt == nil {
		fmt.Fprintf(t.writer, "Left:       %s\n", RemainingLabel(task.DueAt, time.Now()))
	}
	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(task.CreatedAt))
	if task.CompletedAt != nil {
		fmt.Fprintf(t.writer, "Completed:  %s\n", FormatTimestamp(*task.CompletedAt))
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
