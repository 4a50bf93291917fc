package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/compassq/internal/app/workspace"
	"github.com/slok/compassq/internal/matrix"
	"github.com/slok/compassq/internal/model"
)

type EditCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     string
	format string
	values editValues
}

// editValues are the edit flags, unset ones keep the current task values.
type editValues struct {
	title        string
	titleSet     bool
	hours        float64
	hoursSet     bool
	urgent       bool
	urgentSet    bool
	important    bool
	importantSet bool
}

// NewEditCommand returns the edit command.
func NewEditCommand(rootCmd *RootCommand, app *kingpin.Application) *EditCommand {
	c := &EditCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("edit", "Edit an active task.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)
	c.Cmd.Flag("title", "New title.").IsSetByUser(&c.values.titleSet).StringVar(&c.values.title)
	c.Cmd.Flag("hours", "Hours until due, counted from now.").IsSetByUser(&c.values.hoursSet).Float64Var(&c.values.hours)
	c.Cmd.Flag("urgent", "The task is due within 24 hours (--no-urgent to unset).").IsSetByUser(&c.values.urgentSet).BoolVar(&c.values.urgent)
	c.Cmd.Flag("important", "The task is important (--no-important to unset).").IsSetByUser(&c.values.importantSet).BoolVar(&c.values.important)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c EditCommand) Name() string { return c.Cmd.FullCommand() }

func (c EditCommand) Run(ctx context.Context) error {
	return c.rootCmd.withWorkspace(ctx, nil, func(ws *workspace.Workspace) error {
		current, err := ws.Board().GetTask(c.id)
		if err != nil {
			return fmt.Errorf("could not get task: %w", err)
		}
		if current.Archived() {
			return fmt.Errorf("task %s is archived, restore it first: %w", c.id, model.ErrNotValid)
		}

		task, err := ws.Board().Edit(ctx, c.values.request(*current, time.Now()))
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("task %s: %w", c.id, model.ErrNotFound)
		}

		if err := c.rootCmd.newPrinter(c.format).PrintTask(*task); err != nil {
			return fmt.Errorf("could not print task: %w", err)
		}

		return nil
	})
}

// request fills the edit form from the task and applies the flags on top. When
// the urgency is switched without hours, hours matching the new urgency are
// suggested.
func (v editValues) request(task model.Task, now time.Time) matrix.EditRequest {
	req := matrix.EditRequest{
		ID:        task.ID,
		Title:     task.Title,
		Hours:     model.EditHoursDefault(task.DueAt, now),
		Urgent:    task.Quadrant.Urgent(),
		Important: task.Important,
	}

	if v.titleSet {
		req.Title = v.title
	}
	if v.importantSet {
		req.Important = v.important
	}
	if v.urgentSet {
		req.Urgent = v.urgent
		if !v.hoursSet {
			req.Hours = model.UrgentToggleHours(req.Hours, req.Urgent)
		}
	}
	if v.hoursSet {
		req.Hours = v.hours
	}

	return req
}
