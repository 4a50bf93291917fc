package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/compassq/internal/app/workspace"
	"github.com/slok/compassq/internal/matrix"
	"github.com/slok/compassq/internal/model"
)

type MoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id       string
	quadrant string
	index    int
	hours    float64
	hoursSet bool
	format   string
}

// NewMoveCommand returns the move command.
func NewMoveCommand(rootCmd *RootCommand, app *kingpin.Application) *MoveCommand {
	c := &MoveCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("move", "Move a task to a quadrant position, asking for new hours when its urgency changes.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)
	c.Cmd.Arg("quadrant", "Destination quadrant (Q1, Q2, Q3, Q4).").Required().StringVar(&c.quadrant)
	c.Cmd.Flag("index", "Position inside the destination quadrant.").Default("0").IntVar(&c.index)
	c.Cmd.Flag("hours", "Hours until due when the urgency changes, skips the question.").IsSetByUser(&c.hoursSet).Float64Var(&c.hours)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c MoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c MoveCommand) Run(ctx context.Context) error {
	dst, err := model.ParseQuadrant(c.quadrant)
	if err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}

	prompter := newLinePrompter(c.rootCmd.Stdin, c.rootCmd.Stderr)
	if c.hoursSet {
		prompter = matrix.AnswerHours(c.hours)
	}

	return c.rootCmd.withWorkspace(ctx, prompter, func(ws *workspace.Workspace) error {
		current, err := ws.Board().GetTask(c.id)
		if err != nil {
			return fmt.Errorf("could not get task: %w", err)
		}
		if current.Archived() {
			return fmt.Errorf("task %s is archived, restore it first: %w", c.id, model.ErrNotValid)
		}

		task, err := ws.Board().Transfer(ctx, matrix.TransferRequest{
			TaskID: c.id,
			From:   matrix.Position{Quadrant: current.Quadrant, Index: -1},
			To:     matrix.Position{Quadrant: dst, Index: c.index},
		})
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
