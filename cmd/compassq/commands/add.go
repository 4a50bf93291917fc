package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/compassq/internal/app/workspace"
	"github.com/slok/compassq/internal/matrix"
)

type AddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	title     string
	important bool
	urgent    bool
	hours     float64
	format    string
}

// NewAddCommand returns the add command.
func NewAddCommand(rootCmd *RootCommand, app *kingpin.Application) *AddCommand {
	c := &AddCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("add", "Add a task to the board.")
	c.Cmd.Arg("title", "Task title.").Required().StringVar(&c.title)
	c.Cmd.Flag("important", "The task is important.").BoolVar(&c.important)
	c.Cmd.Flag("urgent", "The task is due within 24 hours.").BoolVar(&c.urgent)
	c.Cmd.Flag("hours", "Hours until the task is due, moved onto the urgency selected.").Default("24").Float64Var(&c.hours)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c AddCommand) Name() string { return c.Cmd.FullCommand() }

func (c AddCommand) Run(ctx context.Context) error {
	return c.rootCmd.withWorkspace(ctx, nil, func(ws *workspace.Workspace) error {
		task, err := ws.Board().Create(ctx, matrix.CreateRequest{
			Title:     c.title,
			Important: c.important,
			Urgent:    c.urgent,
			Hours:     c.hours,
		})
		if err != nil {
			return err
		}

		if err := c.rootCmd.newPrinter(c.format).PrintTask(*task); err != nil {
			return fmt.Errorf("could not print task: %w", err)
		}

		return nil
	})
}
