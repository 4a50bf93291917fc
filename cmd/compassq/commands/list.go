package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/compassq/internal/app/list"
	"github.com/slok/compassq/internal/app/workspace"
	"github.com/slok/compassq/internal/model"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	quadrantFilter string
	format         string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "Show the board.")
	c.Cmd.Flag("quadrant", "Only show this quadrant (Q1, Q2, Q3, Q4).").StringVar(&c.quadrantFilter)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	// Parse quadrant filter if provided.
	var quadrantFilter *model.Quadrant
	quadrants := model.Quadrants
	if c.quadrantFilter != "" {
		q, err := model.ParseQuadrant(c.quadrantFilter)
		if err != nil {
			return fmt.Errorf("invalid quadrant filter: %w", err)
		}
		quadrantFilter = &q
		quadrants = []model.Quadrant{q}
	}

	return c.rootCmd.withWorkspace(ctx, nil, func(ws *workspace.Workspace) error {
		svc, err := list.NewService(list.ServiceConfig{
			Board:  ws.Board(),
			Logger: c.rootCmd.Logger,
		})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}

		tasks, err := svc.Run(ctx, list.Request{QuadrantFilter: quadrantFilter})
		if err != nil {
			return fmt.Errorf("could not list tasks: %w", err)
		}

		if err := c.rootCmd.newPrinter(c.format).PrintBoard(tasks, quadrants...); err != nil {
			return fmt.Errorf("could not print board: %w", err)
		}

		return nil
	})
}
