package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"github.com/slok/compassq/internal/app/workspace"
	"github.com/slok/compassq/internal/model"
)

type WatchCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewWatchCommand returns the watch command.
func NewWatchCommand(rootCmd *RootCommand, app *kingpin.Application) *WatchCommand {
	c := &WatchCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("watch", "Keep the board classified as time passes and print it on every change.")
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c WatchCommand) Name() string { return c.Cmd.FullCommand() }

func (c WatchCommand) Run(ctx context.Context) error {
	return c.rootCmd.withWorkspace(ctx, nil, func(ws *workspace.Workspace) error {
		var g run.Group

		// Scheduler and saver.
		{
			ctx, cancel := context.WithCancel(ctx)
			g.Add(
				func() error {
					return ws.Run(ctx)
				},
				func(_ error) {
					cancel()
				},
			)
		}

		// Board printer.
		{
			ctx, cancel := context.WithCancel(ctx)
			g.Add(
				func() error {
					return c.printChanges(ctx, ws)
				},
				func(_ error) {
					cancel()
				},
			)
		}

		return g.Run()
	})
}

func (c WatchCommand) printChanges(ctx context.Context, ws *workspace.Workspace) error {
	changes, unsubscribe := ws.Board().Subscribe()
	defer unsubscribe()

	p := c.rootCmd.newPrinter(c.format)
	last := ^uint64(0)
	for {
		if v := ws.Board().Version(); v != last {
			last = v
			if err := p.PrintBoard(ws.Board().Snapshot().Tasks, model.Quadrants...); err != nil {
				return fmt.Errorf("could not print board: %w", err)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-changes:
		}
	}
}
