package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/compassq/internal/app/workspace"
	"github.com/slok/compassq/internal/model"
)

type DoneCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewDoneCommand returns the done command.
func NewDoneCommand(rootCmd *RootCommand, app *kingpin.Application) *DoneCommand {
	c := &DoneCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("done", "Complete a task and move it to the archive.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)

	return c
}

func (c DoneCommand) Name() string { return c.Cmd.FullCommand() }

func (c DoneCommand) Run(ctx context.Context) error {
	return c.rootCmd.withWorkspace(ctx, nil, func(ws *workspace.Workspace) error {
		task, err := ws.Board().Complete(ctx, c.id)
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("active task %s: %w", c.id, model.ErrNotFound)
		}

		return c.rootCmd.newPrinter(formatTable).PrintMessage(fmt.Sprintf("Completed task: %s", task.Title))
	})
}
