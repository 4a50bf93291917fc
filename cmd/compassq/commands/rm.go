package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/compassq/internal/app/workspace"
	"github.com/slok/compassq/internal/model"
)

type RemoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewRemoveCommand returns the remove command.
func NewRemoveCommand(rootCmd *RootCommand, app *kingpin.Application) *RemoveCommand {
	c := &RemoveCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("rm", "Delete an active task without archiving it.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)

	return c
}

func (c RemoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c RemoveCommand) Run(ctx context.Context) error {
	return c.rootCmd.withWorkspace(ctx, nil, func(ws *workspace.Workspace) error {
		task, err := ws.Board().Delete(ctx, c.id)
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("active task %s: %w", c.id, model.ErrNotFound)
		}

		return c.rootCmd.newPrinter(formatTable).PrintMessage(fmt.Sprintf("Removed task: %s", task.Title))
	})
}
