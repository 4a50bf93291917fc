package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/compassq/internal/app/list"
	"github.com/slok/compassq/internal/app/workspace"
	"github.com/slok/compassq/internal/model"
)

// NewArchiveCommand returns the archive parent command.
func NewArchiveCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("archive", "Manage completed tasks.")
}

// ArchiveListCommand lists completed tasks, most recent first.
type ArchiveListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewArchiveListCommand returns the archive list command.
func NewArchiveListCommand(rootCmd *RootCommand, archiveCmd *kingpin.CmdClause) *ArchiveListCommand {
	c := &ArchiveListCommand{rootCmd: rootCmd}

	c.Cmd = archiveCmd.Command("list", "List completed tasks.")
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c ArchiveListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ArchiveListCommand) Run(ctx context.Context) error {
	return c.rootCmd.withWorkspace(ctx, nil, func(ws *workspace.Workspace) error {
		svc, err := list.NewService(list.ServiceConfig{
			Board:  ws.Board(),
			Logger: c.rootCmd.Logger,
		})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}

		tasks, err := svc.Run(ctx, list.Request{Archived: true})
		if err != nil {
			return fmt.Errorf("could not list archived tasks: %w", err)
		}

		if err := c.rootCmd.newPrinter(c.format).PrintArchived(tasks); err != nil {
			return fmt.Errorf("could not print archive: %w", err)
		}

		return nil
	})
}

// ArchiveRestoreCommand moves a completed task back to the board.
type ArchiveRestoreCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewArchiveRestoreCommand returns the archive restore command.
func NewArchiveRestoreCommand(rootCmd *RootCommand, archiveCmd *kingpin.CmdClause) *ArchiveRestoreCommand {
	c := &ArchiveRestoreCommand{rootCmd: rootCmd}

	c.Cmd = archiveCmd.Command("restore", "Restore a completed task to the board.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)

	return c
}

func (c ArchiveRestoreCommand) Name() string { return c.Cmd.FullCommand() }

func (c ArchiveRestoreCommand) Run(ctx context.Context) error {
	return c.rootCmd.withWorkspace(ctx, nil, func(ws *workspace.Workspace) error {
		task, err := ws.Board().Restore(ctx, c.id)
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("archived task %s: %w", c.id, model.ErrNotFound)
		}

		return c.rootCmd.newPrinter(formatTable).PrintMessage(fmt.Sprintf("Restored task %s into %s", task.Title, task.Quadrant))
	})
}

// ArchiveRemoveCommand deletes a completed task for good.
type ArchiveRemoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewArchiveRemoveCommand returns the archive rm command.
func NewArchiveRemoveCommand(rootCmd *RootCommand, archiveCmd *kingpin.CmdClause) *ArchiveRemoveCommand {
	c := &ArchiveRemoveCommand{rootCmd: rootCmd}

	c.Cmd = archiveCmd.Command("rm", "Delete a completed task.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)

	return c
}

func (c ArchiveRemoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c ArchiveRemoveCommand) Run(ctx context.Context) error {
	return c.rootCmd.withWorkspace(ctx, nil, func(ws *workspace.Workspace) error {
		task, err := ws.Board().DeleteArchived(ctx, c.id)
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("archived task %s: %w", c.id, model.ErrNotFound)
		}

		return c.rootCmd.newPrinter(formatTable).PrintMessage(fmt.Sprintf("Removed archived task: %s", task.Title))
	})
}
