package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/compassq/internal/app/export"
	"github.com/slok/compassq/internal/app/workspace"
)

type ExportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	path string
}

// NewExportCommand returns the export command.
func NewExportCommand(rootCmd *RootCommand, app *kingpin.Application) *ExportCommand {
	c := &ExportCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("export", "Write the board to a JSON or YAML file.")
	c.Cmd.Arg("path", "Destination file, .yaml or .yml selects YAML.").Required().StringVar(&c.path)

	return c
}

func (c ExportCommand) Name() string { return c.Cmd.FullCommand() }

func (c ExportCommand) Run(ctx context.Context) error {
	return c.rootCmd.withWorkspace(ctx, nil, func(ws *workspace.Workspace) error {
		svc, err := export.NewService(export.ServiceConfig{
			Board:  ws.Board(),
			Logger: c.rootCmd.Logger,
		})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}

		res, err := svc.Run(ctx, export.Request{Path: c.path})
		if err != nil {
			return fmt.Errorf("could not export board: %w", err)
		}

		msg := fmt.Sprintf("Exported %d tasks and %d archived tasks to %s", res.Tasks, res.Archived, res.Path)
		return c.rootCmd.newPrinter(formatTable).PrintMessage(msg)
	})
}
