package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/compassq/internal/app/importer"
	"github.com/slok/compassq/internal/app/workspace"
)

type ImportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	path string
}

// NewImportCommand returns the import command.
func NewImportCommand(rootCmd *RootCommand, app *kingpin.Application) *ImportCommand {
	c := &ImportCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("import", "Replace the board with a JSON or YAML export.")
	c.Cmd.Arg("path", "Source file, .yaml or .yml selects YAML.").Required().StringVar(&c.path)

	return c
}

func (c ImportCommand) Name() string { return c.Cmd.FullCommand() }

func (c ImportCommand) Run(ctx context.Context) error {
	return c.rootCmd.withWorkspace(ctx, nil, func(ws *workspace.Workspace) error {
		svc, err := importer.NewService(importer.ServiceConfig{
			Board:  ws.Board(),
			Logger: c.rootCmd.Logger,
		})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}

		s, err := svc.Run(ctx, importer.Request{Path: c.path})
		if err != nil {
			return fmt.Errorf("could not import board: %w", err)
		}

		msg := fmt.Sprintf("Imported %d tasks and %d archived tasks from %s", len(s.Tasks), len(s.Archived), c.path)
		return c.rootCmd.newPrinter(formatTable).PrintMessage(msg)
	})
}
