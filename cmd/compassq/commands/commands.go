package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/compassq/internal/app/workspace"
	"github.com/slok/compassq/internal/conventions"
	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/matrix"
	"github.com/slok/compassq/internal/notify"
	"github.com/slok/compassq/internal/printer"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	formatTable = "table"
	formatJSON  = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	Storage    string
	DBPath     string
	RedisURL   string
	RedisKey   string
	FilePath   string
	Bell       bool

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("bell", "Ring the terminal bell on rejected and destructive operations.").BoolVar(&c.Bell)

	dataDir := conventions.DataDir(homedir.HomeDir())
	app.Flag("storage", "Board storage backend.").Default(string(workspace.StorageSQLite)).
		EnumVar(&c.Storage, string(workspace.StorageSQLite), string(workspace.StorageRedis), string(workspace.StorageFile))
	app.Flag("db-path", "Path to the SQLite database file.").Envar("COMPASSQ_DB_PATH").Default(conventions.DBPath(dataDir)).StringVar(&c.DBPath)
	app.Flag("redis-url", "Redis URL used by the redis storage.").Default(conventions.RedisURL).StringVar(&c.RedisURL)
	app.Flag("redis-key", "Redis key the board is stored under.").Default(conventions.RedisKey).StringVar(&c.RedisKey)
	app.Flag("file-path", "Path to the JSON or YAML file used by the file storage.").Default(conventions.DataFilePath(dataDir)).StringVar(&c.FilePath)

	return c
}

// OpenWorkspace loads the board from the selected storage. Rejection messages
// go to stderr so they don't mix with printed output.
func (c *RootCommand) OpenWorkspace(ctx context.Context, prompter matrix.HoursPrompter) (*workspace.Workspace, error) {
	writer, err := notify.NewWriterNotifier(notify.WriterNotifierConfig{
		Out:  c.Stderr,
		Bell: c.Bell,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create notifier: %w", err)
	}

	ws, err := workspace.Open(ctx, workspace.Config{
		Storage:  workspace.StorageType(c.Storage),
		DBPath:   c.DBPath,
		RedisURL: c.RedisURL,
		RedisKey: c.RedisKey,
		FilePath: c.FilePath,
		Notifier: notify.Multi(writer, notify.NewLoggerNotifier(c.Logger)),
		Prompter: prompter,
		Logger:   c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open board: %w", err)
	}

	return ws, nil
}

// withWorkspace opens the board, runs fn and saves the result.
func (c *RootCommand) withWorkspace(ctx context.Context, prompter matrix.HoursPrompter, fn func(ws *workspace.Workspace) error) (err error) {
	ws, err := c.OpenWorkspace(ctx, prompter)
	if err != nil {
		return err
	}
	defer func() {
		// Rejected operations don't change the board, loading may have reclassified it.
		if cerr := ws.Close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(ws)
}

func (c *RootCommand) newPrinter(format string) printer.Printer {
	if format == formatJSON {
		return printer.NewJSONPrinter(c.Stdout)
	}
	return printer.NewTablePrinter(c.Stdout)
}
