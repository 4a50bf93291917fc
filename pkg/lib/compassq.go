package lib

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/slok/compassq/internal/app/workspace"
	"github.com/slok/compassq/internal/conventions"
	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/matrix"
	"github.com/slok/compassq/internal/notify"
)

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. At minimum, an empty
// Config{} will use ~/.compassq/compassq.db for storage.
type Config struct {
	// Storage selects where the board is kept.
	// Default: [StorageSQLite].
	Storage StorageType

	// DataDir is the base directory for the default storage paths.
	// Default: ~/.compassq.
	DataDir string

	// DBPath is the SQLite database path, used by [StorageSQLite].
	// Default: <DataDir>/compassq.db.
	DBPath string

	// FilePath is the JSON or YAML board file, used by [StorageFile].
	// Default: <DataDir>/compassq.json.
	FilePath string

	// RedisURL is the redis:// URL used by [StorageRedis].
	RedisURL string

	// RedisKey is the key the board is stored under in Redis.
	// Default: "compassq-data-v1".
	RedisKey string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger

	// Notifier receives the user facing messages and the outcome signal of
	// every operation. Default: discard.
	Notifier Notifier

	// Prompter is asked for new hours when a move crosses the urgency
	// boundary. Default: every question is declined so those moves are
	// cancelled, use [MoveTaskOpts].Hours to answer per move.
	Prompter HoursPrompter

	// Now is the clock of the board. Default: time.Now.
	Now func() time.Time
}

func (c *Config) defaults() error {
	if c.Storage == "" {
		c.Storage = StorageSQLite
	}

	if c.DataDir == "" && (c.Storage == StorageSQLite || c.Storage == StorageFile) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.DataDir = conventions.DataDir(home)
	}

	if c.DBPath == "" {
		c.DBPath = conventions.DBPath(c.DataDir)
	}

	if c.FilePath == "" {
		c.FilePath = conventions.DataFilePath(c.DataDir)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.Notifier == nil {
		c.Notifier = notify.Noop
	}

	return nil
}

// Client is the main SDK entry point for managing a board programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	ws     *workspace.Workspace
	board  *matrix.Board
	logger log.Logger
}

// New loads the board from the configured storage and creates a client.
//
// The board is classified again at load time, tasks that became urgent since
// the last save are moved. The caller must call [Client.Close] when done to
// save pending changes and release the storage. Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	ws, err := workspace.Open(ctx, workspace.Config{
		Storage:  workspace.StorageType(cfg.Storage),
		DBPath:   cfg.DBPath,
		RedisURL: cfg.RedisURL,
		RedisKey: cfg.RedisKey,
		FilePath: cfg.FilePath,
		Notifier: cfg.Notifier,
		Prompter: cfg.Prompter,
		Now:      cfg.Now,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &Client{
		ws:     ws,
		board:  ws.Board(),
		logger: cfg.Logger,
	}, nil
}

// Close saves pending changes and releases the storage.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	return c.ws.Close(context.Background())
}

// Save stores the board now if it changed since the last save. Changes are
// otherwise saved by [Client.Run] and [Client.Close].
func (c *Client) Save(ctx context.Context) error {
	return c.ws.Save(ctx)
}

// Run keeps the board classified as time passes and saves changes shortly
// after they happen. It blocks until ctx is cancelled and saves pending
// changes before returning.
func (c *Client) Run(ctx context.Context) error {
	return c.ws.Run(ctx)
}

// Board returns a copy of the current board.
func (c *Client) Board() Board {
	return fromInternalSnapshot(c.board.Snapshot())
}

// Changes returns a channel that receives a value after board changes. Changes
// are coalesced, a slow reader gets one signal for several changes. Call the
// returned function to stop receiving.
func (c *Client) Changes() (<-chan struct{}, func()) {
	return c.board.Subscribe()
}
