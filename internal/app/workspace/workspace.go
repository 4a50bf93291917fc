package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/run"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/matrix"
	"github.com/slok/compassq/internal/notify"
	"github.com/slok/compassq/internal/persist"
	"github.com/slok/compassq/internal/scheduler"
	"github.com/slok/compassq/internal/storage"
	storageio "github.com/slok/compassq/internal/storage/io"
	"github.com/slok/compassq/internal/storage/memory"
	"github.com/slok/compassq/internal/storage/redis"
	"github.com/slok/compassq/internal/storage/sqlite"
)

// StorageType selects where the board is persisted.
type StorageType string

const (
	StorageSQLite StorageType = "sqlite"
	StorageRedis  StorageType = "redis"
	StorageFile   StorageType = "file"
	StorageMemory StorageType = "memory"
)

// Config is the configuration for a workspace.
type Config struct {
	// Storage selects the repository backend. Default: sqlite.
	Storage  StorageType
	DBPath   string
	RedisURL string
	// RedisKey defaults to redis.DefaultKey.
	RedisKey string
	FilePath string
	// Repository replaces the backend selected by Storage when set, it is not
	// closed by the workspace.
	Repository storage.SnapshotRepository

	Notifier notify.Notifier
	Prompter matrix.HoursPrompter
	Capacity int
	Now      func() time.Time
	// Debounce of the background saver. Default: 200ms.
	Debounce time.Duration
	Logger   log.Logger
}

func (c *Config) defaults() error {
	if c.Storage == "" {
		c.Storage = StorageSQLite
	}

	if c.Repository == nil {
		switch c.Storage {
		case StorageSQLite:
			if c.DBPath == "" {
				return fmt.Errorf("db path is required for %s storage", c.Storage)
			}
		case StorageRedis:
			if c.RedisURL == "" {
				return fmt.Errorf("redis url is required for %s storage", c.Storage)
			}
		case StorageFile:
			if c.FilePath == "" {
				return fmt.Errorf("file path is required for %s storage", c.Storage)
			}
		case StorageMemory:
		default:
			return fmt.Errorf("unknown storage type %q", c.Storage)
		}
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Workspace is a loaded board bound to its repository.
type Workspace struct {
	board     *matrix.Board
	saver     *persist.Saver
	scheduler *scheduler.Scheduler
	closeFn   func() error
	logger    log.Logger
}

// Open loads the board from the configured repository and classifies it again
// at the current time.
func Open(ctx context.Context, cfg Config) (*Workspace, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	repo, closeFn, err := newRepository(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	ws, err := open(ctx, cfg, repo)
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	ws.closeFn = closeFn

	return ws, nil
}

func open(ctx context.Context, cfg Config, repo storage.SnapshotRepository) (*Workspace, error) {
	snapshot, err := repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load snapshot: %w", err)
	}

	board, err := matrix.NewBoard(matrix.BoardConfig{
		Snapshot: *snapshot,
		Notifier: cfg.Notifier,
		Prompter: cfg.Prompter,
		Capacity: cfg.Capacity,
		Now:      cfg.Now,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create board: %w", err)
	}

	saver, err := persist.NewSaver(persist.SaverConfig{
		Board:      board,
		Repository: repo,
		Debounce:   cfg.Debounce,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create saver: %w", err)
	}

	sched, err := scheduler.NewScheduler(scheduler.SchedulerConfig{
		Board:  board,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create scheduler: %w", err)
	}

	// Time passed since the last save, the saver picks up the change.
	if _, err := board.Reclassify(ctx); err != nil {
		return nil, fmt.Errorf("could not reclassify loaded board: %w", err)
	}

	return &Workspace{
		board:     board,
		saver:     saver,
		scheduler: sched,
		logger:    cfg.Logger.WithValues(log.Kv{"svc": "workspace.Workspace"}),
	}, nil
}

func newRepository(ctx context.Context, cfg Config) (storage.SnapshotRepository, func() error, error) {
	noClose := func() error { return nil }

	if cfg.Repository != nil {
		return cfg.Repository, noClose, nil
	}

	switch cfg.Storage {
	case StorageSQLite:
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{DBPath: cfg.DBPath, Logger: cfg.Logger})
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case StorageRedis:
		repo, err := redis.NewRepository(ctx, redis.RepositoryConfig{URL: cfg.RedisURL, Key: cfg.RedisKey, Logger: cfg.Logger})
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case StorageFile:
		repo, err := storageio.NewFileRepository(storageio.FileRepositoryConfig{Path: cfg.FilePath, Logger: cfg.Logger})
		if err != nil {
			return nil, nil, err
		}
		return repo, noClose, nil
	default:
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, nil, err
		}
		return repo, noClose, nil
	}
}

// Board returns the loaded board.
func (w *Workspace) Board() *matrix.Board { return w.board }

// Save stores the board if it changed since the last save.
func (w *Workspace) Save(ctx context.Context) error {
	if err := w.saver.Flush(ctx); err != nil {
		return fmt.Errorf("could not save board: %w", err)
	}
	return nil
}

// Run keeps the board classified and saved until ctx is cancelled. Pending
// changes are saved before returning.
func (w *Workspace) Run(ctx context.Context) error {
	var g run.Group

	// Reclassification timer.
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				return w.scheduler.Run(ctx)
			},
			func(_ error) {
				cancel()
			},
		)
	}

	// Debounced saves.
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				return w.saver.Run(ctx)
			},
			func(_ error) {
				cancel()
			},
		)
	}

	w.logger.Debugf("Workspace running")
	return g.Run()
}

// Close saves pending changes and releases the repository.
func (w *Workspace) Close(ctx context.Context) error {
	saveErr := w.Save(ctx)
	if err := w.closeFn(); err != nil {
		return fmt.Errorf("could not close repository: %w", err)
	}
	return saveErr
}
