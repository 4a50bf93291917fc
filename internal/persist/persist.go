package persist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
	"github.com/slok/compassq/internal/storage"
)

// Board is the state source of the saver.
type Board interface {
	Subscribe() (<-chan struct{}, func())
	Snapshot() model.Snapshot
	Version() uint64
}

// SaverConfig is the configuration for the saver.
type SaverConfig struct {
	Board      Board
	Repository storage.SnapshotRepository
	// Debounce is the quiet time after the last change before saving.
	// Default: 200ms.
	Debounce time.Duration
	// ShutdownTimeout bounds the final save when the saver stops. Default: 5s.
	ShutdownTimeout time.Duration
	Logger          log.Logger
}

func (c *SaverConfig) defaults() error {
	if c.Board == nil {
		return fmt.Errorf("board is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Debounce == 0 {
		c.Debounce = 200 * time.Millisecond
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "persist.Saver"})
	return nil
}

// Saver persists the board snapshot after it stops changing for a while.
type Saver struct {
	board           Board
	repo            storage.SnapshotRepository
	debounce        time.Duration
	shutdownTimeout time.Duration
	logger          log.Logger

	mu    sync.Mutex
	saved uint64
}

// NewSaver creates a new saver. The current board version is considered saved.
func NewSaver(cfg SaverConfig) (*Saver, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Saver{
		board:           cfg.Board,
		repo:            cfg.Repository,
		debounce:        cfg.Debounce,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          cfg.Logger,
		saved:           cfg.Board.Version(),
	}, nil
}

// Run saves debounced changes until ctx is cancelled, then flushes pending ones.
func (s *Saver) Run(ctx context.Context) error {
	changes, unsubscribe := s.board.Subscribe()
	defer unsubscribe()

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	if s.pending() {
		timer.Reset(s.debounce)
	}

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
			defer cancel()
			if err := s.Flush(flushCtx); err != nil {
				return fmt.Errorf("could not save on shutdown: %w", err)
			}
			return nil
		case <-changes:
			timer.Reset(s.debounce)
		case <-timer.C:
			if err := s.Flush(ctx); err != nil {
				s.logger.Errorf("Could not save snapshot: %s", err)
			}
		}
	}
}

func (s *Saver) pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Version() != s.saved
}

// Flush saves the board if it changed since the last save.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := s.board.Version()
	if version == s.saved {
		return nil
	}

	if err := s.repo.SaveSnapshot(ctx, s.board.Snapshot()); err != nil {
		return err
	}
	s.saved = version
	s.logger.Debugf("Snapshot version %d saved", version)

	return nil
}
