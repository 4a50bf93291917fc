package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	// Snapshot is the initial content.
	Snapshot model.Snapshot
	Logger   log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if err := c.Snapshot.Validate(); err != nil {
		return fmt.Errorf("invalid initial snapshot: %w", err)
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.SnapshotRepository.
type Repository struct {
	snapshot model.Snapshot
	saves    int
	mu       sync.RWMutex
	logger   log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		snapshot: cfg.Snapshot.Clone(),
		logger:   cfg.Logger,
	}, nil
}

// LoadSnapshot returns a copy of the stored snapshot.
func (r *Repository) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := r.snapshot.Clone()
	return &s, nil
}

// SaveSnapshot replaces the stored snapshot with a copy of s.
func (r *Repository) SaveSnapshot(ctx context.Context, s model.Snapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshot = s.Clone()
	r.saves++
	r.logger.Debugf("Saved snapshot in repository: %d tasks, %d archived", len(s.Tasks), len(s.Archived))

	return nil
}

// Saves returns how many snapshots have been saved.
func (r *Repository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
