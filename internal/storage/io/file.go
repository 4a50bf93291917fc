package io

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
)

// FileRepositoryConfig is the configuration for the file repository.
type FileRepositoryConfig struct {
	// Path of the snapshot document, JSON unless it has a YAML extension.
	Path   string
	Logger log.Logger
}

func (c *FileRepositoryConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.File"})
	return nil
}

// FileRepository is a storage.SnapshotRepository that keeps the whole snapshot
// in a single document.
type FileRepository struct {
	dir    string
	name   string
	format Format
	loader *SnapshotFSLoader
	logger log.Logger
}

// NewFileRepository creates a new file repository.
func NewFileRepository(cfg FileRepositoryConfig) (*FileRepository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create snapshot directory: %w", err)
	}

	return &FileRepository{
		dir:    dir,
		name:   filepath.Base(cfg.Path),
		format: FormatFromPath(cfg.Path),
		loader: NewSnapshotFSLoader(os.DirFS(dir)),
		logger: cfg.Logger,
	}, nil
}

// LoadSnapshot loads the document, a missing one is an empty snapshot.
func (r *FileRepository) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	s, err := r.loader.LoadSnapshot(ctx, r.name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &model.Snapshot{Tasks: []model.Task{}, Archived: []model.Task{}}, nil
		}
		return nil, err
	}

	return s, nil
}

// SaveSnapshot writes the document atomically, readers never see a partial file.
func (r *FileRepository) SaveSnapshot(ctx context.Context, s model.Snapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	data, err := Encode(s, r.format)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, "."+r.name+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close snapshot file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(r.dir, r.name)); err != nil {
		return fmt.Errorf("could not replace snapshot file: %w", err)
	}

	r.logger.Debugf("Saved snapshot in %s: %d tasks, %d archived", r.name, len(s.Tasks), len(s.Archived))
	return nil
}
