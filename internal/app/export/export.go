package export

import (
	"context"
	"fmt"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
	storageio "github.com/slok/compassq/internal/storage/io"
)

// Board is the exported board.
type Board interface {
	Snapshot() model.Snapshot
}

// ServiceConfig is the configuration for the export service.
type ServiceConfig struct {
	Board  Board
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Board == nil {
		return fmt.Errorf("board is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Export"})
	return nil
}

// Service writes the board into JSON or YAML files.
type Service struct {
	board  Board
	logger log.Logger
}

// NewService creates a new export service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		board:  cfg.Board,
		logger: cfg.Logger,
	}, nil
}

// Request represents the export request parameters.
type Request struct {
	// Path of the written file, the format is chosen by its extension.
	Path string
}

// Result is the summary of an export.
type Result struct {
	Path     string
	Tasks    int
	Archived int
}

// Run exports the current board, an existing file is replaced.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path is required: %w", model.ErrNotValid)
	}

	repo, err := storageio.NewFileRepository(storageio.FileRepositoryConfig{
		Path:   req.Path,
		Logger: s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create file repository: %w", err)
	}

	snapshot := s.board.Snapshot()
	if err := repo.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("could not write export: %w", err)
	}

	s.logger.Infof("Board exported to %s", req.Path)

	return &Result{Path: req.Path, Tasks: len(snapshot.Tasks), Archived: len(snapshot.Archived)}, nil
}
