package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
	storageio "github.com/slok/compassq/internal/storage/io"
)

// Board is the board whose content is replaced.
type Board interface {
	Replace(ctx context.Context, s model.Snapshot) error
}

// ServiceConfig is the configuration for the import service.
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

	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Import"})
	return nil
}

// Service loads JSON or YAML exports into the board.
type Service struct {
	board  Board
	logger log.Logger
}

// NewService creates a new import service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		board:  cfg.Board,
		logger: cfg.Logger,
	}, nil
}

// Request represents the import request parameters.
type Request struct {
	Path string
}

// Run replaces the board content with the file content. Nothing changes when
// the file can't be read or is not a valid board.
func (s *Service) Run(ctx context.Context, req Request) (*model.Snapshot, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path is required: %w", model.ErrNotValid)
	}

	abs, err := filepath.Abs(req.Path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve path: %w", err)
	}

	loader := storageio.NewSnapshotFSLoader(os.DirFS(filepath.Dir(abs)))
	snapshot, err := loader.LoadSnapshot(ctx, filepath.Base(abs))
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", req.Path, err)
	}

	if err := s.board.Replace(ctx, *snapshot); err != nil {
		return nil, err
	}

	s.logger.Infof("Board imported from %s", req.Path)

	return snapshot, nil
}
