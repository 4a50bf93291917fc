package list

import (
	"context"
	"fmt"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
)

// Board is the source of the listed tasks.
type Board interface {
	Snapshot() model.Snapshot
}

// ServiceConfig is the configuration for the list service.
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

	return nil
}

// Service lists tasks with optional filtering.
type Service struct {
	board  Board
	logger log.Logger
}

// NewService creates a new list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		board:  cfg.Board,
		logger: cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	// QuadrantFilter is an optional filter to only show tasks of this quadrant.
	QuadrantFilter *model.Quadrant
	// Archived lists completed tasks instead of active ones.
	Archived bool
}

// Run lists tasks in board order, optionally filtered by quadrant.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Task, error) {
	if req.QuadrantFilter != nil {
		if err := req.QuadrantFilter.Validate(); err != nil {
			return nil, fmt.Errorf("invalid quadrant filter: %w", err)
		}
	}

	s.logger.Debugf("listing tasks with filter: %v", req.QuadrantFilter)

	snapshot := s.board.Snapshot()
	tasks := snapshot.Tasks
	if req.Archived {
		tasks = snapshot.Archived
	}

	// Apply quadrant filter if provided
	if req.QuadrantFilter != nil {
		filtered := make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Quadrant == *req.QuadrantFilter {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	s.logger.Debugf("found %d tasks", len(tasks))
	return tasks, nil
}
