package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/compassq/internal/log"
)

// Board is the reclassification surface of the board the scheduler drives.
type Board interface {
	Subscribe() (<-chan struct{}, func())
	Dragging() bool
	WakeDelay() time.Duration
	Reclassify(ctx context.Context) (int, error)
}

// SchedulerConfig is the configuration for the scheduler.
type SchedulerConfig struct {
	Board  Board
	Logger log.Logger
}

func (c *SchedulerConfig) defaults() error {
	if c.Board == nil {
		return fmt.Errorf("board is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "scheduler.Scheduler"})
	return nil
}

// Scheduler reclassifies the board when the next task is expected to become
// urgent. The timer is armed again after every board change and never while a
// transfer is in flight.
type Scheduler struct {
	board  Board
	logger log.Logger
}

// NewScheduler creates a new scheduler.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Scheduler{board: cfg.Board, logger: cfg.Logger}, nil
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	changes, unsubscribe := s.board.Subscribe()
	defer unsubscribe()

	timer := time.NewTimer(0)
	stopTimer(timer)
	defer timer.Stop()

	arm := func() {
		stopTimer(timer)
		if s.board.Dragging() {
			s.logger.Debugf("Transfer in flight, timer suppressed")
			return
		}
		d := s.board.WakeDelay()
		timer.Reset(d)
		s.logger.Debugf("Reclassification armed in %s", d)
	}

	s.logger.Infof("Scheduler started")
	arm()
	for {
		select {
		case <-ctx.Done():
			s.logger.Infof("Scheduler stopped")
			return nil
		case <-changes:
			arm()
		case <-timer.C:
			if _, err := s.board.Reclassify(ctx); err != nil {
				s.logger.Errorf("Could not reclassify tasks: %s", err)
			}
			// A change re-arms through the subscription, re-arm here for cycles without changes.
			arm()
		}
	}
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
