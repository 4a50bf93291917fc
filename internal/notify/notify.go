package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
)

// Notifier is the user facing channel of the board: messages for capacity and
// validation failures and one feedback signal per completed operation.
type Notifier interface {
	Notify(ctx context.Context, msg string)
	Feedback(ctx context.Context, f model.Feedback)
}

//go:generate mockery --case underscore --output notifymock --outpkg notifymock --name Notifier

// Noop notifier discards everything.
const Noop = noop(0)

type noop int

func (noop) Notify(context.Context, string)          {}
func (noop) Feedback(context.Context, model.Feedback) {}

// NewLoggerNotifier returns a notifier that writes messages and signals on a logger.
func NewLoggerNotifier(logger log.Logger) Notifier {
	if logger == nil {
		logger = log.Noop
	}
	return loggerNotifier{logger: logger.WithValues(log.Kv{"svc": "notify.Logger"})}
}

type loggerNotifier struct {
	logger log.Logger
}

func (l loggerNotifier) Notify(ctx context.Context, msg string) {
	l.logger.WithCtxValues(ctx).Warningf("%s", msg)
}

func (l loggerNotifier) Feedback(ctx context.Context, f model.Feedback) {
	l.logger.WithCtxValues(ctx).Debugf("feedback: %s", f)
}

// WriterNotifierConfig is the configuration for the writer notifier.
type WriterNotifierConfig struct {
	Out io.Writer
	// Bell rings the terminal bell on rejection and destructive signals.
	Bell bool
}

func (c *WriterNotifierConfig) defaults() error {
	if c.Out == nil {
		return fmt.Errorf("out writer is required")
	}
	return nil
}

// WriterNotifier prints messages on a writer, normally a terminal.
type WriterNotifier struct {
	out  io.Writer
	bell bool
	mu   sync.Mutex
}

// NewWriterNotifier creates a new writer notifier.
func NewWriterNotifier(cfg WriterNotifierConfig) (*WriterNotifier, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &WriterNotifier{out: cfg.Out, bell: cfg.Bell}, nil
}

// Notify prints the message on its own line.
func (w *WriterNotifier) Notify(_ context.Context, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, msg)
}

// Feedback rings the bell for negative signals when enabled.
func (w *WriterNotifier) Feedback(_ context.Context, f model.Feedback) {
	if !w.bell || f == model.FeedbackSuccess {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprint(w.out, "\a")
}

// Multi fans out to several notifiers in order.
func Multi(notifiers ...Notifier) Notifier { return multi(notifiers) }

type multi []Notifier

func (m multi) Notify(ctx context.Context, msg string) {
	for _, n := range m {
		n.Notify(ctx, msg)
	}
}

func (m multi) Feedback(ctx context.Context, f model.Feedback) {
	for _, n := range m {
		n.Feedback(ctx, f)
	}
}
