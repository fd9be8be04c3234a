package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// HandlerFunc processes one job.
type HandlerFunc func(ctx context.Context, job Job) error

// Worker takes jobs off a queue and dispatches them by kind. Failed jobs are
// logged and dropped; there are no retries.
type Worker struct {
	queue    Queue
	handlers map[Kind]HandlerFunc
	logger   *slog.Logger
	metrics  *Metrics
	backoff  time.Duration
}

type WorkerOption func(*Worker)

func WithLogger(logger *slog.Logger) WorkerOption {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithMetrics(m *Metrics) WorkerOption {
	return func(w *Worker) {
		w.metrics = m
	}
}

// WithBackoff sets the pause after a failed dequeue.
func WithBackoff(d time.Duration) WorkerOption {
	return func(w *Worker) {
		w.backoff = d
	}
}

func NewWorker(queue Queue, opts ...WorkerOption) (*Worker, error) {
	if queue == nil {
		return nil, errors.New("queue is required")
	}
	w := &Worker{queue: queue, handlers: make(map[Kind]HandlerFunc), logger: slog.Default(), backoff: dequeueBackoff}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Handle registers fn for kind, replacing any earlier registration.
func (w *Worker) Handle(kind Kind, fn HandlerFunc) {
	w.handlers[kind] = fn
}

// dequeueBackoff is how long Run waits after a queue error other than ErrEmpty.
const dequeueBackoff = time.Second

// Run processes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	return w.RunUntil(ctx, nil)
}

// RunUntil processes jobs until ctx is cancelled, or until done is closed and
// the queue reports empty. It returns an error naming how many jobs failed.
func (w *Worker) RunUntil(ctx context.Context, done <-chan struct{}) error {
	w.logger.InfoContext(ctx, "job worker started")
	var processed, failed int
	for {
		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.InfoContext(ctx, "job worker stopped")
				return nil
			}
			if errors.Is(err, ErrEmpty) {
				select {
				case <-done:
					w.logger.InfoContext(ctx, "job worker drained", "processed", processed, "failed", failed)
					if failed > 0 {
						return fmt.Errorf("%d of %d jobs failed", failed, processed)
					}
					return nil
				default:
				}
				continue
			}
			w.logger.ErrorContext(ctx, "failed to dequeue job", "error", err)
			select {
			case <-ctx.Done():
				w.logger.InfoContext(ctx, "job worker stopped")
				return nil
			case <-time.After(w.backoff):
			}
			continue
		}
		processed++
		if err := w.Process(ctx, job); err != nil {
			failed++
		}
	}
}

// Process dispatches a single job and records its outcome.
func (w *Worker) Process(ctx context.Context, job Job) error {
	fn, ok := w.handlers[job.Kind]
	if !ok {
		err := fmt.Errorf("no handler for job kind %q", job.Kind)
		w.logger.ErrorContext(ctx, "unknown job kind", "job_id", job.ID, "kind", job.Kind)
		w.metrics.observe(job.Kind, "unknown")
		return err
	}
	if err := fn(ctx, job); err != nil {
		w.logger.ErrorContext(ctx, "job failed",
			"job_id", job.ID,
			"kind", job.Kind,
			"edition_id", job.EditionID,
			"error", err,
		)
		w.metrics.observe(job.Kind, "failed")
		return err
	}
	w.logger.DebugContext(ctx, "job processed", "job_id", job.ID, "kind", job.Kind)
	w.metrics.observe(job.Kind, "ok")
	return nil
}
