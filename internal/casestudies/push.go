// Package casestudies re-sends every case study to the publishing API.
package casestudies

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"govpub/internal/content/models"
	"govpub/internal/jobs"
)

const batchSize = 100

// EditionLister visits the latest edition of every document of a type.
type EditionLister interface {
	EachLatestByType(ctx context.Context, typ models.EditionType, batchSize int, fn func(*models.Edition) error) error
}

// Pusher queues a publishing API job per case study.
type Pusher struct {
	editions EditionLister
	queue    jobs.Queue
	out      io.Writer
	now      func() time.Time
	logger   *slog.Logger
}

func NewPusher(editions EditionLister, queue jobs.Queue, out io.Writer, logger *slog.Logger) (*Pusher, error) {
	if editions == nil {
		return nil, errors.New("edition store is required")
	}
	if queue == nil {
		return nil, errors.New("job queue is required")
	}
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pusher{editions: editions, queue: queue, out: out, now: time.Now, logger: logger}, nil
}

// Run queues every case study and returns how many were queued.
func (p *Pusher) Run(ctx context.Context) (int, error) {
	fmt.Fprintln(p.out, "Pushing case studies to publishing API")

	count := 0
	err := p.editions.EachLatestByType(ctx, models.TypeCaseStudy, batchSize, func(e *models.Edition) error {
		if err := p.queue.Enqueue(ctx, jobs.NewEditionJob(e.ID, p.now())); err != nil {
			return fmt.Errorf("queue case study %d: %w", e.ID, err)
		}
		fmt.Fprint(p.out, ".")
		count++
		return nil
	})
	if err != nil {
		return count, err
	}

	fmt.Fprintf(p.out, "\n%d case studies queued for pushing to the publishing API\n", count)
	p.logger.InfoContext(ctx, "case studies queued", "count", count)
	return count, nil
}
