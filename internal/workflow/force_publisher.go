// Package workflow holds edition state transitions that bypass the normal
// review flow.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"govpub/internal/content/models"
	"govpub/internal/jobs"
	"govpub/pkg/requestcontext"
)

// EditionStore persists the published edition and its audit trail.
type EditionStore interface {
	Save(ctx context.Context, edition *models.Edition) error
	RecordVersion(ctx context.Context, entry models.VersionEntry) error
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ForcePublisher publishes editions without second-eyes review.
type ForcePublisher struct {
	editions EditionStore
	queue    jobs.Queue
	now      func() time.Time
	tracer   trace.Tracer
	logger   *slog.Logger
}

type Option func(*ForcePublisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *ForcePublisher) {
		p.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *ForcePublisher) {
		p.now = now
	}
}

func NewForcePublisher(editions EditionStore, queue jobs.Queue, opts ...Option) (*ForcePublisher, error) {
	if editions == nil {
		return nil, errors.New("edition store is required")
	}
	if queue == nil {
		return nil, errors.New("job queue is required")
	}
	p := &ForcePublisher{
		editions: editions,
		queue:    queue,
		now:      time.Now,
		tracer:   otel.Tracer("govpub/workflow"),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Operation is a pending force publish of one edition by one user.
type Operation struct {
	publisher *ForcePublisher
	edition   *models.Edition
	user      *models.User
	remark    string
}

// ForcePublish prepares a force publish of edition acting as user.
func (p *ForcePublisher) ForcePublish(edition *models.Edition, user *models.User, remark string) *Operation {
	return &Operation{publisher: p, edition: edition, user: user, remark: remark}
}

// CanPerform reports whether Perform would be attempted.
func (o *Operation) CanPerform() bool {
	return o.FailureReason() == ""
}

// FailureReason explains why the operation cannot be performed, or is empty.
func (o *Operation) FailureReason() string {
	switch {
	case !o.edition.CanForcePublish():
		return fmt.Sprintf("An edition that is %s cannot be force published", o.edition.State)
	case strings.TrimSpace(o.edition.Title) == "":
		return "Title can't be blank"
	default:
		return ""
	}
}

// Perform saves the published edition together with its audit entry, then
// queues it for the publishing API. When queueing fails the edition is
// reverted to its earlier state.
func (o *Operation) Perform(ctx context.Context) (err error) {
	p := o.publisher
	ctx, span := p.tracer.Start(ctx, "workflow.ForcePublish",
		trace.WithAttributes(attribute.Int64("edition.id", o.edition.ID)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if reason := o.FailureReason(); reason != "" {
		return errors.New(reason)
	}

	now := p.now().UTC()
	previous := *o.edition
	o.edition.State = models.StatePublished
	o.edition.ForcePublished = true
	o.edition.PublishedAt = &now
	o.edition.UpdatedAt = now

	var userID int64
	if o.user != nil {
		userID = o.user.ID
	}
	entry := models.VersionEntry{
		UserID:    userID,
		Event:     "update",
		State:     models.StatePublished,
		Remark:    o.remark,
		UserAgent: requestcontext.UserAgent(ctx),
		CreatedAt: now,
	}

	err = p.editions.RunInTx(ctx, func(ctx context.Context) error {
		if err := p.editions.Save(ctx, o.edition); err != nil {
			return fmt.Errorf("save edition: %w", err)
		}
		entry.EditionID = o.edition.ID
		if err := p.editions.RecordVersion(ctx, entry); err != nil {
			return fmt.Errorf("record version: %w", err)
		}
		return nil
	})
	if err != nil {
		*o.edition = previous
		return err
	}

	if err := p.queue.Enqueue(ctx, jobs.NewEditionJob(o.edition.ID, now)); err != nil {
		err = fmt.Errorf("queue publishing api job: %w", err)
		if revertErr := o.revert(ctx, previous, entry, err); revertErr != nil {
			return errors.Join(err, revertErr)
		}
		return err
	}

	p.logger.InfoContext(ctx, "edition force published",
		"edition_id", o.edition.ID,
		"user_id", userID,
	)
	return nil
}

// revert puts the edition back to its state before Perform and records why.
func (o *Operation) revert(ctx context.Context, previous models.Edition, entry models.VersionEntry, cause error) error {
	p := o.publisher
	restored := previous
	restored.ID = o.edition.ID
	restored.DocumentID = o.edition.DocumentID
	entry.State = previous.State
	entry.Remark = "Force publish reverted: " + cause.Error()
	err := p.editions.RunInTx(ctx, func(ctx context.Context) error {
		if err := p.editions.Save(ctx, &restored); err != nil {
			return fmt.Errorf("revert edition: %w", err)
		}
		return p.editions.RecordVersion(ctx, entry)
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to revert force publish",
			"edition_id", o.edition.ID,
			"error", err,
		)
		return err
	}
	*o.edition = restored
	return nil
}
