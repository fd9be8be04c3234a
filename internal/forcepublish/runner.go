// Package forcepublish runs bulk force publishes of imported editions,
// isolating failures per edition so one bad record does not stop the batch.
package forcepublish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"govpub/internal/content/models"
	"govpub/internal/platform/logger"
	"govpub/internal/workflow"
)

const (
	// ActingUserName is the account bulk publishes are recorded against.
	ActingUserName = "GDS Inside Government Team"
	Remark         = "Bulk force published after import"
	publicHost     = "https://www.gov.uk"
)

// ErrNilEdition is recorded for missing entries in the input.
var ErrNilEdition = errors.New("Edition is nil")

// Operation is a prepared force publish.
type Operation interface {
	CanPerform() bool
	FailureReason() string
	Perform(ctx context.Context) error
}

// Publisher prepares force publish operations.
type Publisher interface {
	ForcePublish(edition *models.Edition, user *models.User, remark string) Operation
}

type workflowPublisher struct {
	p *workflow.ForcePublisher
}

func (w workflowPublisher) ForcePublish(edition *models.Edition, user *models.User, remark string) Operation {
	return w.p.ForcePublish(edition, user, remark)
}

// FromWorkflow adapts the workflow force publisher.
func FromWorkflow(p *workflow.ForcePublisher) Publisher {
	return workflowPublisher{p: p}
}

// UserFinder looks up the acting user.
type UserFinder interface {
	FindByName(ctx context.Context, name string) (*models.User, error)
}

// QueryLogTarget is a store whose statement logging can be redirected.
type QueryLogTarget interface {
	QueryLogger() *slog.Logger
	SetQueryLogger(logger *slog.Logger)
}

// Result is the outcome for one input entry. Err is nil on success.
type Result struct {
	Edition *models.Edition
	Err     error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Report holds results in processing order.
type Report struct {
	Results []Result
}

// Successes returns the editions that were published.
func (r Report) Successes() []*models.Edition {
	var out []*models.Edition
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res.Edition)
		}
	}
	return out
}

// Failures returns the failed results.
func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Runner force publishes a batch of editions.
type Runner struct {
	publisher Publisher
	users     UserFinder
	out       io.Writer
	logger    *slog.Logger
	metrics   *Metrics

	queryLog     QueryLogTarget
	queryLogPath string
}

type Option func(*Runner)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithQueryLog redirects target's statement logging to the file at path for
// the duration of each run.
func WithQueryLog(target QueryLogTarget, path string) Option {
	return func(r *Runner) {
		r.queryLog = target
		r.queryLogPath = path
	}
}

func NewRunner(publisher Publisher, users UserFinder, out io.Writer, opts ...Option) (*Runner, error) {
	if publisher == nil {
		return nil, errors.New("publisher is required")
	}
	if users == nil {
		return nil, errors.New("user store is required")
	}
	if out == nil {
		out = io.Discard
	}
	r := &Runner{publisher: publisher, users: users, out: out, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run processes editions in order, stopping after limit entries when limit
// is positive. Only setup problems are returned as errors; per-edition
// failures are in the report.
func (r *Runner) Run(ctx context.Context, editions []*models.Edition, limit int) (Report, error) {
	user, err := r.users.FindByName(ctx, ActingUserName)
	if err != nil {
		return Report{}, fmt.Errorf("find user %q: %w", ActingUserName, err)
	}

	if r.queryLog != nil && r.queryLogPath != "" {
		fileLogger, closer, err := logger.NewFile(r.queryLogPath)
		if err != nil {
			return Report{}, err
		}
		defer closer.Close()
		previous := r.queryLog.QueryLogger()
		r.queryLog.SetQueryLogger(fileLogger)
		defer r.queryLog.SetQueryLogger(previous)
	}

	if limit > 0 && limit < len(editions) {
		editions = editions[:limit]
	}

	report := Report{Results: make([]Result, 0, len(editions))}
	for _, edition := range editions {
		res := r.runOne(ctx, edition, user)
		report.Results = append(report.Results, res)
		r.print(res)
	}

	r.logger.InfoContext(ctx, "force publish batch finished",
		"successes", len(report.Successes()),
		"failures", len(report.Failures()),
	)
	return report, nil
}

func (r *Runner) runOne(ctx context.Context, edition *models.Edition, user *models.User) Result {
	if edition == nil {
		r.metrics.observe(outcomeFailed)
		return Result{Err: ErrNilEdition}
	}
	op := r.publisher.ForcePublish(edition, user, Remark)
	if !op.CanPerform() {
		r.metrics.observe(outcomeRefused)
		return Result{Edition: edition, Err: errors.New(op.FailureReason())}
	}
	if err := op.Perform(ctx); err != nil {
		r.logger.WarnContext(ctx, "force publish failed", "edition_id", edition.ID, "error", err)
		r.metrics.observe(outcomeFailed)
		return Result{Edition: edition, Err: err}
	}
	r.metrics.observe(outcomePublished)
	return Result{Edition: edition}
}

func (r *Runner) print(res Result) {
	id := ""
	if res.Edition != nil {
		id = fmt.Sprint(res.Edition.ID)
	}
	if res.OK() {
		fmt.Fprintf(r.out, "OK : %s: %s%s\n", id, publicHost, res.Edition.PublicPath())
		return
	}
	fmt.Fprintf(r.out, "ERR: %s: %s\n", id, res.Err.Error())
}
