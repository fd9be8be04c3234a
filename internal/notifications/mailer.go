package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"govpub/internal/content/models"
	"govpub/internal/jobs"
)

// Mailer composes notification messages and queues them for delivery.
type Mailer struct {
	queue      jobs.Queue
	from       string
	adminHost  string
	publicHost string
	now        func() time.Time
	logger     *slog.Logger
	metrics    *Metrics
}

type Option func(*Mailer)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Mailer) {
		m.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(m *Mailer) {
		m.metrics = metrics
	}
}

// WithHosts sets the base URLs used for admin and public links.
func WithHosts(admin, public string) Option {
	return func(m *Mailer) {
		m.adminHost = strings.TrimRight(admin, "/")
		m.publicHost = strings.TrimRight(public, "/")
	}
}

func NewMailer(queue jobs.Queue, environmentLabel string, opts ...Option) (*Mailer, error) {
	if queue == nil {
		return nil, errors.New("job queue is required")
	}
	m := &Mailer{
		queue:      queue,
		from:       NoReplyAddress(environmentLabel),
		adminHost:  "https://whitehall-admin.publishing.service.gov.uk",
		publicHost: "https://www.gov.uk",
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// FactCheckRequest asks the reviewer named on req to check an edition.
func (m *Mailer) FactCheckRequest(req models.FactCheckRequest) Message {
	edition := models.Edition{ID: req.EditionID, Type: req.EditionType}
	var body strings.Builder
	fmt.Fprintf(&body, "%s has asked you to check the %s '%s'.\n\n", req.Requestor.Name, req.EditionType.FormatName(), req.EditionTitle)
	if req.Instructions != "" {
		fmt.Fprintf(&body, "Instructions:\n%s\n\n", req.Instructions)
	}
	fmt.Fprintf(&body, "Add your comments at %s%s/fact-check-requests/%d/edit\n", m.adminHost, edition.AdminPath(), req.ID)
	return Message{
		Kind:    "fact_check_request",
		From:    m.from,
		To:      req.EmailAddress,
		Subject: fmt.Sprintf("Fact checking request from %s: %s", req.Requestor.Name, req.EditionTitle),
		Body:    body.String(),
	}
}

// FactCheckResponse tells the requestor that the reviewer commented.
func (m *Mailer) FactCheckResponse(req models.FactCheckRequest) Message {
	return Message{
		Kind:    "fact_check_response",
		From:    m.from,
		To:      req.Requestor.Email,
		Subject: fmt.Sprintf("Fact check comment added by %s: %s", req.EmailAddress, req.EditionTitle),
		Body: fmt.Sprintf("%s added a comment to '%s'.\n\nView it at %s\n",
			req.EmailAddress, req.EditionTitle, m.CommentURL(req)),
	}
}

// CommentURL links to the fact check request on the admin edition page.
func (m *Mailer) CommentURL(req models.FactCheckRequest) string {
	edition := models.Edition{ID: req.EditionID, Type: req.EditionType}
	return fmt.Sprintf("%s%s#fact_check_request_%d", m.adminHost, edition.AdminPath(), req.ID)
}

// EditionPublished tells the author their edition went live.
func (m *Mailer) EditionPublished(author models.User, edition *models.Edition) Message {
	adminURL := m.adminHost + edition.AdminPath()
	publicURL := m.publicHost + edition.PublicPath()
	return Message{
		Kind:    "edition_published",
		From:    m.from,
		To:      author.Email,
		Subject: fmt.Sprintf("The %s '%s' has been published", edition.Type.FormatName(), edition.Title),
		Body:    fmt.Sprintf("It is now live at %s\n\nAdmin: %s\n", publicURL, adminURL),
	}
}

// EditionRejected tells the author who sent their edition back.
func (m *Mailer) EditionRejected(author models.User, edition *models.Edition, rejectedBy models.User) Message {
	return Message{
		Kind:    "edition_rejected",
		From:    m.from,
		To:      author.Email,
		Subject: fmt.Sprintf("The %s '%s' was rejected by %s", edition.Type.FormatName(), edition.Title, rejectedBy.Name),
		Body:    fmt.Sprintf("See the editorial remarks at %s%s\n", m.adminHost, edition.AdminPath()),
	}
}

// BrokenLinkReports sends a zip of link check reports. The attachment is
// named after the file at zipPath.
func (m *Mailer) BrokenLinkReports(zipPath string, zipData []byte, recipient string) Message {
	return Message{
		Kind:    "broken_link_reports",
		From:    m.from,
		To:      recipient,
		Subject: "GOV.UK broken link reports",
		Body:    "The latest broken link reports are attached.\n",
		Attachments: []Attachment{{
			Filename:    filepath.Base(zipPath),
			ContentType: "application/zip",
			Data:        zipData,
		}},
	}
}

// DocumentList sends a filtered document listing as CSV.
func (m *Mailer) DocumentList(csv []byte, recipient, filterTitle string) Message {
	return Message{
		Kind:    "document_list",
		From:    m.from,
		To:      recipient,
		Subject: fmt.Sprintf("%s from GOV.UK", filterTitle),
		Body:    "The document list you requested is attached.\n",
		Attachments: []Attachment{{
			Filename:    "document_list.csv",
			ContentType: "text/csv",
			Data:        csv,
		}},
	}
}

// Deliver queues msg as a deliver_mail job.
func (m *Mailer) Deliver(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("deliver %s: recipient is required", msg.Kind)
	}
	job, err := jobs.NewPayloadJob(jobs.KindDeliverMail, msg, m.now())
	if err != nil {
		return err
	}
	if err := m.queue.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("queue %s mail: %w", msg.Kind, err)
	}
	m.metrics.observe(msg.Kind)
	m.logger.InfoContext(ctx, "mail queued", "kind", msg.Kind, "job_id", job.ID)
	return nil
}
