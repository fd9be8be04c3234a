// Package statsannouncement unpublishes pre-announced statistics releases,
// redirecting their pages elsewhere on GOV.UK.
package statsannouncement

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"govpub/internal/content/models"
	dErrors "govpub/pkg/domain-errors"
	"govpub/pkg/platform/sentinel"
	"govpub/pkg/requestcontext"
)

// Store reads and writes announcements.
type Store interface {
	FindBySlug(ctx context.Context, slug string) (*models.StatisticsAnnouncement, error)
	Save(ctx context.Context, announcement *models.StatisticsAnnouncement) error
}

// ValidationError lists field messages for the unpublish form.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("statistics announcement store is required")
	}
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Find loads the announcement for an actor allowed to unpublish it.
func (s *Service) Find(ctx context.Context, slug string) (*models.StatisticsAnnouncement, error) {
	announcement, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "statistics announcement not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load statistics announcement")
	}
	actor := requestcontext.User(ctx)
	if !actor.HasPermission(models.PermissionUnpublish) && !actor.HasPermission(models.PermissionGDSEditor) {
		return nil, dErrors.New(dErrors.CodeForbidden, "You are not allowed to do that")
	}
	return announcement, nil
}

// Unpublish marks the announcement unpublished with a redirect. Invalid
// redirects return a *ValidationError and leave the announcement unchanged.
func (s *Service) Unpublish(ctx context.Context, announcement *models.StatisticsAnnouncement, redirectURL string) error {
	redirectURL = strings.TrimSpace(redirectURL)
	if msgs := validateRedirect(redirectURL); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}

	updated := *announcement
	updated.PublishingState = models.PublishingStateUnpublished
	updated.RedirectURL = redirectURL
	if err := s.store.Save(ctx, &updated); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save statistics announcement")
	}
	*announcement = updated

	s.logger.InfoContext(ctx, "statistics announcement unpublished",
		"slug", announcement.Slug,
		"redirect_url", redirectURL,
		"user_id", requestcontext.User(ctx).ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func validateRedirect(raw string) []string {
	if raw == "" {
		return []string{"Redirect url can't be blank"}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return []string{"Redirect url must be a full URL, starting with https://"}
	}
	host := strings.ToLower(u.Hostname())
	if host != "gov.uk" && !strings.HasSuffix(host, ".gov.uk") {
		return []string{"Redirect url must be a GOV.UK URL"}
	}
	return nil
}
