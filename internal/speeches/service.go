// Package speeches serves the public speech page.
package speeches

import (
	"context"
	"errors"
	"log/slog"

	"govpub/internal/content/models"
	dErrors "govpub/pkg/domain-errors"
	"govpub/pkg/platform/sentinel"
	strutil "govpub/pkg/platform/strings"
)

// EditionFinder loads published editions.
type EditionFinder interface {
	FindPublishedBySlug(ctx context.Context, typ models.EditionType, slug string) (*models.Edition, error)
}

// Taxonomy reads policies and topics by id, preserving order.
type Taxonomy interface {
	PoliciesByIDs(ctx context.Context, ids []int64) ([]*models.Policy, error)
	TopicsByIDs(ctx context.Context, ids []int64) ([]*models.Topic, error)
}

// Page is everything the speech page shows.
type Page struct {
	Speech          *models.Edition
	Policies        []*models.Policy
	Topics          []*models.Topic
	MetaDescription string
}

type Service struct {
	editions EditionFinder
	taxonomy Taxonomy
	logger   *slog.Logger
}

func NewService(editions EditionFinder, taxonomy Taxonomy, logger *slog.Logger) (*Service, error) {
	if editions == nil {
		return nil, errors.New("edition store is required")
	}
	if taxonomy == nil {
		return nil, errors.New("taxonomy store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{editions: editions, taxonomy: taxonomy, logger: logger}, nil
}

// Show loads the published speech with its related policies and the topics
// of those policies, each topic listed once in first-seen order.
func (s *Service) Show(ctx context.Context, slug string) (*Page, error) {
	speech, err := s.editions.FindPublishedBySlug(ctx, models.TypeSpeech, slug)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "speech not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load speech")
	}

	policies, err := s.taxonomy.PoliciesByIDs(ctx, speech.PolicyIDs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load related policies")
	}

	var topicIDs []int64
	for _, p := range policies {
		topicIDs = append(topicIDs, p.TopicIDs...)
	}
	topics, err := s.taxonomy.TopicsByIDs(ctx, strutil.Dedupe(topicIDs))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load topics")
	}

	return &Page{
		Speech:          speech,
		Policies:        policies,
		Topics:          topics,
		MetaDescription: speech.Summary,
	}, nil
}
