package publishingapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"govpub/internal/content/models"
	"govpub/internal/jobs"
)

// EditionContent is the content item payload for an edition.
type EditionContent struct {
	BasePath        string         `json:"base_path"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DocumentType    string         `json:"document_type"`
	SchemaName      string         `json:"schema_name"`
	Locale          string         `json:"locale"`
	PublishingApp   string         `json:"publishing_app"`
	RenderingApp    string         `json:"rendering_app"`
	PublicUpdatedAt *time.Time     `json:"public_updated_at,omitempty"`
	Routes          []Route        `json:"routes"`
	Details         map[string]any `json:"details"`
}

type Route struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

var documentTypes = map[models.EditionType]string{
	models.TypeCaseStudy:     "case_study",
	models.TypeSpeech:        "speech",
	models.TypeNewsArticle:   "news_article",
	models.TypePublication:   "publication",
	models.TypeConsultation:  "consultation",
	models.TypeDetailedGuide: "detailed_guide",
}

// PresentEdition builds the content item for e.
func PresentEdition(e *models.Edition, publishingApp string) EditionContent {
	docType, ok := documentTypes[e.Type]
	if !ok {
		docType = "edition"
	}
	locale := e.Locale
	if locale == "" {
		locale = "en"
	}
	return EditionContent{
		BasePath:        e.PublicPath(),
		Title:           e.Title,
		Description:     e.Summary,
		DocumentType:    docType,
		SchemaName:      docType,
		Locale:          locale,
		PublishingApp:   publishingApp,
		RenderingApp:    "government-frontend",
		PublicUpdatedAt: e.PublishedAt,
		Routes:          []Route{{Path: e.PublicPath(), Type: "exact"}},
		Details: map[string]any{
			"body":            e.Body,
			"force_published": e.ForcePublished,
		},
	}
}

// EditionFinder loads editions by id.
type EditionFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Edition, error)
}

// ContentWriter is the write side of the publishing API.
type ContentWriter interface {
	PutContent(ctx context.Context, contentID string, payload any) error
	Publish(ctx context.Context, contentID, updateType, locale string) error
}

// EditionSync pushes editions to the publishing API. Draft editions are sent
// as drafts only; published editions are also published.
type EditionSync struct {
	editions      EditionFinder
	api           ContentWriter
	publishingApp string
	logger        *slog.Logger
}

func NewEditionSync(editions EditionFinder, api ContentWriter, publishingApp string, logger *slog.Logger) (*EditionSync, error) {
	if editions == nil {
		return nil, errors.New("edition store is required")
	}
	if api == nil {
		return nil, errors.New("publishing api client is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EditionSync{editions: editions, api: api, publishingApp: publishingApp, logger: logger}, nil
}

// HandleJob processes a publishing_api_edition job.
func (s *EditionSync) HandleJob(ctx context.Context, job jobs.Job) error {
	edition, err := s.editions.FindByID(ctx, job.EditionID)
	if err != nil {
		return fmt.Errorf("load edition %d: %w", job.EditionID, err)
	}
	return s.Push(ctx, edition)
}

// Push sends one edition.
func (s *EditionSync) Push(ctx context.Context, e *models.Edition) error {
	contentID := e.ContentID.String()
	content := PresentEdition(e, s.publishingApp)
	if err := s.api.PutContent(ctx, contentID, content); err != nil {
		return err
	}
	if !e.IsPublished() {
		return nil
	}
	if err := s.api.Publish(ctx, contentID, "major", content.Locale); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "edition sent to publishing api", "edition_id", e.ID, "content_id", contentID)
	return nil
}
