// Package staticpages publishes the fixed informational pages that are not
// edited in the admin app but still need routes and search entries.
package staticpages

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"govpub/internal/search"
)

//go:embed pages.yaml
var pagesYAML []byte

const (
	placeholderSchema = "placeholder"
	locale            = "en"
	updateType        = "minor"
)

// Page is one fixed informational page.
type Page struct {
	ContentID        string `yaml:"content_id"`
	Title            string `yaml:"title"`
	Description      string `yaml:"description"`
	BasePath         string `yaml:"base_path"`
	IndexableContent string `yaml:"indexable_content"`
}

// Pages returns the embedded page definitions in file order.
func Pages() ([]Page, error) {
	var pages []Page
	if err := yaml.Unmarshal(pagesYAML, &pages); err != nil {
		return nil, fmt.Errorf("decode static pages: %w", err)
	}
	return pages, nil
}

// Route is a publishing API route entry.
type Route struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// Content is the placeholder content item sent with PutContent.
type Content struct {
	DocumentType    string    `json:"document_type"`
	SchemaName      string    `json:"schema_name"`
	BasePath        string    `json:"base_path"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Locale          string    `json:"locale"`
	PublishingApp   string    `json:"publishing_app"`
	RenderingApp    string    `json:"rendering_app"`
	Routes          []Route   `json:"routes"`
	PublicUpdatedAt time.Time `json:"public_updated_at"`
}

// Presented pairs a content id with its payload.
type Presented struct {
	ContentID string  `json:"content_id"`
	Content   Content `json:"content"`
}

// ContentAPI is the part of the publishing API used here.
type ContentAPI interface {
	PutContent(ctx context.Context, contentID string, payload any) error
	Publish(ctx context.Context, contentID, updateType, locale string) error
}

// Publisher pushes every static page to search and the publishing API.
type Publisher struct {
	api           ContentAPI
	index         search.Indexer
	publishingApp string
	renderingApp  string
	now           func() time.Time
	logger        *slog.Logger
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithClock overrides the public_updated_at source.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

// WithApps sets the publishing and rendering app names.
func WithApps(publishing, rendering string) Option {
	return func(p *Publisher) {
		p.publishingApp = publishing
		p.renderingApp = rendering
	}
}

func NewPublisher(api ContentAPI, index search.Indexer, opts ...Option) (*Publisher, error) {
	if api == nil {
		return nil, errors.New("publishing api client is required")
	}
	if index == nil {
		return nil, errors.New("search indexer is required")
	}
	p := &Publisher{
		api:           api,
		index:         index,
		publishingApp: "whitehall",
		renderingApp:  "government-frontend",
		now:           time.Now,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Present builds the placeholder payload for page.
func (p *Publisher) Present(page Page) Presented {
	return Presented{
		ContentID: page.ContentID,
		Content: Content{
			DocumentType:    placeholderSchema,
			SchemaName:      placeholderSchema,
			BasePath:        page.BasePath,
			Title:           page.Title,
			Description:     page.Description,
			Locale:          locale,
			PublishingApp:   p.publishingApp,
			RenderingApp:    p.renderingApp,
			Routes:          []Route{{Path: page.BasePath, Type: "exact"}},
			PublicUpdatedAt: p.now().UTC(),
		},
	}
}

// Publish indexes and publishes every page. It stops at the first error.
func (p *Publisher) Publish(ctx context.Context) error {
	pages, err := Pages()
	if err != nil {
		return err
	}
	for _, page := range pages {
		if err := p.publishPage(ctx, page); err != nil {
			return fmt.Errorf("publish %s: %w", page.BasePath, err)
		}
		p.logger.InfoContext(ctx, "static page published", "base_path", page.BasePath, "content_id", page.ContentID)
	}
	return nil
}

func (p *Publisher) publishPage(ctx context.Context, page Page) error {
	doc := search.Document{
		ContentID:        page.ContentID,
		Link:             page.BasePath,
		Title:            page.Title,
		Description:      page.Description,
		Format:           "edition",
		IndexableContent: page.IndexableContent,
	}
	if err := p.index.Add(ctx, doc); err != nil {
		return fmt.Errorf("add to search index: %w", err)
	}
	presented := p.Present(page)
	if err := p.api.PutContent(ctx, presented.ContentID, presented.Content); err != nil {
		return err
	}
	return p.api.Publish(ctx, presented.ContentID, updateType, locale)
}
