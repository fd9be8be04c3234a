// Package topics builds the grouped topic options used by the tagging form.
// Topics come from the publishing API's linkables and are cached in Redis.
package topics

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"govpub/internal/publishingapi"
	"govpub/pkg/platform/circuit"
)

const (
	documentType = "topic"
	separator    = ": "
	cacheKey     = "govpub:linkable-topics"
)

// Option is one selectable subtopic.
type Option struct {
	Title     string `json:"title"`
	ContentID string `json:"content_id"`
}

// Group holds the subtopics of one parent topic.
type Group struct {
	Parent  string   `json:"parent"`
	Options []Option `json:"options"`
}

// LinkableSource lists linkables of a document type.
type LinkableSource interface {
	GetLinkables(ctx context.Context, documentType string) ([]publishingapi.Linkable, error)
}

// Cache stores encoded topic groups. Get reports found=false on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Service returns linkable topics, reading through the cache when one is set.
type Service struct {
	source  LinkableSource
	cache   Cache
	ttl     time.Duration
	breaker *circuit.Breaker
	logger  *slog.Logger
}

type ServiceOption func(*Service)

func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCache enables caching of the grouped result for ttl.
func WithCache(cache Cache, ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.cache = cache
		s.ttl = ttl
	}
}

func WithBreaker(b *circuit.Breaker) ServiceOption {
	return func(s *Service) {
		s.breaker = b
	}
}

func NewService(source LinkableSource, opts ...ServiceOption) (*Service, error) {
	if source == nil {
		return nil, errors.New("linkable source is required")
	}
	s := &Service{
		source:  source,
		ttl:     5 * time.Minute,
		breaker: circuit.New("topic-cache", circuit.WithFailureThreshold(3)),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Topics returns subtopics grouped by parent, groups ordered by parent name.
func (s *Service) Topics(ctx context.Context) ([]Group, error) {
	if groups, ok := s.fromCache(ctx); ok {
		return groups, nil
	}

	items, err := s.source.GetLinkables(ctx, documentType)
	if err != nil {
		return nil, fmt.Errorf("fetch topic linkables: %w", err)
	}
	groups := Build(items)
	s.toCache(ctx, groups)
	return groups, nil
}

func (s *Service) fromCache(ctx context.Context) ([]Group, bool) {
	if s.cache == nil || !s.breaker.Allow() {
		return nil, false
	}
	raw, found, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		s.cacheFailed(ctx, "read", err)
		return nil, false
	}
	s.breaker.RecordSuccess()
	if !found {
		return nil, false
	}
	var groups []Group
	if err := json.Unmarshal(raw, &groups); err != nil {
		s.logger.WarnContext(ctx, "discarding undecodable topic cache entry", "error", err)
		return nil, false
	}
	return groups, true
}

func (s *Service) toCache(ctx context.Context, groups []Group) {
	if s.cache == nil || !s.breaker.Allow() {
		return
	}
	raw, err := json.Marshal(groups)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to encode topics for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, cacheKey, raw, s.ttl); err != nil {
		s.cacheFailed(ctx, "write", err)
		return
	}
	s.breaker.RecordSuccess()
}

func (s *Service) cacheFailed(ctx context.Context, op string, err error) {
	opened := s.breaker.RecordFailure()
	s.logger.WarnContext(ctx, "topic cache unavailable, using publishing api",
		"op", op,
		"circuit_opened", opened,
		"error", err,
	)
}

// Build turns raw topic linkables into grouped select options. Only
// subtopics (names with a parent) are kept and draft topics are marked.
func Build(items []publishingapi.Linkable) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, item := range items {
		name := strings.ReplaceAll(item.InternalName, " / ", separator)
		if !strings.Contains(name, separator) {
			continue
		}
		title := name
		if item.PublicationState == "draft" {
			title += " (draft)"
		}
		parent, _, _ := strings.Cut(title, separator)

		i, ok := index[parent]
		if !ok {
			i = len(groups)
			index[parent] = i
			groups = append(groups, Group{Parent: parent})
		}
		groups[i].Options = append(groups[i].Options, Option{Title: title, ContentID: item.ContentID})
	}
	slices.SortStableFunc(groups, func(a, b Group) int { return cmp.Compare(a.Parent, b.Parent) })
	return groups
}
