package staticpages

//go:generate mockgen -source=pages.go -destination=mocks/mocks.go -package=mocks ContentAPI

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"govpub/internal/search"
	"govpub/internal/staticpages/mocks"
)

func TestPagesBasePaths(t *testing.T) {
	pages, err := Pages()
	require.NoError(t, err)

	var paths []string
	for _, p := range pages {
		paths = append(paths, p.BasePath)
	}
	assert.Equal(t, []string{
		"/government/how-government-works",
		"/government/get-involved",
		"/government/history",
		"/government/history/10-downing-street",
		"/government/history/1-horse-guards-road",
		"/government/history/11-downing-street",
		"/government/history/king-charles-street",
		"/government/history/lancaster-house",
	}, paths)
}

func TestPagesHaveDistinctContentIDs(t *testing.T) {
	pages, err := Pages()
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, p := range pages {
		require.NotEmpty(t, p.ContentID, p.BasePath)
		require.NotEmpty(t, p.Title, p.BasePath)
		assert.False(t, seen[p.ContentID], "duplicate content id %s", p.ContentID)
		seen[p.ContentID] = true
	}
}

type PublisherSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	api   *mocks.MockContentAPI
	index *search.MemoryIndexer
	pub   *Publisher
	now   time.Time
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = mocks.NewMockContentAPI(s.ctrl)
	s.index = search.NewMemoryIndexer()
	s.now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	pub, err := NewPublisher(s.api, s.index, WithClock(func() time.Time { return s.now }))
	s.Require().NoError(err)
	s.pub = pub
}

func (s *PublisherSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PublisherSuite) TestNewPublisherRequiresCollaborators() {
	_, err := NewPublisher(nil, s.index)
	s.Require().ErrorContains(err, "publishing api client is required")

	_, err = NewPublisher(s.api, nil)
	s.Require().ErrorContains(err, "search indexer is required")
}

func (s *PublisherSuite) TestPresent() {
	page := Page{
		ContentID:   "abc",
		Title:       "History",
		Description: "Old buildings",
		BasePath:    "/government/history",
	}

	got := s.pub.Present(page)

	s.Equal("abc", got.ContentID)
	s.Equal("placeholder", got.Content.DocumentType)
	s.Equal("placeholder", got.Content.SchemaName)
	s.Equal("/government/history", got.Content.BasePath)
	s.Equal("History", got.Content.Title)
	s.Equal("Old buildings", got.Content.Description)
	s.Equal("en", got.Content.Locale)
	s.Equal("whitehall", got.Content.PublishingApp)
	s.Equal("government-frontend", got.Content.RenderingApp)
	s.Equal([]Route{{Path: "/government/history", Type: "exact"}}, got.Content.Routes)
	s.Equal(s.now, got.Content.PublicUpdatedAt)
}

func (s *PublisherSuite) TestPublishSendsEveryPage() {
	pages, err := Pages()
	s.Require().NoError(err)

	for _, page := range pages {
		presented := s.pub.Present(page)
		gomock.InOrder(
			s.api.EXPECT().PutContent(gomock.Any(), page.ContentID, presented.Content).Return(nil),
			s.api.EXPECT().Publish(gomock.Any(), page.ContentID, "minor", "en").Return(nil),
		)
	}

	s.Require().NoError(s.pub.Publish(context.Background()))

	for _, page := range pages {
		doc, ok := s.index.Get(page.BasePath)
		s.Require().True(ok, page.BasePath)
		s.Equal(page.ContentID, doc.ContentID)
		s.Equal(page.Title, doc.Title)
	}
}

func (s *PublisherSuite) TestPublishStopsAtFirstError() {
	pages, err := Pages()
	s.Require().NoError(err)
	first := pages[0]

	s.api.EXPECT().PutContent(gomock.Any(), first.ContentID, gomock.Any()).Return(errors.New("boom"))

	err = s.pub.Publish(context.Background())

	s.Require().Error(err)
	s.Contains(err.Error(), first.BasePath)
	s.Contains(err.Error(), "boom")
	s.Len(s.index.Links(), 1)
}
