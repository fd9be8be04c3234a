package speeches

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"govpub/internal/content/models"
	"govpub/internal/content/store"
	"govpub/internal/platform/logger"
	"govpub/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctx := context.Background()
	editions := store.NewInMemoryEditionStore()
	taxonomy := store.NewInMemoryTaxonomyStore()

	for _, t := range []*models.Topic{
		{ID: 1, Name: "Energy", Slug: "energy"},
		{ID: 2, Name: "Climate change", Slug: "climate-change"},
		{ID: 3, Name: "Transport", Slug: "transport"},
	} {
		s.Require().NoError(taxonomy.SaveTopic(ctx, t))
	}
	s.Require().NoError(taxonomy.SavePolicy(ctx, &models.Policy{ID: 10, Title: "Net zero", Slug: "net-zero", TopicIDs: []int64{2, 1}}))
	s.Require().NoError(taxonomy.SavePolicy(ctx, &models.Policy{ID: 11, Title: "Rail", Slug: "rail", TopicIDs: []int64{3, 2}}))

	s.Require().NoError(editions.Save(ctx, &models.Edition{
		Type: models.TypeSpeech, Title: "Energy speech", Summary: "The minister on energy", Slug: "energy-speech",
		State: models.StatePublished, PolicyIDs: []int64{10, 11},
	}))
	s.Require().NoError(editions.Save(ctx, &models.Edition{
		Type: models.TypeSpeech, Title: "Draft speech", Slug: "draft-speech", State: models.StateDraft,
	}))

	svc, err := NewService(editions, taxonomy, logger.Discard())
	s.Require().NoError(err)
	s.router = chi.NewRouter()
	NewHandler(svc, logger.Discard()).Register(s.router)
}

func (s *HandlerSuite) TestShow() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/government/speeches/energy-speech", nil))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[speechResponse](s.T(), rr)
	s.Equal("Energy speech", resp.Title)
	s.Equal("The minister on energy", resp.MetaDescription)
	s.Equal("/government/speeches/energy-speech", resp.Path)
	s.Equal([]linkResponse{
		{Title: "Net zero", Path: "/government/policies/net-zero"},
		{Title: "Rail", Path: "/government/policies/rail"},
	}, resp.Policies)
	s.Equal([]linkResponse{
		{Title: "Climate change", Path: "/government/topics/climate-change"},
		{Title: "Energy", Path: "/government/topics/energy"},
		{Title: "Transport", Path: "/government/topics/transport"},
	}, resp.Topics)
}

func (s *HandlerSuite) TestUnpublishedSpeechIsNotFound() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/government/speeches/draft-speech", nil))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestSpeechWithoutPolicies() {
	ctx := context.Background()
	editions := store.NewInMemoryEditionStore()
	s.Require().NoError(editions.Save(ctx, &models.Edition{Type: models.TypeSpeech, Title: "Solo", Slug: "solo", State: models.StatePublished}))
	svc, err := NewService(editions, store.NewInMemoryTaxonomyStore(), nil)
	s.Require().NoError(err)

	page, err := svc.Show(ctx, "solo")
	s.Require().NoError(err)
	s.Empty(page.Policies)
	s.Empty(page.Topics)
}
