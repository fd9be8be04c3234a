package httptransport

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"govpub/internal/content/models"
	"govpub/internal/content/store"
	"govpub/internal/emailsignup"
	jwttoken "govpub/internal/jwt_token"
	"govpub/internal/ministers"
	"govpub/internal/organisations"
	"govpub/internal/platform/logger"
	"govpub/internal/platform/metrics"
	"govpub/internal/speeches"
	"govpub/pkg/testutil"
)

type RouterSuite struct {
	suite.Suite
	router http.Handler
	tokens *jwttoken.JWTService
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	log := logger.Discard()
	reg := prometheus.NewRegistry()
	s.tokens = jwttoken.NewJWTService("test-signing-key", "govpub")

	ministerService, err := ministers.NewService(store.NewInMemoryRoleStore(), store.NewInMemoryOrganisationStore())
	s.Require().NoError(err)
	speechService, err := speeches.NewService(store.NewInMemoryEditionStore(), store.NewInMemoryTaxonomyStore(), log)
	s.Require().NoError(err)
	organisationService, err := organisations.NewService(store.NewInMemoryOrganisationStore(), store.NewInMemoryRoleStore(), store.NewInMemoryEditionStore(), log)
	s.Require().NoError(err)

	s.router = NewRouter(Config{
		Logger:    log,
		Metrics:   metrics.New(reg),
		Gatherer:  reg,
		Validator: s.tokens,
	}, Handlers{
		Ministers:     ministers.NewHandler(ministerService, log),
		Speeches:      speeches.NewHandler(speechService, log),
		Organisations: organisations.NewHandler(organisationService, log),
		EmailSignup:   emailsignup.NewHandler(emailsignup.NewResolver(store.NewInMemoryOrganisationStore()), log),
	})
}

func (s *RouterSuite) token(permissions ...string) string {
	tok, err := s.tokens.GenerateAccessToken(1, "Editor", "editor@example.com", permissions, time.Hour)
	s.Require().NoError(err)
	return tok
}

func (s *RouterSuite) TestHealthcheckAndRequestID() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/healthcheck", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.NotEmpty(rr.Header().Get("X-Request-ID"))
}

func (s *RouterSuite) TestMetricsExposed() {
	testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/government/ministers", nil))
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/metrics", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Contains(rr.Body.String(), "govpub_http_requests_total")
}

func (s *RouterSuite) TestPublicRoutes() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/government/ministers", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/government/speeches/missing", nil))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/government/organisations", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/government/organisations/missing", nil))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *RouterSuite) TestAdminRequiresToken() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/cabinet-ministers", nil))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
}

func (s *RouterSuite) TestCabinetOrderingRequiresPermission() {
	req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/cabinet-ministers", nil)
	req.Header.Set("Authorization", "Bearer "+s.token(models.PermissionGDSEditor))
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")

	req = testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/cabinet-ministers", nil)
	req.Header.Set("Authorization", "Bearer "+s.token(models.PermissionCabinetOrdering))
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
}
