package ministers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"govpub/internal/content/models"
	"govpub/internal/ministers"
	"govpub/internal/ministers/mocks"
	"govpub/internal/platform/logger"
	"govpub/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks GroupsService
type HandlerSuite struct {
	suite.Suite
	service *mocks.MockGroupsService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockGroupsService(ctrl)
	h := ministers.NewHandler(s.service, logger.Discard())
	s.router = chi.NewRouter()
	h.RegisterPublic(s.router)
	h.RegisterAdmin(s.router)
}

type ministersBody struct {
	CabinetMinisters []struct {
		Person struct {
			Name string `json:"name"`
		} `json:"person"`
		Roles []struct {
			Name string `json:"name"`
		} `json:"roles"`
	} `json:"cabinet_ministers"`
	AlsoAttendsCabinet []any `json:"also_attends_cabinet"`
	OtherMinisters     []any `json:"other_ministers"`
}

func (s *HandlerSuite) TestIndex() {
	s.Run("renders grouped ministers", func() {
		groups := ministers.Sort([]*models.Role{{
			ID: 1, Name: "Prime Minister", CabinetMember: true,
			CurrentPeople: []*models.Person{{ID: 1, Name: "Alex Prime"}},
		}})
		s.service.EXPECT().Groups(gomock.Any()).Return(groups, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodGet, "/government/ministers", ""))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		body := testutil.UnmarshalResponse[ministersBody](s.T(), rr)
		s.Require().Len(body.CabinetMinisters, 1)
		s.Equal("Alex Prime", body.CabinetMinisters[0].Person.Name)
		s.Equal("Prime Minister", body.CabinetMinisters[0].Roles[0].Name)
		s.NotNil(body.AlsoAttendsCabinet)
		s.NotNil(body.OtherMinisters)
	})

	s.Run("store failure is an internal error", func() {
		s.service.EXPECT().Groups(gomock.Any()).Return(ministers.Groups{}, errors.New("boom"))

		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodGet, "/government/ministers", ""))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "internal_error")
	})
}

func (s *HandlerSuite) TestOrdering() {
	s.service.EXPECT().Ordering(gomock.Any()).Return(ministers.Ordering{
		CabinetRoles:  []*models.Role{{ID: 2, Name: "Chancellor", Seniority: 1}},
		Organisations: []*models.Organisation{{ID: 5, Name: "HM Treasury", MinisterialOrdering: 3}},
	}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodGet, "/admin/cabinet-ministers", ""))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Contains(rr.Header().Get("Content-Type"), "text/html")
	s.Contains(rr.Body.String(), `name="roles[2][ordering]"`)
	s.Contains(rr.Body.String(), `name="organisation[5][ordering]" id="organisation_5_ordering" value="3"`)
}
