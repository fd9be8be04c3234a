//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"govpub/internal/content/models"
	"govpub/internal/content/store"
	"govpub/pkg/platform/sentinel"
	"govpub/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg       *containers.PostgresContainer
	editions *store.PostgresEditionStore
	orgs     *store.PostgresOrganisationStore
	roles    *store.PostgresRoleStore
	taxonomy *store.PostgresTaxonomyStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.Require().NoError(store.Migrate(context.Background(), s.pg.DB))
	s.editions = store.NewPostgresEditionStore(s.pg.DB)
	s.orgs = store.NewPostgresOrganisationStore(s.pg.DB)
	s.roles = store.NewPostgresRoleStore(s.pg.DB)
	s.taxonomy = store.NewPostgresTaxonomyStore(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(),
		"edition_versions", "editions", "featured_editions", "organisations", "role_appointments", "roles", "people", "policies", "topics"))
}

func (s *PostgresStoreSuite) newEdition(mut func(*models.Edition)) *models.Edition {
	e := &models.Edition{
		ContentID: uuid.New(),
		Type:      models.TypeSpeech,
		Title:     "A speech",
		Slug:      "a-speech",
		State:     models.StateDraft,
		Locale:    "en",
	}
	if mut != nil {
		mut(e)
	}
	s.Require().NoError(s.editions.Save(context.Background(), e))
	return e
}

func (s *PostgresStoreSuite) TestEditionRoundTrip() {
	ctx := context.Background()
	published := time.Now().UTC().Truncate(time.Microsecond)
	e := s.newEdition(func(e *models.Edition) {
		e.OrganisationIDs = []int64{3, 4}
		e.PublishedAt = &published
	})
	s.Equal(e.ID, e.DocumentID)

	found, err := s.editions.FindByID(ctx, e.ID)
	s.Require().NoError(err)
	s.Equal([]int64{3, 4}, found.OrganisationIDs)
	s.Require().NotNil(found.PublishedAt)
	s.True(published.Equal(*found.PublishedAt))

	found.State = models.StatePublished
	s.Require().NoError(s.editions.Save(ctx, found))
	bySlug, err := s.editions.FindPublishedBySlug(ctx, models.TypeSpeech, "a-speech")
	s.Require().NoError(err)
	s.Equal(e.ID, bySlug.ID)

	_, err = s.editions.FindByID(ctx, 999999)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *PostgresStoreSuite) TestForcePublishCandidates() {
	ctx := context.Background()
	old := s.newEdition(func(e *models.Edition) {
		e.State = models.StatePublished
		e.OrganisationIDs = []int64{1}
		e.HasDocumentSource = true
	})
	latest := s.newEdition(func(e *models.Edition) {
		e.DocumentID = old.DocumentID
		e.OrganisationIDs = []int64{1}
		e.HasDocumentSource = true
	})
	caseStudy := s.newEdition(func(e *models.Edition) {
		e.Type = models.TypeCaseStudy
		e.OrganisationIDs = []int64{1}
		e.HasDocumentSource = true
	})
	s.newEdition(func(e *models.Edition) { e.OrganisationIDs = []int64{1} })

	got, err := s.editions.ListForcePublishCandidates(ctx, 1, nil)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(latest.ID, got[0].ID)
	s.Equal(caseStudy.ID, got[1].ID)

	got, err = s.editions.ListForcePublishCandidates(ctx, 1, []models.EditionType{models.TypeCaseStudy})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(latest.ID, got[0].ID)
}

func (s *PostgresStoreSuite) TestEachLatestByTypeBatches() {
	ctx := context.Background()
	for range 5 {
		s.newEdition(func(e *models.Edition) { e.Type = models.TypeCaseStudy })
	}

	var seen int
	err := s.editions.EachLatestByType(ctx, models.TypeCaseStudy, 2, func(*models.Edition) error {
		seen++
		return nil
	})
	s.Require().NoError(err)
	s.Equal(5, seen)

	n, err := s.editions.CountLatestByType(ctx, models.TypeCaseStudy)
	s.Require().NoError(err)
	s.Equal(5, n)
}

func (s *PostgresStoreSuite) TestRolesWithPeople() {
	ctx := context.Background()
	pm := &models.Role{Name: "Prime Minister", Seniority: 0, CabinetMember: true,
		CurrentPeople: []*models.Person{{Name: "Jo Bloggs", Forename: "Jo", Surname: "Bloggs"}}}
	s.Require().NoError(s.roles.Save(ctx, pm))
	s.Require().NoError(s.roles.Save(ctx, &models.Role{Name: "Vacant", Seniority: 50, Ordering: 1}))

	roles, err := s.roles.ListMinisterial(ctx)
	s.Require().NoError(err)
	s.Require().Len(roles, 2)
	s.Require().Len(roles[0].CurrentPeople, 1)
	s.Equal("Bloggs", roles[0].CurrentPeople[0].Surname)
	s.Empty(roles[1].CurrentPeople)
}

func (s *PostgresStoreSuite) TestTaxonomyOrder() {
	ctx := context.Background()
	s.Require().NoError(s.taxonomy.SavePolicy(ctx, &models.Policy{ID: 1, Title: "One", Slug: "one", TopicIDs: []int64{7}}))
	s.Require().NoError(s.taxonomy.SavePolicy(ctx, &models.Policy{ID: 2, Title: "Two", Slug: "two"}))

	policies, err := s.taxonomy.PoliciesByIDs(ctx, []int64{2, 1})
	s.Require().NoError(err)
	s.Require().Len(policies, 2)
	s.Equal("Two", policies[0].Title)
	s.Equal([]int64{7}, policies[1].TopicIDs)
}

func (s *PostgresStoreSuite) TestOrganisationLookup() {
	ctx := context.Background()
	org := &models.Organisation{Name: "Cabinet Office", Acronym: "CO", Slug: "cabinet-office", OrganisationType: "ministerial_department"}
	s.Require().NoError(s.orgs.Save(ctx, org))

	found, err := s.orgs.FindByAcronym(ctx, "co")
	s.Require().NoError(err)
	s.Equal(org.ID, found.ID)

	list, err := s.orgs.ListMinisterial(ctx)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *PostgresStoreSuite) TestRunInTxRollsBack() {
	ctx := context.Background()
	e := s.newEdition(nil)

	err := s.editions.RunInTx(ctx, func(ctx context.Context) error {
		e.State = models.StatePublished
		e.AccessLimited = true
		s.Require().NoError(s.editions.Save(ctx, e))
		s.Require().NoError(s.editions.RecordVersion(ctx, models.VersionEntry{
			EditionID: e.ID, Event: "update", State: models.StatePublished, CreatedAt: time.Now(),
		}))
		return errors.New("queue unavailable")
	})
	s.Require().EqualError(err, "queue unavailable")

	found, err := s.editions.FindByID(ctx, e.ID)
	s.Require().NoError(err)
	s.Equal(models.StateDraft, found.State)
	s.False(found.AccessLimited)
	versions, err := s.editions.Versions(ctx, e.ID)
	s.Require().NoError(err)
	s.Empty(versions)
}

func (s *PostgresStoreSuite) TestOrganisationPagesData() {
	ctx := context.Background()
	org := &models.Organisation{Name: "Ministry of Defence", Slug: "mod", GovukStatus: models.GovukStatusJoining, URL: "http://mod.example"}
	s.Require().NoError(s.orgs.Save(ctx, org))

	earlier := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	later := earlier.Add(30 * time.Minute)
	first := s.newEdition(func(e *models.Edition) {
		e.Type, e.State, e.PublishedAt, e.OrganisationIDs = models.TypeConsultation, models.StatePublished, &earlier, []int64{org.ID}
	})
	second := s.newEdition(func(e *models.Edition) {
		e.State, e.PublishedAt, e.OrganisationIDs = models.StatePublished, &later, []int64{org.ID}
	})
	s.Require().NoError(s.orgs.Feature(ctx, &models.FeaturedEdition{OrganisationID: org.ID, EditionID: second.ID, Ordering: 1}))
	s.Require().NoError(s.orgs.Feature(ctx, &models.FeaturedEdition{OrganisationID: org.ID, EditionID: first.ID, Ordering: 0, AltText: "alt"}))

	found, err := s.orgs.FindBySlug(ctx, "mod")
	s.Require().NoError(err)
	s.False(found.IsLive())
	s.Equal("http://mod.example", found.URL)

	featured, err := s.orgs.FeaturedEditions(ctx, org.ID)
	s.Require().NoError(err)
	s.Require().Len(featured, 2)
	s.Equal(first.ID, featured[0].EditionID)
	s.Equal("alt", featured[0].AltText)

	latest, err := s.editions.ListPublishedByOrganisation(ctx, org.ID, "", 0)
	s.Require().NoError(err)
	s.Require().Len(latest, 2)
	s.Equal(second.ID, latest[0].ID)

	consultations, err := s.editions.ListPublishedByOrganisation(ctx, org.ID, models.TypeConsultation, 1)
	s.Require().NoError(err)
	s.Require().Len(consultations, 1)
	s.Equal(first.ID, consultations[0].ID)

	s.Require().NoError(s.roles.Save(ctx, &models.Role{Name: "Chief of the Defence Staff", Slug: "cds", Kind: models.RoleMilitary,
		ChiefOfTheDefenceStaff: true, OrganisationIDs: []int64{org.ID},
		CurrentPeople: []*models.Person{{Name: "General", Slug: "general"}}}))
	roles, err := s.roles.ListByOrganisation(ctx, org.ID)
	s.Require().NoError(err)
	s.Require().Len(roles, 1)
	s.True(roles[0].ChiefOfTheDefenceStaff)
	s.Equal("general", roles[0].CurrentPeople[0].Slug)

	ministerial, err := s.roles.ListMinisterial(ctx)
	s.Require().NoError(err)
	s.Empty(ministerial)
}
