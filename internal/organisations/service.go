// Package organisations serves the public organisation pages: the index,
// an organisation's home page and its people subpages.
package organisations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"govpub/internal/content/models"
	"govpub/internal/orgtype"
	dErrors "govpub/pkg/domain-errors"
	"govpub/pkg/platform/sentinel"
)

const (
	primaryFeaturedLimit   = 3
	secondaryFeaturedLimit = 3
	latestLimit            = 4
)

// Templates rendered for an organisation's home page.
const (
	TemplateShow     = "show"
	TemplateExternal = "external"
)

type OrganisationStore interface {
	List(ctx context.Context) ([]*models.Organisation, error)
	FindBySlug(ctx context.Context, slug string) (*models.Organisation, error)
	FeaturedEditions(ctx context.Context, organisationID int64) ([]*models.FeaturedEdition, error)
}

type RoleStore interface {
	ListByOrganisation(ctx context.Context, organisationID int64) ([]*models.Role, error)
}

type EditionStore interface {
	FindByID(ctx context.Context, id int64) (*models.Edition, error)
	ListPublishedByOrganisation(ctx context.Context, organisationID int64, typ models.EditionType, limit int) ([]*models.Edition, error)
}

// Featured is a featured edition with the image chosen for it.
type Featured struct {
	Edition  *models.Edition
	ImageURL string
	AltText  string
}

// Page is an organisation's home page.
type Page struct {
	Template     string
	Organisation *models.Organisation
	// Type is nil when the organisation's type key is not registered.
	Type                   *orgtype.Type
	PrimaryFeatured        []Featured
	SecondaryFeatured      []Featured
	MinisterialRoles       []*models.Role
	ChiefOfTheDefenceStaff *models.Role
	HasChiefsOfStaff       bool
	Latest                 []*models.Edition
}

// ManagementTeam lists board members, permanent secretaries first.
type ManagementTeam struct {
	Organisation *models.Organisation
	Leading      []*models.Role
	Others       []*models.Role
}

// ChiefsOfStaff lists the organisation's military roles.
type ChiefsOfStaff struct {
	Organisation *models.Organisation
	Roles        []*models.Role
}

// Consultations lists the organisation's published consultations.
type Consultations struct {
	Organisation  *models.Organisation
	Consultations []*models.Edition
}

type Service struct {
	organisations OrganisationStore
	roles         RoleStore
	editions      EditionStore
	logger        *slog.Logger
}

func NewService(organisations OrganisationStore, roles RoleStore, editions EditionStore, logger *slog.Logger) (*Service, error) {
	if organisations == nil {
		return nil, errors.New("organisation store is required")
	}
	if roles == nil {
		return nil, errors.New("role store is required")
	}
	if editions == nil {
		return nil, errors.New("edition store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{organisations: organisations, roles: roles, editions: editions, logger: logger}, nil
}

// Index lists every organisation alphabetically by name.
func (s *Service) Index(ctx context.Context) ([]*models.Organisation, error) {
	orgs, err := s.organisations.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list organisations")
	}
	c := collate.New(language.BritishEnglish, collate.IgnoreCase, collate.IgnoreDiacritics)
	slices.SortStableFunc(orgs, func(a, b *models.Organisation) int {
		return c.CompareString(a.Name, b.Name)
	})
	return orgs, nil
}

func (s *Service) find(ctx context.Context, slug string) (*models.Organisation, error) {
	org, err := s.organisations.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "organisation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organisation")
	}
	return org, nil
}

// Show builds the organisation's home page. Organisations not yet live on
// GOV.UK get the external template.
func (s *Service) Show(ctx context.Context, slug string) (*Page, error) {
	org, err := s.find(ctx, slug)
	if err != nil {
		return nil, err
	}
	page := &Page{Template: TemplateShow, Organisation: org}
	if t, err := orgtype.Parse(org.OrganisationType); err == nil {
		page.Type = t
	}
	if !org.IsLive() {
		page.Template = TemplateExternal
	}

	featured, err := s.featured(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	page.PrimaryFeatured = featured[:min(len(featured), primaryFeaturedLimit)]
	if len(featured) > primaryFeaturedLimit {
		rest := featured[primaryFeaturedLimit:]
		page.SecondaryFeatured = rest[:min(len(rest), secondaryFeaturedLimit)]
	}

	roles, err := s.roles.ListByOrganisation(ctx, org.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load roles")
	}
	for _, r := range roles {
		switch r.KindOrDefault() {
		case models.RoleMinisterial:
			page.MinisterialRoles = append(page.MinisterialRoles, r)
		case models.RoleMilitary:
			page.HasChiefsOfStaff = true
			if r.ChiefOfTheDefenceStaff && page.ChiefOfTheDefenceStaff == nil {
				page.ChiefOfTheDefenceStaff = r
			}
		}
	}

	page.Latest, err = s.editions.ListPublishedByOrganisation(ctx, org.ID, "", latestLimit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load latest editions")
	}
	return page, nil
}

// featured loads the organisation's featured editions in association order,
// skipping any that are missing or no longer published.
func (s *Service) featured(ctx context.Context, organisationID int64) ([]Featured, error) {
	links, err := s.organisations.FeaturedEditions(ctx, organisationID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load featured editions")
	}
	out := make([]Featured, 0, len(links))
	for _, l := range links {
		edition, err := s.editions.FindByID(ctx, l.EditionID)
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "featured edition missing",
				"organisation_id", organisationID,
				"edition_id", l.EditionID,
			)
			continue
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to load featured edition %d", l.EditionID))
		}
		if !edition.IsPublished() {
			continue
		}
		out = append(out, Featured{Edition: edition, ImageURL: l.ImageURL, AltText: l.AltText})
	}
	return out, nil
}

func (s *Service) rolesOf(ctx context.Context, org *models.Organisation, kind models.RoleKind) ([]*models.Role, error) {
	roles, err := s.roles.ListByOrganisation(ctx, org.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load roles")
	}
	return slices.DeleteFunc(roles, func(r *models.Role) bool { return r.KindOrDefault() != kind }), nil
}

// ManagementTeam splits the board into permanent secretaries and the rest.
func (s *Service) ManagementTeam(ctx context.Context, slug string) (*ManagementTeam, error) {
	org, err := s.find(ctx, slug)
	if err != nil {
		return nil, err
	}
	roles, err := s.rolesOf(ctx, org, models.RoleBoardMember)
	if err != nil {
		return nil, err
	}
	team := &ManagementTeam{Organisation: org}
	for _, r := range roles {
		if r.PermanentSecretary {
			team.Leading = append(team.Leading, r)
		} else {
			team.Others = append(team.Others, r)
		}
	}
	return team, nil
}

func (s *Service) ChiefsOfStaff(ctx context.Context, slug string) (*ChiefsOfStaff, error) {
	org, err := s.find(ctx, slug)
	if err != nil {
		return nil, err
	}
	roles, err := s.rolesOf(ctx, org, models.RoleMilitary)
	if err != nil {
		return nil, err
	}
	return &ChiefsOfStaff{Organisation: org, Roles: roles}, nil
}

// Consultations are newest first.
func (s *Service) Consultations(ctx context.Context, slug string) (*Consultations, error) {
	org, err := s.find(ctx, slug)
	if err != nil {
		return nil, err
	}
	editions, err := s.editions.ListPublishedByOrganisation(ctx, org.ID, models.TypeConsultation, 0)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load consultations")
	}
	return &Consultations{Organisation: org, Consultations: editions}, nil
}

// cssClasses are the classes placed on every organisation page: the dom id
// is separate, then the slug and the dasherised type key.
func cssClasses(org *models.Organisation) []string {
	classes := []string{org.Slug}
	if org.OrganisationType != "" {
		classes = append(classes, strings.ReplaceAll(org.OrganisationType, "_", "-"))
	}
	return classes
}

func domID(org *models.Organisation) string {
	return fmt.Sprintf("organisation_%d", org.ID)
}

// thumbnailPath is the screenshot of an external organisation's own site.
func thumbnailPath(org *models.Organisation) string {
	return "/government/assets/organisation_screenshots/" + org.Slug + ".png"
}
