package organisations

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"govpub/internal/content/models"
	dErrors "govpub/pkg/domain-errors"
	"govpub/pkg/platform/httputil"
	"govpub/pkg/requestcontext"
)

// Pages loads the organisation pages.
type Pages interface {
	Index(ctx context.Context) ([]*models.Organisation, error)
	Show(ctx context.Context, slug string) (*Page, error)
	ManagementTeam(ctx context.Context, slug string) (*ManagementTeam, error)
	ChiefsOfStaff(ctx context.Context, slug string) (*ChiefsOfStaff, error)
	Consultations(ctx context.Context, slug string) (*Consultations, error)
}

type Handler struct {
	service Pages
	logger  *slog.Logger
}

func NewHandler(service Pages, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/government/organisations", h.handleIndex)
	r.Get("/government/organisations/{slug}", h.handleShow)
	r.Get("/government/organisations/{slug}/management-team", h.handleManagementTeam)
	r.Get("/government/organisations/{slug}/chiefs-of-staff", h.handleChiefsOfStaff)
	r.Get("/government/organisations/{slug}/consultations", h.handleConsultations)
}

type organisationResponse struct {
	ID          int64    `json:"id"`
	DomID       string   `json:"dom_id"`
	Name        string   `json:"name"`
	Acronym     string   `json:"acronym,omitempty"`
	Slug        string   `json:"slug"`
	Path        string   `json:"path"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type,omitempty"`
	CSSClasses  []string `json:"css_classes"`
}

type personResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	ImageURL string `json:"image_url"`
}

type roleResponse struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	Path              string           `json:"path"`
	CurrentAppointees []personResponse `json:"current_appointees"`
}

type editionResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Summary      string     `json:"summary"`
	DocumentType string     `json:"document_type"`
	Path         string     `json:"path"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

type featuredResponse struct {
	editionResponse
	ImageURL string `json:"image_url,omitempty"`
	AltText  string `json:"alt_text,omitempty"`
}

type thumbnailResponse struct {
	URL      string `json:"url"`
	ImageURL string `json:"image_url"`
}

type showResponse struct {
	Template               string               `json:"template"`
	Organisation           organisationResponse `json:"organisation"`
	Thumbnail              *thumbnailResponse   `json:"thumbnail,omitempty"`
	PrimaryFeatured        []featuredResponse   `json:"primary_featured_editions"`
	SecondaryFeatured      []featuredResponse   `json:"secondary_featured_editions"`
	MinisterialRoles       []roleResponse       `json:"ministerial_roles"`
	ChiefOfTheDefenceStaff *roleResponse        `json:"chief_of_the_defence_staff,omitempty"`
	ChiefsOfStaffPath      string               `json:"chiefs_of_staff_path,omitempty"`
	Latest                 []editionResponse    `json:"latest"`
}

type managementTeamResponse struct {
	Template     string               `json:"template"`
	Organisation organisationResponse `json:"organisation"`
	Leading      []roleResponse       `json:"permanent_secretary_board_members"`
	Others       []roleResponse       `json:"other_board_members"`
}

type rolesResponse struct {
	Template     string               `json:"template"`
	Organisation organisationResponse `json:"organisation"`
	Roles        []roleResponse       `json:"roles"`
}

type consultationsResponse struct {
	Template      string               `json:"template"`
	Organisation  organisationResponse `json:"organisation"`
	Consultations []editionResponse    `json:"consultations"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.service.Index(r.Context())
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	resp := make([]organisationResponse, 0, len(orgs))
	for _, o := range orgs {
		resp = append(resp, toOrganisation(o))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"template": "index", "organisations": resp})
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Show(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	org := page.Organisation
	resp := showResponse{
		Template:          page.Template,
		Organisation:      toOrganisation(org),
		PrimaryFeatured:   toFeatured(page.PrimaryFeatured),
		SecondaryFeatured: toFeatured(page.SecondaryFeatured),
		MinisterialRoles:  toRoles(page.MinisterialRoles),
		Latest:            toEditions(page.Latest),
	}
	if page.Type != nil {
		resp.Organisation.Type = page.Type.Name
	}
	if page.Template == TemplateExternal {
		resp.Thumbnail = &thumbnailResponse{URL: org.URL, ImageURL: thumbnailPath(org)}
	}
	if page.ChiefOfTheDefenceStaff != nil {
		role := toRole(page.ChiefOfTheDefenceStaff)
		resp.ChiefOfTheDefenceStaff = &role
	}
	if page.HasChiefsOfStaff {
		resp.ChiefsOfStaffPath = org.Path() + "/chiefs-of-staff"
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleManagementTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.service.ManagementTeam(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, managementTeamResponse{
		Template:     "management_team",
		Organisation: toOrganisation(team.Organisation),
		Leading:      toRoles(team.Leading),
		Others:       toRoles(team.Others),
	})
}

func (h *Handler) handleChiefsOfStaff(w http.ResponseWriter, r *http.Request) {
	chiefs, err := h.service.ChiefsOfStaff(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rolesResponse{
		Template:     "chiefs_of_staff",
		Organisation: toOrganisation(chiefs.Organisation),
		Roles:        toRoles(chiefs.Roles),
	})
}

func (h *Handler) handleConsultations(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Consultations(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, consultationsResponse{
		Template:      "consultations",
		Organisation:  toOrganisation(list.Organisation),
		Consultations: toEditions(list.Consultations),
	})
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "failed to load organisation page",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

func toOrganisation(o *models.Organisation) organisationResponse {
	return organisationResponse{
		ID:          o.ID,
		DomID:       domID(o),
		Name:        o.Name,
		Acronym:     o.Acronym,
		Slug:        o.Slug,
		Path:        o.Path(),
		Description: o.Description,
		CSSClasses:  cssClasses(o),
	}
}

func toRole(r *models.Role) roleResponse {
	resp := roleResponse{ID: r.ID, Name: r.Name, Path: r.Path(), CurrentAppointees: make([]personResponse, 0, len(r.CurrentPeople))}
	for _, p := range r.CurrentPeople {
		resp.CurrentAppointees = append(resp.CurrentAppointees, personResponse{Name: p.Name, Path: p.Path(), ImageURL: personImage(p)})
	}
	return resp
}

func toRoles(roles []*models.Role) []roleResponse {
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRole(r))
	}
	return out
}

// personImage falls back to the generic silhouette.
func personImage(p *models.Person) string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return "/government/assets/blank-person.png"
}

func toEdition(e *models.Edition) editionResponse {
	name := e.Type.FormatName()
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return editionResponse{
		ID:           e.ID,
		Title:        e.Title,
		Summary:      e.Summary,
		DocumentType: name,
		Path:         e.PublicPath(),
		PublishedAt:  e.PublishedAt,
	}
}

func toEditions(editions []*models.Edition) []editionResponse {
	out := make([]editionResponse, 0, len(editions))
	for _, e := range editions {
		out = append(out, toEdition(e))
	}
	return out
}

func toFeatured(featured []Featured) []featuredResponse {
	out := make([]featuredResponse, 0, len(featured))
	for _, f := range featured {
		out = append(out, featuredResponse{editionResponse: toEdition(f.Edition), ImageURL: f.ImageURL, AltText: f.AltText})
	}
	return out
}
