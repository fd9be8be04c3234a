package ministers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"govpub/pkg/platform/httputil"
	"govpub/pkg/requestcontext"
)

// GroupsService is the read side the handler needs.
type GroupsService interface {
	Groups(ctx context.Context) (Groups, error)
	Ordering(ctx context.Context) (Ordering, error)
}

// Handler serves the public ministers roster and the admin ordering form.
type Handler struct {
	service GroupsService
	logger  *slog.Logger
}

func NewHandler(service GroupsService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the public ministers routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/government/ministers", h.handleIndex)
}

// RegisterAdmin mounts the admin ordering routes. Callers apply auth.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/cabinet-ministers", h.handleOrdering)
}

type personResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type roleResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Seniority int    `json:"seniority"`
}

type ministerResponse struct {
	Person personResponse `json:"person"`
	Roles  []roleResponse `json:"roles"`
}

type groupsResponse struct {
	CabinetMinisters   []ministerResponse `json:"cabinet_ministers"`
	AlsoAttendsCabinet []ministerResponse `json:"also_attends_cabinet"`
	OtherMinisters     []ministerResponse `json:"other_ministers"`
}

func toResponse(ms []Minister) []ministerResponse {
	out := make([]ministerResponse, 0, len(ms))
	for _, m := range ms {
		roles := make([]roleResponse, 0, len(m.Roles))
		for _, r := range m.Roles {
			roles = append(roles, roleResponse{ID: r.ID, Name: r.Name, Seniority: r.Seniority})
		}
		out = append(out, ministerResponse{
			Person: personResponse{ID: m.Person.ID, Name: m.Person.Name},
			Roles:  roles,
		})
	}
	return out
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groups, err := h.service.Groups(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load ministers",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, groupsResponse{
		CabinetMinisters:   toResponse(groups.Cabinet),
		AlsoAttendsCabinet: toResponse(groups.AttendsCabinet),
		OtherMinisters:     toResponse(groups.OtherMinisters),
	})
}

func (h *Handler) handleOrdering(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ordering, err := h.service.Ordering(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load cabinet ordering",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := OrderingPage(ordering.CabinetRoles, ordering.AttendeeRoles, ordering.Organisations).Render(ctx, w); err != nil {
		h.logger.ErrorContext(ctx, "failed to render cabinet ordering",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}
