package statsannouncement

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"govpub/internal/content/models"
	dErrors "govpub/pkg/domain-errors"
	"govpub/pkg/platform/httputil"
	"govpub/pkg/requestcontext"
)

const indexPath = "/admin/statistics-announcements"

// Unpublisher is the service surface used by the handler.
type Unpublisher interface {
	Find(ctx context.Context, slug string) (*models.StatisticsAnnouncement, error)
	Unpublish(ctx context.Context, announcement *models.StatisticsAnnouncement, redirectURL string) error
}

type Handler struct {
	service Unpublisher
	logger  *slog.Logger
}

func NewHandler(service Unpublisher, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the unpublish routes. Callers apply auth.
func (h *Handler) Register(r chi.Router) {
	r.Get(indexPath+"/{slug}/unpublish/new", h.handleNew)
	r.Post(indexPath+"/{slug}/unpublish", h.handleCreate)
}

type announcementResponse struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	PublishingState string `json:"publishing_state"`
}

type formState struct {
	Template               string               `json:"template"`
	StatisticsAnnouncement announcementResponse `json:"statistics_announcement"`
	RedirectURL            string               `json:"redirect_url"`
	Errors                 []string             `json:"errors,omitempty"`
}

type unpublishRequest struct {
	StatisticsAnnouncement struct {
		RedirectURL string `json:"redirect_url"`
	} `json:"statistics_announcement"`
}

func toResponse(a *models.StatisticsAnnouncement) announcementResponse {
	return announcementResponse{Slug: a.Slug, Title: a.Title, PublishingState: a.PublishingState}
}

func (h *Handler) find(w http.ResponseWriter, r *http.Request) (*models.StatisticsAnnouncement, bool) {
	ctx := r.Context()
	announcement, err := h.service.Find(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "failed to load statistics announcement",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return nil, false
	}
	return announcement, true
}

func (h *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	announcement, ok := h.find(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, formState{
		Template:               "new",
		StatisticsAnnouncement: toResponse(announcement),
		RedirectURL:            announcement.RedirectURL,
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	announcement, ok := h.find(w, r)
	if !ok {
		return
	}

	var req unpublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	redirectURL := req.StatisticsAnnouncement.RedirectURL

	if err := h.service.Unpublish(ctx, announcement, redirectURL); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, formState{
				Template:               "new",
				StatisticsAnnouncement: toResponse(announcement),
				RedirectURL:            redirectURL,
				Errors:                 verr.Messages,
			})
			return
		}
		h.logger.ErrorContext(ctx, "failed to unpublish statistics announcement",
			"request_id", requestcontext.RequestID(ctx),
			"slug", announcement.Slug,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	http.Redirect(w, r, indexPath, http.StatusSeeOther)
}
