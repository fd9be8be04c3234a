package speeches

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "govpub/pkg/domain-errors"
	"govpub/pkg/platform/httputil"
	"govpub/pkg/requestcontext"
)

// Shower loads speech pages.
type Shower interface {
	Show(ctx context.Context, slug string) (*Page, error)
}

type Handler struct {
	service Shower
	logger  *slog.Logger
}

func NewHandler(service Shower, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/government/speeches/{slug}", h.handleShow)
}

type linkResponse struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

type speechResponse struct {
	Title           string         `json:"title"`
	Summary         string         `json:"summary"`
	Body            string         `json:"body"`
	Path            string         `json:"path"`
	PublishedAt     *time.Time     `json:"published_at,omitempty"`
	MetaDescription string         `json:"meta_description"`
	Policies        []linkResponse `json:"policies"`
	Topics          []linkResponse `json:"topics"`
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := h.service.Show(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "failed to load speech",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	resp := speechResponse{
		Title:           page.Speech.Title,
		Summary:         page.Speech.Summary,
		Body:            page.Speech.Body,
		Path:            page.Speech.PublicPath(),
		PublishedAt:     page.Speech.PublishedAt,
		MetaDescription: page.MetaDescription,
		Policies:        make([]linkResponse, 0, len(page.Policies)),
		Topics:          make([]linkResponse, 0, len(page.Topics)),
	}
	for _, p := range page.Policies {
		resp.Policies = append(resp.Policies, linkResponse{Title: p.Title, Path: "/government/policies/" + p.Slug})
	}
	for _, t := range page.Topics {
		resp.Topics = append(resp.Topics, linkResponse{Title: t.Name, Path: "/government/topics/" + t.Slug})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
