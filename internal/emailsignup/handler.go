package emailsignup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "govpub/pkg/domain-errors"
	"govpub/pkg/platform/httputil"
	"govpub/pkg/requestcontext"
)

// PathResolver maps a feed URL to its signup page.
type PathResolver interface {
	Path(ctx context.Context, feedURL string) (string, error)
}

type Handler struct {
	resolver PathResolver
	logger   *slog.Logger
}

func NewHandler(resolver PathResolver, logger *slog.Logger) *Handler {
	return &Handler{resolver: resolver, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/email-signup/link", h.handleLink)
}

func (h *Handler) handleLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	feed := r.URL.Query().Get("feed")
	if feed == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "feed is required"))
		return
	}
	path, err := h.resolver.Path(ctx, feed)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve email signup path",
			"request_id", requestcontext.RequestID(ctx),
			"feed", feed,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve email signup path"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"path": path})
}
