package topics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"govpub/pkg/platform/httputil"
	"govpub/pkg/requestcontext"
)

// Lister returns grouped topic options.
type Lister interface {
	Topics(ctx context.Context) ([]Group, error)
}

type Handler struct {
	service Lister
	logger  *slog.Logger
}

func NewHandler(service Lister, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the tagging-form options endpoint. Callers apply auth.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/linkable-topics", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groups, err := h.service.Topics(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load linkable topics",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if groups == nil {
		groups = []Group{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"topics": groups})
}
