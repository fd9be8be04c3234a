// Package httptransport assembles the public and admin HTTP surfaces.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"govpub/internal/content/models"
	"govpub/internal/platform/metrics"
	"govpub/internal/platform/middleware"
	"govpub/pkg/platform/httputil"
)

// Registrar mounts a handler's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Handlers holds everything the router mounts. Nil handlers are skipped.
type Handlers struct {
	Ministers         MinistersHandler
	Speeches          Registrar
	Organisations     Registrar
	EmailSignup       Registrar
	BulkUpload        Registrar
	StatsAnnouncement Registrar
	Topics            Registrar
}

// MinistersHandler splits public and admin routes.
type MinistersHandler interface {
	RegisterPublic(r chi.Router)
	RegisterAdmin(r chi.Router)
}

// Config carries the router's cross-cutting collaborators.
type Config struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Validator middleware.TokenValidator
}

// NewRouter wires the middleware chain, public pages and the authenticated
// admin group.
func NewRouter(cfg Config, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(cfg.Logger, cfg.Metrics))
	r.Use(middleware.Recovery(cfg.Logger))

	r.Get("/healthcheck", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	if h.Ministers != nil {
		h.Ministers.RegisterPublic(r)
	}
	mount(r, h.Speeches)
	mount(r, h.Organisations)
	mount(r, h.EmailSignup)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth(cfg.Validator, cfg.Logger))
		mount(admin, h.BulkUpload)
		mount(admin, h.StatsAnnouncement)
		mount(admin, h.Topics)

		if h.Ministers != nil {
			admin.Group(func(ordering chi.Router) {
				ordering.Use(middleware.RequirePermission(models.PermissionCabinetOrdering, cfg.Logger))
				h.Ministers.RegisterAdmin(ordering)
			})
		}
	})
	return r
}

func mount(r chi.Router, reg Registrar) {
	if reg != nil {
		reg.Register(r)
	}
}
