// Package handler assembles the HTTP routing for the backend.
package handler

import (
	"net/http"

	"github.com/brizzai/profile-viewer/internal/auth"
	"github.com/brizzai/profile-viewer/internal/auth/constants"
	"github.com/brizzai/profile-viewer/internal/auth/middleware"
	"github.com/brizzai/profile-viewer/internal/config"
	"github.com/brizzai/profile-viewer/internal/logger"
	"github.com/brizzai/profile-viewer/internal/metrics"
	"github.com/brizzai/profile-viewer/internal/utils"
	"github.com/brizzai/profile-viewer/internal/web"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
)

// Handler manages HTTP request handling and middleware configuration.
type Handler struct {
	config  *config.ServerConfig
	auth    *auth.Service
	metrics *metrics.Metrics
	assets  *web.Assets
}

// NewHandler creates a new HTTP handler.
func NewHandler(cfg *config.ServerConfig, authService *auth.Service, m *metrics.Metrics, assets *web.Assets) *Handler {
	return &Handler{
		config:  cfg,
		auth:    authService,
		metrics: m,
		assets:  assets,
	}
}

// CreateHTTPHandler builds the router: API routes, operational endpoints and
// the browser client as the fallback for everything else.
func (h *Handler) CreateHTTPHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSWithOrigins(h.config.AllowOrigins))

	h.auth.RegisterRoutes(r)
	logger.Info("Registered LinkedIn proxy routes")

	r.Get(constants.HealthzPath, func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle(constants.MetricsPath, h.metrics.Handler())

	r.Handle(constants.StaticPattern, h.assets)
	r.NotFound(h.assets.ServeHTTP)

	return r
}

// Module provides the HTTP handler
var Module = fx.Module("http_handler",
	fx.Provide(
		NewHandler,
		web.NewAssets,
	),
)
