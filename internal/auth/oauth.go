// Package auth is the confidential half of the LinkedIn sign-in: it holds
// the client secret and proxies the token exchange and userinfo calls.
package auth

import (
	"net/http"

	"github.com/brizzai/profile-viewer/internal/auth/constants"
	"github.com/brizzai/profile-viewer/internal/auth/handlers"
	"github.com/brizzai/profile-viewer/internal/auth/middleware"
	"github.com/brizzai/profile-viewer/internal/auth/models"
	"github.com/brizzai/profile-viewer/internal/auth/providers"
	"github.com/brizzai/profile-viewer/internal/config"
	"github.com/brizzai/profile-viewer/internal/metrics"
	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
)

// Service represents the OAuth proxy
type Service struct {
	config   *config.LinkedInConfig
	provider providers.Provider
	handler  *handlers.Handler
}

// NewService creates a new OAuth proxy service
func NewService(cfg *config.LinkedInConfig, provider providers.Provider, m *metrics.Metrics) *Service {
	public := models.PublicConfig{
		ClientID:    cfg.ClientID,
		RedirectURI: cfg.RedirectURI,
	}

	return &Service{
		config:   cfg,
		provider: provider,
		handler:  handlers.NewHandler(public, provider, m),
	}
}

// RegisterRoutes mounts the proxy endpoints under /api/linkedin
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Route(constants.APIPrefix, func(r chi.Router) {
		r.Get("/config", s.handler.HandleConfig)
		r.Post("/token", s.handler.HandleToken)
		r.With(middleware.RequireBearer(http.HandlerFunc(s.handler.HandleUnauthorized))).
			Get("/profile", s.handler.HandleProfile)
	})
}

// GetProvider returns the configured provider
func (s *Service) GetProvider() providers.Provider {
	return s.provider
}

var Module = fx.Module("auth",
	fx.Provide(NewService),
)
