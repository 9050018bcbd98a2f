// Package client drives the sign-in flow from the user's side: it holds the
// session's OAuth config, talks to the backend and keeps the access token.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/brizzai/profile-viewer/internal/logger"
	"go.uber.org/zap"
)

// User visible messages.
const (
	MsgMissingClientID = "LinkedIn Client ID not configured. Please check your .env file and restart the server."
	MsgUnexpected      = "An unexpected error occurred. Please try again."
)

// Controller runs one step of the flow per call and returns the State to
// show next. Failures never escape as errors; they become error states.
type Controller struct {
	config  Config
	backend Backend
	store   TokenStore
}

func NewController(cfg Config, backend Backend, store TokenStore) *Controller {
	return &Controller{
		config:  cfg,
		backend: backend,
		store:   store,
	}
}

func (c *Controller) Config() Config {
	return c.config
}

// CheckForAuthCode decides the initial state from the URL the provider
// redirected to. rawURL may be empty. The returned URL has its query removed
// when an authorization code was consumed.
func (c *Controller) CheckForAuthCode(ctx context.Context, rawURL string) (State, string) {
	var query url.Values
	if rawURL != "" {
		u, err := url.Parse(rawURL)
		if err != nil {
			logger.Warn("Could not parse redirect URL", zap.Error(err))
			return Failed(fmt.Sprintf("Authentication failed: %s", err)), rawURL
		}
		query = u.Query()

		if e := query.Get("error"); e != "" {
			logger.Warn("Provider returned an error", zap.String("error", e),
				zap.String("description", query.Get("error_description")))
			return Failed(fmt.Sprintf("LinkedIn authentication failed: %s", e)), rawURL
		}

		code, state := query.Get("code"), query.Get("state")
		if code != "" && state != "" {
			u.RawQuery = ""
			u.Fragment = ""
			if state != c.config.State() {
				logger.Warn("OAuth state does not match this session",
					zap.String("expected", c.config.State()),
					zap.String("received", state),
				)
			}
			return c.ExchangeCode(ctx, code), u.String()
		}
	}

	token, err := c.store.Get()
	if err != nil {
		logger.Warn("Could not read stored token", zap.Error(err))
	}
	if token != "" {
		return c.FetchProfile(ctx, token), rawURL
	}
	return LoggedOut(), rawURL
}

// InitiateLogin returns the provider URL to send the user to.
func (c *Controller) InitiateLogin() (string, error) {
	authURL, err := c.config.AuthorizationURL()
	if err != nil {
		logger.Warn("Login attempted without a client id")
		return "", err
	}
	logger.Info("Starting LinkedIn login", zap.String("state", c.config.State()))
	return authURL, nil
}

// ExchangeCode trades the code for a token, stores it and loads the profile.
func (c *Controller) ExchangeCode(ctx context.Context, code string) State {
	token, err := c.backend.ExchangeCode(ctx, code)
	if err != nil {
		logger.Error("Token exchange error", zap.Error(err))
		return Failed(fmt.Sprintf("Authentication failed: %s", messageOf(err)))
	}

	if err := c.store.Set(token); err != nil {
		logger.Warn("Could not store access token", zap.Error(err))
	}

	return c.FetchProfile(ctx, token)
}

// FetchProfile loads the profile with token.
func (c *Controller) FetchProfile(ctx context.Context, token string) State {
	profile, err := c.backend.FetchProfile(ctx, token)
	if err != nil {
		logger.Error("Profile fetch error", zap.Error(err))
		return Failed(fmt.Sprintf("Failed to load profile: %s", messageOf(err)))
	}
	return ProfileLoaded(profile)
}

// Logout forgets the stored token.
func (c *Controller) Logout() State {
	if err := c.store.Clear(); err != nil {
		logger.Warn("Could not clear stored token", zap.Error(err))
	}
	return LoggedOut()
}

// Retry goes back to the login prompt.
func (c *Controller) Retry() State {
	return LoggedOut()
}

func messageOf(err error) string {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}
