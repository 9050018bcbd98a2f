package client

import (
	"context"
	"errors"
	"slices"

	"github.com/brizzai/profile-viewer/internal/auth/constants"
	"github.com/brizzai/profile-viewer/internal/auth/models"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

// ErrMissingClientID is returned when login is attempted without a client id.
var ErrMissingClientID = errors.New("linkedin client id not configured")

// Options are the client-side OAuth parameters the backend does not supply.
type Options struct {
	Scopes       []string
	AuthorizeURL string
	// RedirectURI is used when the backend config could not be loaded.
	RedirectURI string
}

// Config is the OAuth configuration of one client session. It is built once
// and never modified; the state value is fixed at construction.
type Config struct {
	clientID     string
	redirectURI  string
	scopes       []string
	authorizeURL string
	state        string
}

// NewConfig combines the backend's public config with local options and a
// freshly generated state value.
func NewConfig(public models.PublicConfig, opts Options) Config {
	cfg := Config{
		clientID:     public.ClientID,
		redirectURI:  public.RedirectURI,
		scopes:       slices.Clone(opts.Scopes),
		authorizeURL: opts.AuthorizeURL,
		state:        constants.StatePrefix + uuid.NewString(),
	}
	if cfg.redirectURI == "" {
		cfg.redirectURI = opts.RedirectURI
	}
	if cfg.authorizeURL == "" {
		cfg.authorizeURL = linkedin.Endpoint.AuthURL
	}
	return cfg
}

// LoadConfig fetches the public parameters from the backend. On failure the
// returned Config has no client id, so login stays disabled, and the error
// is returned for the caller to report.
func LoadConfig(ctx context.Context, backend Backend, opts Options) (Config, error) {
	public, err := backend.PublicConfig(ctx)
	if err != nil {
		return NewConfig(models.PublicConfig{}, opts), err
	}
	return NewConfig(public, opts), nil
}

func (c Config) ClientID() string    { return c.clientID }
func (c Config) RedirectURI() string { return c.redirectURI }
func (c Config) State() string       { return c.state }
func (c Config) Scopes() []string    { return slices.Clone(c.scopes) }

// AuthorizationURL is the provider consent URL carrying response type,
// client id, redirect URI, scopes and state.
func (c Config) AuthorizationURL() (string, error) {
	if c.clientID == "" {
		return "", ErrMissingClientID
	}
	oc := oauth2.Config{
		ClientID:    c.clientID,
		RedirectURL: c.redirectURI,
		Scopes:      c.scopes,
		Endpoint:    oauth2.Endpoint{AuthURL: c.authorizeURL},
	}
	return oc.AuthCodeURL(c.state), nil
}
