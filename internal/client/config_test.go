package client

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/brizzai/profile-viewer/internal/auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_AuthorizationURL(t *testing.T) {
	cfg := NewConfig(
		models.PublicConfig{ClientID: "cid", RedirectURI: "http://localhost:3000"},
		Options{Scopes: []string{"openid", "profile", "email"}},
	)

	raw, err := cfg.AuthorizationURL()
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "www.linkedin.com", u.Host)
	assert.Equal(t, "/oauth/v2/authorization", u.Path)

	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, "http://localhost:3000", q.Get("redirect_uri"))
	assert.Equal(t, "openid profile email", q.Get("scope"))
	assert.Equal(t, cfg.State(), q.Get("state"))
	assert.True(t, strings.HasPrefix(cfg.State(), "linkedin_oauth_"))
}

func TestConfig_FreshStatePerSession(t *testing.T) {
	public := models.PublicConfig{ClientID: "cid"}
	assert.NotEqual(t, NewConfig(public, Options{}).State(), NewConfig(public, Options{}).State())
}

func TestConfig_IsImmutable(t *testing.T) {
	scopes := []string{"openid"}
	cfg := NewConfig(models.PublicConfig{ClientID: "cid"}, Options{Scopes: scopes})

	scopes[0] = "changed"
	got := cfg.Scopes()
	got[0] = "changed too"

	assert.Equal(t, []string{"openid"}, cfg.Scopes())
}

func TestConfig_CustomAuthorizeURL(t *testing.T) {
	cfg := NewConfig(models.PublicConfig{ClientID: "cid"}, Options{AuthorizeURL: "https://idp.test/authorize", RedirectURI: "http://fallback"})
	raw, err := cfg.AuthorizationURL()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, "https://idp.test/authorize?"))
	assert.Equal(t, "http://fallback", cfg.RedirectURI())
}

type failingBackend struct{ fakeBackend }

func (failingBackend) PublicConfig(context.Context) (models.PublicConfig, error) {
	return models.PublicConfig{}, errors.New("connection refused")
}

func TestLoadConfig(t *testing.T) {
	b := &fakeBackend{}
	cfg, err := LoadConfig(context.Background(), b, Options{})
	require.NoError(t, err)
	assert.Equal(t, "cid", cfg.ClientID())
	assert.Equal(t, 1, b.configCalls)

	cfg, err = LoadConfig(context.Background(), &failingBackend{}, Options{RedirectURI: "http://localhost:3000"})
	assert.Error(t, err)
	assert.Empty(t, cfg.ClientID())
	_, err = cfg.AuthorizationURL()
	assert.ErrorIs(t, err, ErrMissingClientID)
}
