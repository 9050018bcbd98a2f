package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, env := range []string{
		"LINKEDIN_CLIENT_ID", "LINKEDIN_CLIENT_SECRET", "LINKEDIN_REDIRECT_URI", "PORT",
		"PROFILE_VIEWER_SERVER_PORT", "PROFILE_VIEWER_LINKEDIN_CLIENT_ID",
	} {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.LinkedIn.RedirectURI)
	assert.Equal(t, []string{"openid", "profile", "email"}, cfg.LinkedIn.ScopeList())
	assert.Equal(t, "https://www.linkedin.com/oauth/v2/authorization", cfg.LinkedIn.AuthURL)
	assert.Equal(t, "https://www.linkedin.com/oauth/v2/accessToken", cfg.LinkedIn.TokenURL)
	assert.Equal(t, DefaultUserInfoURL, cfg.LinkedIn.UserInfoURL)
	assert.Equal(t, TokenStoreFile, cfg.Client.TokenStore)
	assert.Equal(t, filepath.Join(home, ".profile-viewer", "token.db"), cfg.Client.TokenPath)
	assert.False(t, cfg.HasClientID())
	assert.Equal(t, ":3000", cfg.Addr())
}

func TestLoad_PlainEnvNames(t *testing.T) {
	isolate(t)
	t.Setenv("LINKEDIN_CLIENT_ID", "client-123")
	t.Setenv("LINKEDIN_CLIENT_SECRET", "shh")
	t.Setenv("PORT", "8081")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "client-123", cfg.LinkedIn.ClientID)
	assert.Equal(t, "shh", cfg.LinkedIn.ClientSecret)
	assert.Equal(t, 8081, cfg.Server.Port)
	// redirect URI follows the port when not configured
	assert.Equal(t, "http://localhost:8081", cfg.LinkedIn.RedirectURI)
	assert.True(t, cfg.HasClientID())
}

func TestLoad_PrefixedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PROFILE_VIEWER_LINKEDIN_REDIRECT_URI", "https://viewer.example.com/")
	t.Setenv("PROFILE_VIEWER_CLIENT_TOKEN_STORE", "memory")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "https://viewer.example.com/", cfg.LinkedIn.RedirectURI)
	assert.Equal(t, TokenStoreMemory, cfg.Client.TokenStore)
}

func TestLoad_ConfigFileAndFlags(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
linkedin:
  client_id: from-file
  scopes: "openid email"
client:
  token_store: keyring
`), 0o600))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", DefaultPort, "")
	require.NoError(t, flags.Parse([]string{"--port", "9100"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "flag overrides file")
	assert.Equal(t, "from-file", cfg.LinkedIn.ClientID)
	assert.Equal(t, []string{"openid", "email"}, cfg.LinkedIn.ScopeList())
	assert.Equal(t, TokenStoreKeyring, cfg.Client.TokenStore)
	assert.Empty(t, cfg.Client.TokenPath)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	t.Run("explicit config file missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		assert.Error(t, err)
	})

	t.Run("unknown token store", func(t *testing.T) {
		t.Setenv("PROFILE_VIEWER_CLIENT_TOKEN_STORE", "cookie")
		_, err := Load("", nil)
		assert.ErrorContains(t, err, "token_store")
	})
}

func TestGetVersionInfo(t *testing.T) {
	assert.Contains(t, GetVersionInfo(), "profile-viewer version dev")
}

func TestModule_ProvidesSections(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8080},
		LinkedIn: LinkedInConfig{ClientID: "cid"},
		Client:   ClientConfig{BackendURL: "http://localhost:8080"},
	}

	var (
		server   *ServerConfig
		linkedIn *LinkedInConfig
		client   *ClientConfig
	)
	app := fxtest.New(t,
		fx.Supply(cfg),
		Module,
		fx.Populate(&server, &linkedIn, &client),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Same(t, &cfg.Server, server)
	assert.Equal(t, "cid", linkedIn.ClientID)
	assert.Equal(t, "http://localhost:8080", client.BackendURL)
}
