package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"golang.org/x/oauth2/linkedin"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("profile-viewer version %s, commit %s, built at %s", version, commit, date)
}

const (
	// DefaultPort is the port the backend listens on when neither PORT nor
	// server.port is set.
	DefaultPort = 3000

	// DefaultScopes are the OpenID Connect scopes requested at login.
	DefaultScopes = "openid profile email"

	// DefaultUserInfoURL is LinkedIn's OpenID Connect userinfo endpoint.
	DefaultUserInfoURL = "https://api.linkedin.com/v2/userinfo"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	LinkedIn LinkedInConfig `mapstructure:"linkedin" yaml:"linkedin"`
	Client   ClientConfig   `mapstructure:"client" yaml:"client"`
}

type ServerConfig struct {
	Port         int      `mapstructure:"port" yaml:"port"`
	Host         string   `mapstructure:"host" yaml:"host"`
	Timeout      string   `mapstructure:"timeout" yaml:"timeout"`
	AllowOrigins []string `mapstructure:"allow_origins" yaml:"allow_origins"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level" yaml:"level"`
	Format            string `mapstructure:"format" yaml:"format"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace" yaml:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path" yaml:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file" yaml:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console" yaml:"disable_console"`
}

// LinkedInConfig holds the confidential client registration. ClientSecret
// never leaves the backend process.
type LinkedInConfig struct {
	ClientID     string `mapstructure:"client_id" yaml:"client_id"`
	ClientSecret string `mapstructure:"client_secret" yaml:"-"`
	RedirectURI  string `mapstructure:"redirect_uri" yaml:"redirect_uri"`
	Scopes       string `mapstructure:"scopes" yaml:"scopes"`
	AuthURL      string `mapstructure:"auth_url" yaml:"auth_url"`
	TokenURL     string `mapstructure:"token_url" yaml:"token_url"`
	UserInfoURL  string `mapstructure:"userinfo_url" yaml:"userinfo_url"`
	// Issuer enables OpenID Connect discovery. When set, the endpoints above
	// are resolved from <issuer>/.well-known/openid-configuration.
	Issuer string `mapstructure:"issuer" yaml:"issuer,omitempty"`
}

// ScopeList splits the space separated scope string.
func (c LinkedInConfig) ScopeList() []string {
	return strings.Fields(c.Scopes)
}

// TokenStoreKind selects where the terminal client keeps the access token.
type TokenStoreKind string

const (
	TokenStoreFile    TokenStoreKind = "file"
	TokenStoreKeyring TokenStoreKind = "keyring"
	TokenStoreMemory  TokenStoreKind = "memory"
)

type ClientConfig struct {
	BackendURL  string         `mapstructure:"backend_url" yaml:"backend_url"`
	TokenStore  TokenStoreKind `mapstructure:"token_store" yaml:"token_store"`
	TokenPath   string         `mapstructure:"token_path" yaml:"token_path"`
	OpenBrowser bool           `mapstructure:"open_browser" yaml:"open_browser"`
	Timeout     string         `mapstructure:"timeout" yaml:"timeout"`
}

// envAliases are the plain variable names used by existing .env files.
var envAliases = map[string]string{
	"linkedin.client_id":     "LINKEDIN_CLIENT_ID",
	"linkedin.client_secret": "LINKEDIN_CLIENT_SECRET",
	"linkedin.redirect_uri":  "LINKEDIN_REDIRECT_URI",
	"server.port":            "PORT",
}

// flagKeys maps command line flag names onto config keys.
var flagKeys = map[string]string{
	"port":          "server.port",
	"host":          "server.host",
	"log-level":     "logging.level",
	"log-format":    "logging.format",
	"log-file":      "logging.output_path",
	"backend-url":   "client.backend_url",
	"token-store":   "client.token_store",
	"token-path":    "client.token_path",
	"open-browser":  "client.open_browser",
	"client-id":     "linkedin.client_id",
	"redirect-uri":  "linkedin.redirect_uri",
	"oidc-issuer":   "linkedin.issuer",
	"allow-origins": "server.allow_origins",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.host", "")
	v.SetDefault("server.timeout", "30s")
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.disable_stacktrace", false)
	v.SetDefault("logging.output_path", "")
	v.SetDefault("logging.append_to_file", true)
	v.SetDefault("logging.disable_console", false)

	v.SetDefault("linkedin.client_id", "")
	v.SetDefault("linkedin.client_secret", "")
	v.SetDefault("linkedin.redirect_uri", "")
	v.SetDefault("linkedin.scopes", DefaultScopes)
	v.SetDefault("linkedin.auth_url", linkedin.Endpoint.AuthURL)
	v.SetDefault("linkedin.token_url", linkedin.Endpoint.TokenURL)
	v.SetDefault("linkedin.userinfo_url", DefaultUserInfoURL)
	v.SetDefault("linkedin.issuer", "")

	v.SetDefault("client.backend_url", fmt.Sprintf("http://localhost:%d", DefaultPort))
	v.SetDefault("client.token_store", string(TokenStoreFile))
	v.SetDefault("client.token_path", "")
	v.SetDefault("client.open_browser", true)
	v.SetDefault("client.timeout", "30s")
}

// Load reads configuration from (in increasing precedence) defaults, an
// optional config.yaml, a .env file, environment variables and flags.
// configFile may be empty to use the search path.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is the normal case in production.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PROFILE_VIEWER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, env := range envAliases {
		if err := v.BindEnv(key, "PROFILE_VIEWER_"+strings.ToUpper(strings.NewReplacer(".", "_").Replace(key)), env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/profile-viewer")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) normalize() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}

	if c.LinkedIn.RedirectURI == "" {
		c.LinkedIn.RedirectURI = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}

	if c.LinkedIn.Scopes == "" {
		c.LinkedIn.Scopes = DefaultScopes
	}

	switch c.Client.TokenStore {
	case TokenStoreFile, TokenStoreKeyring, TokenStoreMemory:
	case "":
		c.Client.TokenStore = TokenStoreFile
	default:
		return fmt.Errorf("unsupported client.token_store %q (file|keyring|memory)", c.Client.TokenStore)
	}

	if c.Client.TokenStore == TokenStoreFile && c.Client.TokenPath == "" {
		path, err := DefaultTokenPath()
		if err != nil {
			return err
		}
		c.Client.TokenPath = path
	}

	return nil
}

// Addr returns the listen address of the backend.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// HasClientID reports whether the LinkedIn client id was supplied. The only
// configuration check the backend performs.
func (c *Config) HasClientID() bool {
	return c.LinkedIn.ClientID != ""
}

// DefaultTokenPath returns ~/.profile-viewer/token.db
func DefaultTokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}

	return filepath.Join(home, ".profile-viewer", "token.db"), nil
}

func serverConfig(c *Config) *ServerConfig     { return &c.Server }
func linkedInConfig(c *Config) *LinkedInConfig { return &c.LinkedIn }
func loggingConfig(c *Config) *LoggingConfig   { return &c.Logging }
func clientConfig(c *Config) *ClientConfig     { return &c.Client }

// Module exposes the sections of an already loaded *Config. The caller
// supplies the *Config itself with fx.Supply.
var Module = fx.Module("config",
	fx.Provide(
		serverConfig,
		linkedInConfig,
		loggingConfig,
		clientConfig,
	),
)
