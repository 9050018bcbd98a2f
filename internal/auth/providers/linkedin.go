package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brizzai/profile-viewer/internal/auth/constants"
	"github.com/brizzai/profile-viewer/internal/config"
	"github.com/brizzai/profile-viewer/internal/logger"
	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	discoveryTimeout = 10 * time.Second

	// maxBodyBytes caps how much of a provider response is read.
	maxBodyBytes = 1 << 20

	EndpointToken    = "token"
	EndpointUserInfo = "userinfo"
)

type LinkedInProvider struct {
	oauth2Config *oauth2.Config
	userInfoURL  string
	httpClient   *http.Client
}

// NewLinkedInProvider builds the provider from configuration. When an issuer
// is configured the endpoints are taken from its discovery document.
func NewLinkedInProvider(cfg *config.LinkedInConfig) (*LinkedInProvider, error) {
	return NewLinkedInProviderWithClient(cfg, http.DefaultClient)
}

// NewLinkedInProviderWithClient is NewLinkedInProvider with an explicit HTTP
// client for all provider traffic.
func NewLinkedInProviderWithClient(cfg *config.LinkedInConfig, client *http.Client) (*LinkedInProvider, error) {
	if client == nil {
		client = http.DefaultClient
	}

	endpoint := oauth2.Endpoint{
		AuthURL:  cfg.AuthURL,
		TokenURL: cfg.TokenURL,
	}
	userInfoURL := cfg.UserInfoURL

	if cfg.Issuer != "" {
		ctx, cancel := context.WithTimeout(oidc.ClientContext(context.Background(), client), discoveryTimeout)
		defer cancel()

		discovered, err := oidc.NewProvider(ctx, cfg.Issuer)
		if err != nil {
			return nil, fmt.Errorf("failed to discover OIDC provider %s: %w", cfg.Issuer, err)
		}
		endpoint = discovered.Endpoint()
		if u := discovered.UserInfoEndpoint(); u != "" {
			userInfoURL = u
		}
		logger.Info("Resolved OIDC endpoints",
			zap.String("issuer", cfg.Issuer),
			zap.String("token_url", endpoint.TokenURL),
			zap.String("userinfo_url", userInfoURL),
		)
	}

	if endpoint.TokenURL == "" {
		return nil, errors.New("linkedin token endpoint is not configured")
	}
	if userInfoURL == "" {
		return nil, errors.New("linkedin userinfo endpoint is not configured")
	}

	// The secret travels in the form body, not in a basic auth header.
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &LinkedInProvider{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     endpoint,
			Scopes:       cfg.ScopeList(),
		},
		userInfoURL: userInfoURL,
		httpClient:  client,
	}, nil
}

func (p *LinkedInProvider) Name() string {
	return "linkedin"
}

func (p *LinkedInProvider) withClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

func (p *LinkedInProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := p.oauth2Config.Exchange(p.withClient(ctx), code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return nil, &ProviderError{
				Endpoint:   EndpointToken,
				StatusCode: re.Response.StatusCode,
				Status:     re.Response.Status,
				Body:       string(re.Body),
			}
		}
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	return token, nil
}

func (p *LinkedInProvider) FetchUserInfo(ctx context.Context, accessToken string) ([]byte, error) {
	client := oauth2.NewClient(p.withClient(ctx), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   constants.TokenType,
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("Failed to close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read userinfo response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderError{
			Endpoint:   EndpointUserInfo,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	if !json.Valid(body) {
		return nil, ErrInvalidUserInfo
	}

	return body, nil
}
