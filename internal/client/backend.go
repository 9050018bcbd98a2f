package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/brizzai/profile-viewer/internal/auth/constants"
	"github.com/brizzai/profile-viewer/internal/auth/models"
	"github.com/brizzai/profile-viewer/internal/requester"
)

// Backend is the client's view of the OAuth proxy.
type Backend interface {
	PublicConfig(ctx context.Context) (models.PublicConfig, error)
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, token string) (models.Profile, error)
}

// BackendError is a non-2xx answer from the backend. Message is the
// backend's error text, or a generic one if it sent none.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return e.Message
}

// HTTPBackend talks to the proxy over HTTP.
type HTTPBackend struct {
	requester *requester.HTTPRequester
}

func NewHTTPBackend(r *requester.HTTPRequester) *HTTPBackend {
	return &HTTPBackend{requester: r}
}

func (b *HTTPBackend) PublicConfig(ctx context.Context) (models.PublicConfig, error) {
	var cfg models.PublicConfig
	resp, err := b.requester.Do(ctx, &requester.Request{Path: constants.ConfigPath})
	if err != nil {
		return cfg, err
	}
	if !resp.IsSuccess() {
		return cfg, &BackendError{StatusCode: resp.StatusCode, Message: resp.ErrorMessage("Could not load LinkedIn config from backend")}
	}
	if err := resp.Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (b *HTTPBackend) ExchangeCode(ctx context.Context, code string) (string, error) {
	resp, err := b.requester.Do(ctx, &requester.Request{
		Method: http.MethodPost,
		Path:   constants.TokenPath,
		Body:   models.TokenRequest{Code: code},
	})
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", &BackendError{StatusCode: resp.StatusCode, Message: resp.ErrorMessage(constants.MsgExchangeFailed)}
	}

	var token models.TokenResponse
	if err := resp.Decode(&token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("backend returned no access token")
	}
	return token.AccessToken, nil
}

func (b *HTTPBackend) FetchProfile(ctx context.Context, token string) (models.Profile, error) {
	resp, err := b.requester.Do(ctx, &requester.Request{
		Path: constants.ProfilePath,
		Auth: requester.BearerAuth{Token: token},
	})
	if err != nil {
		return models.Profile{}, err
	}
	if !resp.IsSuccess() {
		return models.Profile{}, &BackendError{StatusCode: resp.StatusCode, Message: resp.ErrorMessage(constants.MsgProfileFailed)}
	}
	return models.ParseProfile(resp.Body), nil
}
