package providers

import (
	"context"

	"golang.org/x/oauth2"
)

// Provider is the confidential half of the OAuth exchange: everything that
// needs the client secret or talks to the identity provider directly.
type Provider interface {
	// Name identifies the provider in logs
	Name() string

	// ExchangeCode trades an authorization code for tokens at the token endpoint
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)

	// FetchUserInfo calls the userinfo endpoint with the access token and
	// returns the JSON payload exactly as received
	FetchUserInfo(ctx context.Context, accessToken string) ([]byte, error)
}
