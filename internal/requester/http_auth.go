package requester

import (
	"errors"
	"net/http"

	"github.com/brizzai/profile-viewer/internal/auth/constants"
)

// ErrEmptyToken is returned when bearer auth is applied without a token.
var ErrEmptyToken = errors.New("bearer token is empty")

// AuthManager handles request authentication
type AuthManager interface {
	ApplyAuth(req *http.Request) error
}

// NoAuth leaves requests unauthenticated.
type NoAuth struct{}

func (NoAuth) ApplyAuth(*http.Request) error { return nil }

// BearerAuth sets "Authorization: Bearer <token>".
type BearerAuth struct {
	Token string
}

// ApplyAuth adds authentication to the request
func (a BearerAuth) ApplyAuth(req *http.Request) error {
	if a.Token == "" {
		return ErrEmptyToken
	}
	req.Header.Set(constants.AuthHeaderName, constants.AuthHeaderPrefix+a.Token)
	return nil
}
