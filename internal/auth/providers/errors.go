package providers

import (
	"errors"
	"fmt"
)

// ErrInvalidUserInfo is returned when the userinfo endpoint answers 2xx with
// something that is not JSON.
var ErrInvalidUserInfo = errors.New("userinfo response is not valid JSON")

// ProviderError is a non-success answer from the identity provider. Body is
// kept for operator logs only and must not be returned to clients.
type ProviderError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s endpoint returned %s", e.Endpoint, e.Status)
}

// AsProviderError unwraps err into a *ProviderError if it is one.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
