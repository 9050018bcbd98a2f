package requester

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Request describes a call against the backend API. Path is resolved
// against the requester's base URL; Body, when set, is sent as JSON.
type Request struct {
	Method  string
	Path    string
	Body    any
	Headers map[string]string
	Auth    AuthManager
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ErrorMessage returns the "error" field of a JSON error body, or fallback
// when the body has none.
func (r *Response) ErrorMessage(fallback string) string {
	if msg := gjson.GetBytes(r.Body, "error"); msg.Type == gjson.String && msg.Str != "" {
		return msg.Str
	}
	return fallback
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding response (status %d): %w", r.StatusCode, err)
	}
	return nil
}
