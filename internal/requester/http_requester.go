package requester

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brizzai/profile-viewer/internal/config"
	"github.com/brizzai/profile-viewer/internal/logger"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 30 * time.Second

	// maxResponseBytes bounds what is read from the backend.
	maxResponseBytes = 1 << 20
)

// HTTPRequester handles both request building and execution
type HTTPRequester struct {
	client  *http.Client
	builder *HTTPRequestBuilder
}

// NewHTTPRequester creates a requester for the backend named in cfg.
func NewHTTPRequester(cfg *config.ClientConfig) (*HTTPRequester, error) {
	builder, err := NewHTTPRequestBuilder(cfg.BackendURL, map[string]string{
		"User-Agent": "profile-viewer",
	})
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPRequester{
		client:  &http.Client{Timeout: timeout},
		builder: builder,
	}, nil
}

// SetTimeout sets the timeout for the HTTP client
func (r *HTTPRequester) SetTimeout(timeout time.Duration) {
	r.client.Timeout = timeout
}

// Do builds and executes req. A non-2xx status is not an error; callers
// inspect Response.StatusCode.
func (r *HTTPRequester) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := r.builder.BuildRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.Debug("Backend request", zap.String("method", httpReq.Method), zap.String("url", httpReq.URL.String()))

	resp, err := r.execute(httpReq)
	if err != nil {
		logger.Error("Failed to execute request", zap.String("url", httpReq.URL.String()), zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// execute performs the actual HTTP request execution
func (r *HTTPRequester) execute(httpReq *http.Request) (*Response, error) {
	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       bodyBytes,
		Headers:    resp.Header,
	}, nil
}
