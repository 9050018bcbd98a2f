package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brizzai/profile-viewer/internal/auth/middleware"
	"github.com/brizzai/profile-viewer/internal/auth/models"
	"github.com/brizzai/profile-viewer/internal/auth/providers"
	"github.com/brizzai/profile-viewer/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

type fakeProvider struct {
	exchanges int
	fetches   int
	err       error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	f.exchanges++
	if f.err != nil {
		return nil, f.err
	}
	return &oauth2.Token{AccessToken: "tok-" + code}, nil
}

func (f *fakeProvider) FetchUserInfo(ctx context.Context, accessToken string) ([]byte, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return []byte(`{"name":"` + accessToken + `"}`), nil
}

func newHandler(p providers.Provider) (*Handler, *metrics.Metrics) {
	m := metrics.New()
	return NewHandler(models.PublicConfig{ClientID: "id", RedirectURI: "http://localhost:3000"}, p, m), m
}

func TestHandleToken_NoProviderCallOnBadInput(t *testing.T) {
	for _, body := range []string{"", "{}", `{"code":""}`, "not json"} {
		t.Run(body, func(t *testing.T) {
			p := &fakeProvider{}
			h, _ := newHandler(p)

			rec := httptest.NewRecorder()
			h.HandleToken(rec, httptest.NewRequest(http.MethodPost, "/api/linkedin/token", strings.NewReader(body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, p.exchanges)
		})
	}
}

func TestHandleToken_OversizedBody(t *testing.T) {
	p := &fakeProvider{}
	h, _ := newHandler(p)

	body := `{"code":"` + strings.Repeat("a", maxRequestBytes) + `"}`
	rec := httptest.NewRecorder()
	h.HandleToken(rec, httptest.NewRequest(http.MethodPost, "/api/linkedin/token", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
	assert.Zero(t, p.exchanges)
}

func TestHandleToken_ObservesProviderLatency(t *testing.T) {
	h, m := newHandler(&fakeProvider{})

	rec := httptest.NewRecorder()
	h.HandleToken(rec, httptest.NewRequest(http.MethodPost, "/api/linkedin/token", strings.NewReader(`{"code":"c"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"access_token":"tok-c"}`, rec.Body.String())
	assert.Equal(t, 1, testutil.CollectAndCount(m.ProviderDuration))
}

func TestHandleProfile_RequiresTokenInContext(t *testing.T) {
	p := &fakeProvider{}
	h, m := newHandler(p)

	rec := httptest.NewRecorder()
	h.HandleProfile(rec, httptest.NewRequest(http.MethodGet, "/api/linkedin/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, p.fetches)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProfileFetches.WithLabelValues(metrics.OutcomeUnauthorized)))
}

func TestHandleProfile_UsesContextToken(t *testing.T) {
	p := &fakeProvider{}
	h, _ := newHandler(p)

	r := httptest.NewRequest(http.MethodGet, "/api/linkedin/profile", nil)
	r = r.WithContext(middleware.WithToken(r.Context(), "xyz"))
	rec := httptest.NewRecorder()
	h.HandleProfile(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"name":"xyz"}`, rec.Body.String())
	assert.Equal(t, 1, p.fetches)
}

func TestHandleUnauthorized(t *testing.T) {
	h, m := newHandler(&fakeProvider{})

	rec := httptest.NewRecorder()
	h.HandleUnauthorized(rec, httptest.NewRequest(http.MethodGet, "/api/linkedin/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authorization header required"}`, rec.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProfileFetches.WithLabelValues(metrics.OutcomeUnauthorized)))
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, metrics.OutcomeProviderError, outcomeOf(&providers.ProviderError{StatusCode: 500}))
	assert.Equal(t, metrics.OutcomeProviderError, outcomeOf(providers.ErrInvalidUserInfo))
	assert.Equal(t, metrics.OutcomeTransportError, outcomeOf(errors.New("dial tcp: refused")))
}
