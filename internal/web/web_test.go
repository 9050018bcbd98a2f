package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssets(t *testing.T) {
	a, err := NewAssets()
	require.NoError(t, err)

	tests := []struct {
		name        string
		method      string
		path        string
		wantStatus  int
		wantType    string
		wantContain string
	}{
		{name: "root", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantType: "text/html", wantContain: `id="login-section"`},
		{name: "index", method: http.MethodGet, path: "/index.html", wantStatus: http.StatusOK, wantType: "text/html", wantContain: "<title>"},
		{name: "script", method: http.MethodGet, path: "/app.js", wantStatus: http.StatusOK, wantType: "javascript", wantContain: "linkedin_access_token"},
		{name: "unknown path falls back to shell", method: http.MethodGet, path: "/some/deep/link", wantStatus: http.StatusOK, wantType: "text/html", wantContain: `id="profile-section"`},
		{name: "post rejected", method: http.MethodPost, path: "/", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			a.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantType != "" {
				assert.Contains(t, rec.Header().Get("Content-Type"), tt.wantType)
			}
			if tt.wantContain != "" {
				assert.Contains(t, rec.Body.String(), tt.wantContain)
			}
		})
	}
}
