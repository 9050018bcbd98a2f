package tui

import (
	"testing"

	"github.com/brizzai/profile-viewer/internal/auth/models"
	"github.com/brizzai/profile-viewer/internal/client"
	"github.com/stretchr/testify/assert"
)

func TestRenderState(t *testing.T) {
	tests := []struct {
		name     string
		state    client.State
		contains []string
	}{
		{
			name:     "logged out",
			state:    client.LoggedOut(),
			contains: []string{"Sign in with LinkedIn"},
		},
		{
			name:     "loading",
			state:    client.Loading(),
			contains: []string{"Loading your profile"},
		},
		{
			name:     "error",
			state:    client.Failed("LinkedIn authentication failed: access_denied"),
			contains: []string{"access_denied"},
		},
		{
			name: "full profile",
			state: client.ProfileLoaded(models.Profile{
				Name:    "Ada Lovelace",
				Email:   "ada@example.com",
				Picture: "https://media/ada.jpg",
			}),
			contains: []string{"Ada Lovelace", "ada@example.com", "https://media/ada.jpg", msgLocation, msgEducation},
		},
		{
			name: "profile fallbacks",
			state: client.ProfileLoaded(models.Profile{
				GivenName:  "Ada",
				FamilyName: "Lovelace",
			}),
			contains: []string{"Ada Lovelace", models.NoEmail, "text=AL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderState(tt.state, 120)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRenderState_IsPure(t *testing.T) {
	s := client.Failed("boom")
	assert.Equal(t, RenderState(s, 80), RenderState(s, 80))
}
