package tui

import (
	"strings"

	"github.com/brizzai/profile-viewer/internal/client"
	"github.com/charmbracelet/lipgloss"
)

// Fields the OpenID userinfo endpoint does not provide.
const (
	msgLocation   = "Location requires LinkedIn v2 API access"
	msgIndustry   = "Industry requires LinkedIn v2 API access"
	msgExperience = "Experience data requires LinkedIn v2 API permissions"
	msgEducation  = "Education data requires LinkedIn v2 API permissions"
)

// RenderState draws state. It depends only on its arguments.
func RenderState(state client.State, width int) string {
	var body string
	switch state.Kind {
	case client.KindLoggedOut:
		body = "Sign in with LinkedIn to view your profile."
	case client.KindLoading:
		body = "Loading your profile..."
	case client.KindProfile:
		body = renderProfile(state)
	case client.KindError:
		body = errorMessageStyle.Render(state.Message)
	default:
		body = errorMessageStyle.Render(client.MsgUnexpected)
	}

	style := cardStyle
	if width > 8 {
		style = style.Width(width - 8)
	}
	return style.Render(body)
}

func renderProfile(state client.State) string {
	p := state.Profile
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}

	lines := []string{
		nameStyle.Render(p.DisplayName()),
		"",
		row("Email", p.DisplayEmail()),
		row("Photo", p.PictureURL()),
		row("Location", mutedStyle.Render(msgLocation)),
		row("Industry", mutedStyle.Render(msgIndustry)),
		"",
		mutedStyle.Render(msgExperience),
		mutedStyle.Render(msgEducation),
	}
	return strings.Join(lines, "\n")
}
