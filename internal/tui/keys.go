package tui

import (
	"strings"

	"github.com/brizzai/profile-viewer/internal/client"
	"github.com/charmbracelet/bubbles/key"
)

// AppKeyMap holds key bindings for every screen
type AppKeyMap struct {
	login  key.Binding
	logout key.Binding
	retry  key.Binding
	submit key.Binding
	cancel key.Binding
	quit   key.Binding
}

func newAppKeyMap() *AppKeyMap {
	return &AppKeyMap{
		login: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter", "Sign in with LinkedIn"),
		),
		logout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Log out"),
		),
		retry: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "Try again"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Continue"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("ctrl+c/q", "Quit"),
		),
	}
}

// bindingsFor returns the keys that apply to the current screen.
func (k *AppKeyMap) bindingsFor(kind client.Kind, awaitingRedirect bool) []key.Binding {
	if awaitingRedirect {
		return []key.Binding{k.submit, k.cancel}
	}
	switch kind {
	case client.KindLoggedOut:
		return []key.Binding{k.login, k.quit}
	case client.KindProfile:
		return []key.Binding{k.logout, k.quit}
	case client.KindError:
		return []key.Binding{k.retry, k.quit}
	default:
		return []key.Binding{k.quit}
	}
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}
