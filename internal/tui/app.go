// Package tui is the terminal front end of the client flow.
package tui

import (
	"context"
	"fmt"

	"github.com/brizzai/profile-viewer/internal/client"
	"github.com/brizzai/profile-viewer/internal/logger"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// URLOpener sends the user to the provider, usually by opening a browser.
type URLOpener func(url string) error

// stateMsg carries the next state computed by the controller.
type stateMsg struct {
	state client.State
}

// loginStartedMsg is sent once the authorization URL has been handed to the
// opener.
type loginStartedMsg struct {
	url     string
	openErr error
}

// AppModel is the main application model
type AppModel struct {
	ctx        context.Context
	controller *client.Controller
	open       URLOpener
	initialURL string

	keys    *AppKeyMap
	spinner spinner.Model
	input   textinput.Model

	state            client.State
	awaitingRedirect bool
	authURL          string
	notice           string
	width            int
}

// NewAppModel creates the model. initialURL is checked for an authorization
// response on start and may be empty.
func NewAppModel(ctx context.Context, controller *client.Controller, open URLOpener, initialURL string) AppModel {
	ti := textinput.New()
	ti.Placeholder = "http://localhost:3000/?code=...&state=..."
	ti.Prompt = "> "
	ti.CharLimit = 4096

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return AppModel{
		ctx:        ctx,
		controller: controller,
		open:       open,
		initialURL: initialURL,
		keys:       newAppKeyMap(),
		spinner:    sp,
		input:      ti,
		state:      client.Loading(),
	}
}

// Init checks the initial URL and the token store
func (m AppModel) Init() tea.Cmd {
	url := m.initialURL
	return tea.Batch(
		m.spinner.Tick,
		m.run(func() client.State {
			state, _ := m.controller.CheckForAuthCode(m.ctx, url)
			return state
		}),
	)
}

// run executes a controller step off the UI loop. A panic becomes the
// generic error state.
func (m AppModel) run(step func() client.State) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Application error", zap.Any("panic", r))
				msg = stateMsg{state: client.Failed(client.MsgUnexpected)}
			}
		}()
		return stateMsg{state: step()}
	}
}

func (m AppModel) startLogin() (AppModel, tea.Cmd) {
	authURL, err := m.controller.InitiateLogin()
	if err != nil {
		m.state = client.Failed(client.MsgMissingClientID)
		return m, nil
	}
	open := m.open
	return m, func() tea.Msg {
		var openErr error
		if open != nil {
			openErr = open(authURL)
		}
		return loginStartedMsg{url: authURL, openErr: openErr}
	}
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = msg.state
		return m, nil

	case loginStartedMsg:
		m.awaitingRedirect = true
		m.authURL = msg.url
		m.notice = ""
		if msg.openErr != nil {
			logger.Warn("Could not open browser", zap.Error(msg.openErr))
			m.notice = "Could not open a browser. Open the URL above manually."
		}
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-12, 20)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.awaitingRedirect {
			return m.updateRedirectInput(msg)
		}
		if m.state.Kind == client.KindLoading {
			return m, nil
		}
		return m.updateKeys(msg)
	}

	if m.awaitingRedirect {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AppModel) updateRedirectInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.awaitingRedirect = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.submit):
		redirect := m.input.Value()
		if redirect == "" {
			return m, nil
		}
		m.awaitingRedirect = false
		m.input.Blur()
		m.state = client.Loading()
		ctx := m.ctx
		return m, tea.Batch(m.spinner.Tick, m.run(func() client.State {
			state, _ := m.controller.CheckForAuthCode(ctx, redirect)
			return state
		}))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AppModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state.Kind {
	case client.KindLoggedOut:
		if key.Matches(msg, m.keys.login) {
			return m.startLogin()
		}
	case client.KindProfile:
		if key.Matches(msg, m.keys.logout) {
			m.state = m.controller.Logout()
			return m, nil
		}
	case client.KindError:
		if key.Matches(msg, m.keys.retry) {
			m.state = m.controller.Retry()
			return m, nil
		}
	}

	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current screen
func (m AppModel) View() string {
	sections := []string{titleStyle.Render("LinkedIn Profile Viewer"), ""}

	if m.state.Kind == client.KindLoading {
		sections = append(sections, m.spinner.View()+" "+RenderState(m.state, m.width))
	} else {
		sections = append(sections, RenderState(m.state, m.width))
	}

	if m.awaitingRedirect {
		sections = append(sections,
			"",
			"Sign in at:",
			m.authURL,
			"",
			"Then paste the address your browser was redirected to:",
			m.input.View(),
		)
		if m.notice != "" {
			sections = append(sections, errorMessageStyle.Render(m.notice))
		}
	}

	if m.state.Kind == client.KindProfile && !m.awaitingRedirect {
		sections = append(sections, "", completeMessageStyle(fmt.Sprintf("Signed in as %s", m.state.Profile.DisplayName())))
	}

	sections = append(sections, "", helpLine(m.keys.bindingsFor(m.state.Kind, m.awaitingRedirect)))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// State returns the state currently shown
func (m AppModel) State() client.State {
	return m.state
}
