package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brizzai/profile-viewer/internal/client"
	"github.com/brizzai/profile-viewer/internal/config"
	"github.com/brizzai/profile-viewer/internal/logger"
	"github.com/brizzai/profile-viewer/internal/requester"
	"github.com/brizzai/profile-viewer/internal/tui"
)

var (
	redirectURL string
	logoutOnly  bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in from the terminal and show your profile",
	Run:   runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&redirectURL, "redirect-url", "", "URL LinkedIn redirected to, to complete a login started elsewhere")
	loginCmd.Flags().BoolVar(&logoutOnly, "logout", false, "Forget the stored access token and exit")
	loginCmd.Flags().String("backend-url", "", "Base URL of the profile-viewer backend")
	loginCmd.Flags().String("token-store", "", "Where to keep the access token (file, keyring, memory)")
	loginCmd.Flags().String("token-path", "", "Token database path for the file store")
	loginCmd.Flags().Bool("open-browser", true, "Open the sign-in page in a browser")
}

// runLogin runs the terminal client
func runLogin(cmd *cobra.Command, args []string) {
	defer func() {
		if r := recover(); r != nil {
			pterm.Error.Printf("\nCaught panic: %v\n", r)
			pterm.Error.Printf("%s\n", debug.Stack())
			os.Exit(2)
		}
	}()

	cfg, err := loadConfig(cmd)
	if err != nil {
		pterm.Error.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal; logs only go to a file, if one is set.
	cfg.Logging.DisableConsole = true
	if err := logger.InitLogger(&cfg.Logging); err != nil {
		pterm.Error.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	store, err := client.NewTokenStore(&cfg.Client)
	if err != nil {
		pterm.Error.Printf("Error opening token store: %v\n", err)
		os.Exit(1)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	if logoutOnly {
		if err := store.Clear(); err != nil {
			pterm.Error.Printf("Error clearing token: %v\n", err)
			os.Exit(1)
		}
		pterm.Success.Println("Logged out")
		return
	}

	r, err := requester.NewHTTPRequester(&cfg.Client)
	if err != nil {
		pterm.Error.Printf("Invalid backend URL: %v\n", err)
		os.Exit(1)
	}
	backend := client.NewHTTPBackend(r)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	clientCfg, err := client.LoadConfig(ctx, backend, clientOptions(cfg))
	if err != nil {
		logger.Warn("Could not load LinkedIn config from backend", zap.Error(err))
		pterm.Warning.Printfln("Could not load LinkedIn config from %s: %v", cfg.Client.BackendURL, err)
	}

	var open tui.URLOpener
	if cfg.Client.OpenBrowser {
		open = openBrowser
	}

	controller := client.NewController(clientCfg, backend, store)
	p := tea.NewProgram(tui.NewAppModel(ctx, controller, open, redirectURL), tea.WithAltScreen())

	m, err := p.Run()
	if err != nil {
		pterm.Error.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	final := m.(tui.AppModel).State()
	if final.Kind == client.KindProfile {
		pterm.Info.Printfln("Signed in as %s (%s)",
			pterm.LightGreen(final.Profile.DisplayName()),
			pterm.White(final.Profile.DisplayEmail()))
	}
}

func clientOptions(cfg *config.Config) client.Options {
	return client.Options{
		Scopes:       cfg.LinkedIn.ScopeList(),
		AuthorizeURL: cfg.LinkedIn.AuthURL,
		RedirectURI:  cfg.LinkedIn.RedirectURI,
	}
}

// openBrowser keeps the browser's own output off the TUI screen.
func openBrowser(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("opening %s: %w", strings.SplitN(url, "?", 2)[0], err)
	}
	return nil
}
