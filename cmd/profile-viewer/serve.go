package main

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/brizzai/profile-viewer/internal/auth"
	"github.com/brizzai/profile-viewer/internal/auth/providers"
	"github.com/brizzai/profile-viewer/internal/config"
	"github.com/brizzai/profile-viewer/internal/logger"
	"github.com/brizzai/profile-viewer/internal/metrics"
	"github.com/brizzai/profile-viewer/internal/server"
	"github.com/brizzai/profile-viewer/internal/server/handler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the OAuth backend and the browser client",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "Port to listen on (default 3000, or PORT)")
	serveCmd.Flags().String("host", "", "Interface to listen on")
	serveCmd.Flags().String("client-id", "", "LinkedIn client id")
	serveCmd.Flags().String("redirect-uri", "", "Redirect URI registered with LinkedIn")
	serveCmd.Flags().String("oidc-issuer", "", "Resolve provider endpoints by OpenID Connect discovery")
	serveCmd.Flags().StringSlice("allow-origins", nil, "Origins allowed to call the API (default *)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := logger.InitLogger(&cfg.Logging); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	printBanner(cfg)
	if !cfg.HasClientID() {
		logger.Warn("LINKEDIN_CLIENT_ID is not set; login will be disabled")
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.GetLogger()}
		}),
		config.Module,
		metrics.Module,
		providers.Module,
		auth.Module,
		handler.Module,
		server.Module,
	)

	startCtx, cancel := context.WithTimeout(cmd.Context(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	sig := <-app.Wait()
	logger.Info("Received shutdown signal", zap.String("signal", fmt.Sprint(sig.Signal)))

	stopCtx, stopCancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}

	if sig.ExitCode != 0 {
		return fmt.Errorf("server exited with code %d", sig.ExitCode)
	}
	return nil
}

func printBanner(cfg *config.Config) {
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	pterm.DefaultHeader.WithFullWidth().Println("LinkedIn Profile Viewer")
	pterm.Info.Printfln("Server running on %s", pterm.LightCyan(url))
	pterm.Println()
	pterm.DefaultSection.Println("Setup instructions")
	_ = pterm.DefaultBulletList.WithItems([]pterm.BulletListItem{
		{Level: 0, Text: "Create a LinkedIn app at https://www.linkedin.com/developers/"},
		{Level: 0, Text: "Add LINKEDIN_CLIENT_ID and LINKEDIN_CLIENT_SECRET to your .env file"},
		{Level: 0, Text: "Set the redirect URI in your LinkedIn app to " + cfg.LinkedIn.RedirectURI},
		{Level: 0, Text: "Restart the server"},
	}).Render()

	if cfg.HasClientID() {
		pterm.Success.Println("LinkedIn Client ID configured")
	} else {
		pterm.Warning.Println("LinkedIn Client ID not found in environment variables")
	}
}
