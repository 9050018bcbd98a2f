package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/brizzai/profile-viewer/internal/config"
	"github.com/brizzai/profile-viewer/internal/logger"
	"github.com/spf13/cobra"
)

func main() {
	Execute()
}

var configFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "profile-viewer",
	Short: "Sign in with LinkedIn and view your profile",
	Long: `Profile Viewer signs you in with LinkedIn using OpenID Connect and shows
your basic profile. The serve command runs the backend that keeps the client
secret; the login command is a terminal client for that backend.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	}

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config.yaml file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (console, json)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")

	rootCmd.AddCommand(serveCmd, loginCmd, configCmd)
}

// loadConfig reads the configuration with the command's flags bound.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(configFile, cmd.Flags())
}
