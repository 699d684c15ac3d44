// Package cmd contains the news-portal CLI commands.
package cmd

import (
	"log/slog"

	"news-portal/config"
	"news-portal/utils"

	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd serves the API when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "news-portal",
	Short: "News portal REST API",
	Long: `news-portal serves the article publishing API.

Example usage:
  news-portal                  # Start the HTTP server
  news-portal migrate up       # Apply pending migrations
  news-portal migrate down 1   # Roll back one migration
  news-portal seed             # Create the admin account and default taxonomy
  news-portal promote <id>     # Grant the admin role to a profile`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runServe,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() error {
	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		return err
	}
	logger, err = utils.NewLogger(cfg.LogLevel, cfg.AppEnv)
	return err
}
