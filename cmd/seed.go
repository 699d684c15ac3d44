package cmd

import (
	"os"

	"news-portal/app"
	"news-portal/services"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and the default categories and tags",
	Long: `Create the admin account and the default categories and tags.

Existing rows are left alone, so seeding twice is harmless. The admin is
skipped when no email or password is given.

Examples:
  news-portal seed --email admin@example.com --password changeme
  SEED_ADMIN_EMAIL=admin@example.com SEED_ADMIN_PASSWORD=changeme news-portal seed`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("email", os.Getenv("SEED_ADMIN_EMAIL"), "admin email")
	seedCmd.Flags().String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "admin password")
	seedCmd.Flags().String("username", envOr("SEED_ADMIN_USERNAME", "admin"), "admin username")
	seedCmd.Flags().String("full-name", envOr("SEED_ADMIN_FULL_NAME", "Administrator"), "admin full name")
}

func runSeed(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	username, _ := cmd.Flags().GetString("username")
	fullName, _ := cmd.Flags().GetString("full-name")

	a, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Seeder.Seed(cmd.Context(), services.SeedAdmin{
		Email:    email,
		Password: password,
		Username: username,
		FullName: fullName,
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
