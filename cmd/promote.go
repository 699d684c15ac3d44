package cmd

import (
	"errors"
	"fmt"

	"news-portal/app"
	"news-portal/models"
	"news-portal/repositories"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var promoteCmd = &cobra.Command{
	Use:   "promote <profile-id>",
	Short: "Grant the admin role to an existing profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromote,
}

func init() {
	rootCmd.AddCommand(promoteCmd)
}

func runPromote(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid profile id %q", args[0])
	}

	a, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Profiles.SetRole(cmd.Context(), id, models.RoleAdmin); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("profile %s not found", id)
		}
		return err
	}
	logger.Info("profile promoted", "user_id", id)
	return nil
}
