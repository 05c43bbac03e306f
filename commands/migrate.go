package commands

import (
	"employee_management/config"
	"employee_management/utils"

	"github.com/spf13/cobra"
)

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Creates or updates the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Migrate(app.DB); err != nil {
				return err
			}
			utils.Logger.Info("Schema migrated")
			return nil
		},
	}
}
