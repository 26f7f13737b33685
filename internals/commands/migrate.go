package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	database "hostelhub_backend/internals/databases"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update all tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			if err := database.AutoMigrate(e.DB); err != nil {
				return err
			}
			e.Log.Info("[MIGRATE] schema up to date", zap.Int("models", len(database.Models())))
			return nil
		},
	}
}
