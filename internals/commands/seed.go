package commands

import (
	"github.com/spf13/cobra"

	database "hostelhub_backend/internals/databases"
	"hostelhub_backend/internals/seeds"
)

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo data and make sure the admin account exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()
			if err := database.AutoMigrate(e.DB); err != nil {
				return err
			}
			if err := e.ensureAdmin(ctx, e.authService()); err != nil {
				return err
			}
			_, err = seeds.RunAllSeeds(ctx, e.DB, e.Runner, e.hasher(), e.Clock, e.Log)
			return err
		},
	}
}
