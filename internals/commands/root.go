// Package commands holds the hostelhub CLI: serve, migrate and seed.
package commands

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	serve := ServeCmd()
	root := &cobra.Command{
		Use:   "hostelhub",
		Short: "HostelHub back-office API",
		// bare invocation serves, so existing start scripts keep working
		RunE:          serve.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(
		serve,
		MigrateCmd(),
		SeedCmd(),
	)
	return root
}
