// AngelaMos | 2026
// migrate.go

package main

import (
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/tenanthub/internal/config"
	"github.com/carterperez-dev/tenanthub/internal/core"
)

var migrationCommands = []string{"up", "down", "status"}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down|status>",
		Short:     "Apply, roll back or inspect the schema migrations",
		ValidArgs: migrationCommands,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			db, err := core.NewDatabase(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // process exits next

			if err := core.RunMigrations(cmd.Context(), db.DB.DB, args[0]); err != nil {
				return err
			}

			cmd.Printf("migrate %s: done\n", args[0])
			return nil
		},
	}
}
