// AngelaMos | 2026
// users.go

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/tenanthub/internal/config"
	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/notification"
	"github.com/carterperez-dev/tenanthub/internal/user"
)

func newUsersCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User administration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "promote <email>",
		Short: "Grant the admin role to an existing user",
		Args:  cobra.ExactArgs(1),
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

			notifier := notification.NewService(
				notification.NewRepository(db.DB),
				slog.Default(),
			)
			svc := user.NewService(user.NewRepository(db.DB), notifier)

			u, err := svc.PromoteByEmail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cmd.Printf("%s is now %s\n", u.Email, u.Role)
			return nil
		},
	})

	return cmd
}
