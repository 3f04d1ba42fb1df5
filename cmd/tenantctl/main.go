// AngelaMos | 2026
// main.go

// Command tenantctl is the operator CLI: schema migrations, signing keys
// and admin bootstrap.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "tenantctl",
		Short:         "Operate a tenanthub deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(
		&opts.configPath, "config", "config.yaml", "path to config file",
	)

	cmd.AddCommand(
		newMigrateCommand(opts),
		newKeysCommand(opts),
		newUsersCommand(opts),
	)

	return cmd
}
