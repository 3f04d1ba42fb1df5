// AngelaMos | 2026
// keys.go

package main

import (
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/tenanthub/internal/auth"
	"github.com/carterperez-dev/tenanthub/internal/config"
)

func newKeysCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the ES256 token signing keys",
	}

	var privatePath, publicPath string

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Write a new P-256 key pair as PEM files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if privatePath == "" || publicPath == "" {
				cfg, err := config.Load(opts.configPath)
				if err != nil {
					return err
				}
				if privatePath == "" {
					privatePath = cfg.JWT.PrivateKeyPath
				}
				if publicPath == "" {
					publicPath = cfg.JWT.PublicKeyPath
				}
			}

			if err := auth.GenerateKeyPair(privatePath, publicPath); err != nil {
				return err
			}

			cmd.Printf("wrote %s and %s\n", privatePath, publicPath)
			return nil
		},
	}

	generate.Flags().StringVar(&privatePath, "private", "", "private key output path (defaults to jwt.private_key_path)")
	generate.Flags().StringVar(&publicPath, "public", "", "public key output path (defaults to jwt.public_key_path)")

	cmd.AddCommand(generate)
	return cmd
}
