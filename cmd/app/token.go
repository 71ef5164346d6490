package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"prestigo/internal/auth"
	"prestigo/internal/config"
)

func newTokenCmd() *cobra.Command {
	var (
		caller auth.Caller
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := auth.GenerateAccessToken(caller, cfg.JWTSecret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&caller.ID, "sub", "", "caller ID")
	cmd.Flags().StringVar(&caller.Email, "email", "", "caller email")
	cmd.Flags().StringVar(&caller.Name, "name", "", "caller display name")
	cmd.Flags().StringVar(&caller.Role, "role", auth.RoleUser, "user or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
