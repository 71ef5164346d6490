package main

import (
	"github.com/spf13/cobra"

	"prestigo/internal/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			database, err := openDatabase(cfg, true)
			if err != nil {
				return err
			}
			return database.Close()
		},
	}
}
