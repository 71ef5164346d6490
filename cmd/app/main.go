package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "prestigo/docs"
	"prestigo/internal/logger"
)

var version = "dev"

// @title Prestigo API
// @version 1.0
// @description Slot availability and reservation service for venues.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prestigo",
		Short:         "Venue slot availability and reservations",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.Init()
		},
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSlotsCmd())
	root.AddCommand(newTokenCmd())

	return root
}
