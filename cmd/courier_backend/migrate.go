package main

import (
	"github.com/SscSPs/courier_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		return database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath, logger)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations",
	Example: `  # Roll back the last migration
  courier_backend migrate down

  # Roll back the last two migrations
  courier_backend migrate down --steps 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		return database.MigrateDown(cfg.DatabaseURL, cfg.MigrationsPath, steps, logger)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)

	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
}
