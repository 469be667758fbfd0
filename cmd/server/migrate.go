package main

import (
	"errors"
	"fmt"

	"github.com/kiranshivaraju/reviewpulse/internal/config"
	"github.com/kiranshivaraju/reviewpulse/internal/store"
	"github.com/spf13/cobra"
)

var rollbackSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the Postgres schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, err := postgresURL()
		if err != nil {
			return err
		}
		if err := store.RunMigrations(url); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the most recent migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, err := postgresURL()
		if err != nil {
			return err
		}
		if err := store.RollbackMigrations(url, rollbackSteps); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "reverted %d migration(s)\n", rollbackSteps)
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, err := postgresURL()
		if err != nil {
			return err
		}
		version, dirty, err := store.MigrationVersion(url)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVarP(&rollbackSteps, "steps", "n", 1, "number of migrations to revert")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

// postgresURL loads config and returns DATABASE_URL if it points at Postgres.
// MongoDB indexes are created on connect and have no migrations.
func postgresURL() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.Driver() != config.DriverPostgres {
		return "", errors.New("migrate requires a postgres:// DATABASE_URL")
	}
	return cfg.Database.URL, nil
}
