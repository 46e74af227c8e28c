package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		logger, shutdownObservability, err := setupObservability()
		if err != nil {
			return err
		}
		defer shutdownObservability()

		store, err := buildStorage(ctx, logger)
		if err != nil {
			return err
		}
		defer store.cleanup()

		for _, ensurer := range store.ensurers {
			if ensureErr := ensurer.EnsureSchema(ctx); ensureErr != nil {
				return fmt.Errorf("ensure schema: %w", ensureErr)
			}
		}

		logger.Info("schema is up to date", "engine", cfg.GetString(cfgKeyStorageEngine))

		return nil
	},
}
