package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/availsys/asset-availability-go/features/command/releaseoverduelock"
	"github.com/availsys/asset-availability-go/features/query/overdueassets"
	"github.com/availsys/asset-availability-go/shell"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Release all overdue owner locks",
	Long: `Sweep finds assets whose owner lock expired before now (minus the
configured grace period) and force-releases those locks. Maintenance and
withdrawal locks never expire and are not touched.`,
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

		cutoff := shell.SystemClock{}.Now().Add(-cfg.GetDuration(cfgKeySweepGraceDuration))

		finder := overdueassets.NewQueryHandler(store.repository)

		result, err := finder.Handle(ctx, overdueassets.BuildQuery(cutoff))
		if err != nil {
			return fmt.Errorf("find overdue assets: %w", err)
		}

		releaser := releaseoverduelock.NewCommandHandler(store.repository, store.outbox)

		released := 0
		skipped := 0

		for _, assetID := range result.AssetIDs {
			handlerResult, handleErr := releaser.Handle(ctx, releaseoverduelock.BuildCommand(assetID))
			if handleErr != nil {
				logger.Error("failed to release lock", "asset_id", string(assetID), "error", handleErr.Error())
				continue
			}

			// the lock may have been extended or released since the query
			if handlerResult.Idempotent {
				skipped++
				continue
			}

			released++
		}

		logger.Info("sweep finished",
			"cutoff", cutoff.String(),
			"candidates", len(result.AssetIDs),
			"released", released,
			"skipped", skipped)

		return nil
	},
}
