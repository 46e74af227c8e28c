package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Global flag values.
var (
	flagConfigFile string
)

// cfg holds the loaded configuration.
// Set by PersistentPreRunE so all subcommands can use it.
var cfg *viper.Viper

var rootCmd = &cobra.Command{
	Use:   "availabilityd",
	Short: "availabilityd manages asset availability and locks",
	Long: `availabilityd is the asset availability service. It tracks the lock
state of assets (maintenance, withdrawal, owner locks), exposes the state
transitions over HTTP, and sweeps overdue owner locks.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		loaded, err := loadConfig(flagConfigFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: ./availabilityd.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(sweepCmd)
}
