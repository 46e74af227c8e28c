// Config loading for availabilityd using Viper.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/availsys/asset-availability-go/shell/config"
)

const (
	configFileName = "availabilityd"
	configFileType = "yaml"
	envPrefix      = "AVAILABILITY"

	// Config keys.
	cfgKeyStorageEngine      = "storage.engine"
	cfgKeyPostgresDSN        = "storage.postgres_dsn"
	cfgKeySQLitePath         = "storage.sqlite_path"
	cfgKeyHTTPAddr           = "http.addr"
	cfgKeyHTTPRatePerSec     = "http.requests_per_sec"
	cfgKeyHTTPRateBurst      = "http.requests_burst"
	cfgKeyObservabilityOn    = "observability.enabled"
	cfgKeyCollectorEndpoint  = "observability.collector_endpoint"
	cfgKeySweepGraceDuration = "sweep.grace"

	// Storage engines.
	engineSQLite   = "sqlite"
	enginePostgres = "postgres"
)

// loadConfig reads the configuration file, falling back to defaults and
// environment variables (prefix AVAILABILITY_, dots become underscores).
// A missing config file is not an error.
func loadConfig(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault(cfgKeyStorageEngine, engineSQLite)
	v.SetDefault(cfgKeyPostgresDSN, config.DefaultPostgresDSN())
	v.SetDefault(cfgKeySQLitePath, "availability.db")
	v.SetDefault(cfgKeyHTTPAddr, ":8080")
	v.SetDefault(cfgKeyHTTPRatePerSec, 100)
	v.SetDefault(cfgKeyHTTPRateBurst, 200)
	v.SetDefault(cfgKeyObservabilityOn, false)
	v.SetDefault(cfgKeyCollectorEndpoint, config.DefaultOTELCollectorEndpoint())
	v.SetDefault(cfgKeySweepGraceDuration, "0s")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}
