// Package config provides connection and observability configuration helpers
// for the asset availability service.
//
// It contains factory functions for creating PostgreSQL connections using
// different drivers (pgxpool.Pool, sql.DB, sqlx.DB), for opening the SQLite
// database used in single-node deployments, and for bootstrapping the
// OpenTelemetry providers.
//
// This package is part of the shell (infrastructure) layer.
package config
