// Package sqliteengine provides the SQLite implementations of the asset
// repository and the event outbox, intended for local development, tests,
// and single-node deployments.
//
// The engine uses the cgo-free modernc.org/sqlite driver and builds all SQL
// with goqu as fully interpolated statements. Timestamps are persisted as
// integer unix microseconds because SQLite has no native timestamp type.
//
// Optimistic concurrency follows the same contract as the PostgreSQL engine:
// a version-guarded update that affects no rows surfaces as
// shell.ErrConcurrencyConflict.
package sqliteengine
