// Package postgresengine provides the PostgreSQL implementations of the
// asset repository and the event outbox.
//
// The engine supports multiple PostgreSQL database libraries (pgxpool.Pool,
// sql.DB, and sqlx.DB) through an internal adapter layer. All SQL is built
// with goqu as fully interpolated statements, so the adapters only need to
// execute plain query strings.
//
// Optimistic concurrency is enforced with a version column: an update that
// affects no rows surfaces as shell.ErrConcurrencyConflict, which the command
// handlers retry with backoff.
package postgresengine
