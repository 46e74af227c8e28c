// Package adapters provides database adapter implementations for the
// PostgreSQL storage engine.
//
// The adapter pattern supports multiple PostgreSQL database libraries:
// pgxpool.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent
// functionality through a common DBAdapter interface, allowing the storage
// engine to work with any supported connection type.
package adapters
