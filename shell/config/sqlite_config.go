package config

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // sqlite driver
)

// NewSQLiteDB opens a SQLite database with the cgo-free modernc.org/sqlite
// driver and verifies the connection.
//
// SQLite serializes writers, so the pool is limited to a single connection.
// This also makes in-memory databases behave, since each connection to
// ":memory:" would otherwise get its own database.
func NewSQLiteDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, pingErr
	}

	return db, nil
}
