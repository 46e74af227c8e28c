package shell

import (
	"errors"
)

// ErrAssetNotFound is returned when no availability record exists for an asset id.
var ErrAssetNotFound = errors.New("asset not found")

// ErrAssetAlreadyRegistered is returned when registering an asset id that already exists.
var ErrAssetAlreadyRegistered = errors.New("asset already registered")

// ErrConcurrencyConflict is returned when a save raced with another writer
// and affected no rows. It is the only retryable error.
var ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

// ErrNilDatabaseConnection is returned by the engine constructors when the
// supplied connection is nil.
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")

// ErrEmptyTableName is returned by the engine options when an empty table name is supplied.
var ErrEmptyTableName = errors.New("table name must not be empty")
