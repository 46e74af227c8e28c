package sqliteengine

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect import

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/shell"
)

const (
	defaultAssetTableName  = "assets"
	defaultOutboxTableName = "outbox_events"

	logMsgBuildQueryFailed    = "failed to build sql query"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database execution failed"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgRebuildLockFailed   = "failed to rebuild lock from database row"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrAssetID            = "asset_id"
	logAttrExpectedVersion    = "expected_version"
	logAttrRowsAffected       = "rows_affected"

	colAssetID        = "asset_id"
	colLockKind       = "lock_kind"
	colLockOwner      = "lock_owner"
	colLockValidUntil = "lock_valid_until"
	colVersion        = "version"
	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"

	dialectSQLite = "sqlite3"
)

// Repository implements shell.AssetRepository on SQLite.
// One row per asset holds the flattened current lock and the version used for
// optimistic concurrency control. Lock expiry is stored as unix microseconds.
type Repository struct {
	db             *sql.DB
	assetTableName string
	logger         shell.Logger
}

// Option defines a functional option for configuring the Repository.
type Option func(*Repository) error

// WithTableName sets the asset table name for the Repository.
func WithTableName(tableName string) Option {
	return func(r *Repository) error {
		if tableName == "" {
			return shell.ErrEmptyTableName
		}

		r.assetTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Repository.
func WithLogger(logger shell.Logger) Option {
	return func(r *Repository) error {
		r.logger = logger
		return nil
	}
}

// NewRepository creates a new Repository using a sql.DB opened with the
// modernc.org/sqlite driver, with optional configuration.
func NewRepository(db *sql.DB, options ...Option) (Repository, error) {
	if db == nil {
		return Repository{}, shell.ErrNilDatabaseConnection
	}

	repo := Repository{
		db:             db,
		assetTableName: defaultAssetTableName,
	}

	for _, option := range options {
		if err := option(&repo); err != nil {
			return Repository{}, err
		}
	}

	return repo, nil
}

// Load implements shell.AssetRepository.
func (r Repository) Load(ctx context.Context, assetID core.AssetIDString) (
	*core.AssetAvailability,
	shell.Version,
	error,
) {

	selectStmt := goqu.Dialect(dialectSQLite).
		From(r.assetTableName).
		Select(colLockKind, colLockOwner, colLockValidUntil, colVersion).
		Where(goqu.Ex{colAssetID: string(assetID)})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		r.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return nil, 0, toSQLErr
	}

	var (
		lockKind       sql.NullString
		lockOwner      sql.NullString
		lockValidUntil sql.NullInt64
		version        int64
	)

	row := r.db.QueryRowContext(ctx, sqlQuery)

	scanErr := row.Scan(&lockKind, &lockOwner, &lockValidUntil, &version)
	if scanErr == sql.ErrNoRows {
		return nil, 0, shell.ErrAssetNotFound
	}
	if scanErr != nil {
		r.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
		return nil, 0, scanErr
	}

	asset := core.AssetAvailabilityOf(assetID)

	if lockKind.Valid {
		lock, lockErr := shell.LockFromStored(shell.StoredLock{
			Kind:       lockKind.String,
			Owner:      core.OwnerIDString(lockOwner.String),
			ValidUntil: time.UnixMicro(lockValidUntil.Int64).UTC(),
		})
		if lockErr != nil {
			r.logError(logMsgRebuildLockFailed, logAttrError, lockErr.Error(), logAttrAssetID, string(assetID))
			return nil, 0, lockErr
		}

		asset = asset.With(lock)
	} else {
		asset = asset.With(nil)
	}

	return asset, shell.Version(version), nil
}

// Save implements shell.AssetRepository.
//
// An expectedVersion of zero inserts a new row and maps a conflicting insert
// to shell.ErrAssetAlreadyRegistered. Any other value updates the row guarded
// by the version column; zero rows affected maps to shell.ErrConcurrencyConflict.
func (r Repository) Save(ctx context.Context, asset *core.AssetAvailability, expectedVersion shell.Version) error {
	sqlQuery, buildQueryErr := r.buildSaveQuery(asset, expectedVersion)
	if buildQueryErr != nil {
		r.logError(logMsgBuildQueryFailed, logAttrError, buildQueryErr.Error())
		return buildQueryErr
	}

	result, execErr := r.db.ExecContext(ctx, sqlQuery)
	if execErr != nil {
		r.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return execErr
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		r.logError(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		return rowsAffectedErr
	}

	if rowsAffected == 0 {
		if expectedVersion == 0 {
			return shell.ErrAssetAlreadyRegistered
		}

		if r.logger != nil {
			r.logger.Info(
				logMsgConcurrencyConflict,
				logAttrAssetID, string(asset.ID()),
				logAttrExpectedVersion, expectedVersion,
				logAttrRowsAffected, rowsAffected)
		}

		return shell.ErrConcurrencyConflict
	}

	return nil
}

// FindLockedBefore implements shell.AssetRepository.
// Only owner locks carry an expiry; the sentinel lock kinds are never reported.
func (r Repository) FindLockedBefore(ctx context.Context, cutoff time.Time) ([]core.AssetIDString, error) {
	selectStmt := goqu.Dialect(dialectSQLite).
		From(r.assetTableName).
		Select(colAssetID).
		Where(
			goqu.Ex{colLockKind: shell.LockKindOwner},
			goqu.C(colLockValidUntil).Lt(cutoff.UTC().UnixMicro()),
		).
		Order(goqu.I(colAssetID).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		r.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return nil, toSQLErr
	}

	rows, queryErr := r.db.QueryContext(ctx, sqlQuery)
	if queryErr != nil {
		r.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, queryErr
	}
	defer func() { _ = rows.Close() }()

	var assetIDs []core.AssetIDString

	for rows.Next() {
		var assetID string

		if scanErr := rows.Scan(&assetID); scanErr != nil {
			r.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, scanErr
		}

		assetIDs = append(assetIDs, core.AssetIDString(assetID))
	}

	return assetIDs, rows.Err()
}

func (r Repository) buildSaveQuery(asset *core.AssetAvailability, expectedVersion shell.Version) (string, error) {
	record := goqu.Record{
		colLockKind:       nil,
		colLockOwner:      nil,
		colLockValidUntil: nil,
	}

	if lock, hasLock := asset.CurrentLock(); hasLock {
		stored := shell.StoredLockFrom(lock)
		record[colLockKind] = stored.Kind

		if stored.Kind == shell.LockKindOwner {
			record[colLockOwner] = string(stored.Owner)
			record[colLockValidUntil] = stored.ValidUntil.UTC().UnixMicro()
		}
	}

	builder := goqu.Dialect(dialectSQLite)

	if expectedVersion == 0 {
		record[colAssetID] = string(asset.ID())
		record[colVersion] = 1

		insertStmt := builder.
			Insert(r.assetTableName).
			Rows(record).
			OnConflict(goqu.DoNothing())

		sqlQuery, _, toSQLErr := insertStmt.ToSQL()

		return sqlQuery, toSQLErr
	}

	record[colVersion] = uint(expectedVersion) + 1

	updateStmt := builder.
		Update(r.assetTableName).
		Set(record).
		Where(
			goqu.Ex{colAssetID: string(asset.ID())},
			goqu.Ex{colVersion: uint(expectedVersion)},
		)

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()

	return sqlQuery, toSQLErr
}

func (r Repository) logError(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Error(msg, args...)
	}
}
