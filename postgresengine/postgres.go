package postgresengine

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/postgresengine/internal/adapters"
	"github.com/availsys/asset-availability-go/shell"
)

const (
	defaultAssetTableName  = "assets"
	defaultOutboxTableName = "outbox_events"

	logMsgBuildQueryFailed    = "failed to build sql query"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgRebuildLockFailed   = "failed to rebuild lock from database row"
	logMsgAssetLoaded         = "asset loaded"
	logMsgAssetSaved          = "asset saved"
	logMsgEventsAppended      = "outbox events appended"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "repository operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrAssetID            = "asset_id"
	logAttrEventCount         = "event_count"
	logAttrDurationMS         = "duration_ms"
	logAttrExpectedVersion    = "expected_version"
	logAttrRowsAffected       = "rows_affected"
	logActionLoad             = "load"
	logActionSave             = "save"
	logActionFind             = "find"
	logActionAppend           = "append"

	colAssetID        = "asset_id"
	colLockKind       = "lock_kind"
	colLockOwner      = "lock_owner"
	colLockValidUntil = "lock_valid_until"
	colVersion        = "version"
	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"

	dialectPostgres = "postgres"
)

type sqlQueryString = string

// Repository implements shell.AssetRepository on PostgreSQL.
// One row per asset holds the flattened current lock and the version used for
// optimistic concurrency control.
type Repository struct {
	db             adapters.DBAdapter
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
//
// Debug level: SQL statements with execution timing (development use)
// Info level: operation outcomes, durations, concurrency conflicts
// Warn level: non-critical issues like row cleanup failures
// Error level: failures that cause the operation to fail.
func WithLogger(logger shell.Logger) Option {
	return func(r *Repository) error {
		r.logger = logger
		return nil
	}
}

// NewRepositoryFromPGXPool creates a new Repository using a pgx pool with optional configuration.
func NewRepositoryFromPGXPool(db *pgxpool.Pool, options ...Option) (Repository, error) {
	if db == nil {
		return Repository{}, shell.ErrNilDatabaseConnection
	}

	return newRepository(adapters.NewPGXAdapter(db), options...)
}

// NewRepositoryFromSQLDB creates a new Repository using a sql.DB with optional configuration.
func NewRepositoryFromSQLDB(db *sql.DB, options ...Option) (Repository, error) {
	if db == nil {
		return Repository{}, shell.ErrNilDatabaseConnection
	}

	return newRepository(adapters.NewSQLAdapter(db), options...)
}

// NewRepositoryFromSQLX creates a new Repository using a sqlx.DB with optional configuration.
func NewRepositoryFromSQLX(db *sqlx.DB, options ...Option) (Repository, error) {
	if db == nil {
		return Repository{}, shell.ErrNilDatabaseConnection
	}

	return newRepository(adapters.NewSQLXAdapter(db), options...)
}

func newRepository(db adapters.DBAdapter, options ...Option) (Repository, error) {
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

	selectStmt := goqu.Dialect(dialectPostgres).
		From(r.assetTableName).
		Select(colLockKind, colLockOwner, colLockValidUntil, colVersion).
		Where(goqu.Ex{colAssetID: string(assetID)})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		r.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return nil, 0, toSQLErr
	}

	rows, duration, queryErr := r.executeQuery(ctx, sqlQuery, logActionLoad)
	if queryErr != nil {
		return nil, 0, queryErr
	}
	defer r.closeRows(rows)

	if !rows.Next() {
		return nil, 0, shell.ErrAssetNotFound
	}

	var (
		lockKind       sql.NullString
		lockOwner      sql.NullString
		lockValidUntil sql.NullTime
		version        int64
	)

	if scanErr := rows.Scan(&lockKind, &lockOwner, &lockValidUntil, &version); scanErr != nil {
		r.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
		return nil, 0, scanErr
	}

	asset := core.AssetAvailabilityOf(assetID)

	if lockKind.Valid {
		lock, lockErr := shell.LockFromStored(shell.StoredLock{
			Kind:       lockKind.String,
			Owner:      core.OwnerIDString(lockOwner.String),
			ValidUntil: lockValidUntil.Time,
		})
		if lockErr != nil {
			r.logError(logMsgRebuildLockFailed, logAttrError, lockErr.Error(), logAttrAssetID, string(assetID))
			return nil, 0, lockErr
		}

		asset = asset.With(lock)
	} else {
		asset = asset.With(nil)
	}

	r.logOperation(
		logMsgAssetLoaded,
		logAttrAssetID, string(assetID),
		logAttrDurationMS, durationToMilliseconds(duration))

	return asset, shell.Version(version), nil
}

// Save implements shell.AssetRepository.
//
// An expectedVersion of zero inserts a new row and maps a conflicting insert
// to shell.ErrAssetAlreadyRegistered. Any other value updates the row guarded
// by the version column; zero rows affected means a lost-update race and maps
// to shell.ErrConcurrencyConflict.
func (r Repository) Save(ctx context.Context, asset *core.AssetAvailability, expectedVersion shell.Version) error {
	sqlQuery, buildQueryErr := r.buildSaveQuery(asset, expectedVersion)
	if buildQueryErr != nil {
		r.logError(logMsgBuildQueryFailed, logAttrError, buildQueryErr.Error())
		return buildQueryErr
	}

	rowsAffected, duration, execErr := r.executeExec(ctx, sqlQuery, logActionSave)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		if expectedVersion == 0 {
			return shell.ErrAssetAlreadyRegistered
		}

		r.logOperation(
			logMsgConcurrencyConflict,
			logAttrAssetID, string(asset.ID()),
			logAttrExpectedVersion, expectedVersion,
			logAttrRowsAffected, rowsAffected)

		return shell.ErrConcurrencyConflict
	}

	r.logOperation(
		logMsgAssetSaved,
		logAttrAssetID, string(asset.ID()),
		logAttrDurationMS, durationToMilliseconds(duration))

	return nil
}

// FindLockedBefore implements shell.AssetRepository.
// Only owner locks carry an expiry; the sentinel lock kinds are never reported.
func (r Repository) FindLockedBefore(ctx context.Context, cutoff time.Time) ([]core.AssetIDString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(r.assetTableName).
		Select(colAssetID).
		Where(
			goqu.Ex{colLockKind: shell.LockKindOwner},
			goqu.C(colLockValidUntil).Lt(cutoff.UTC()),
		).
		Order(goqu.I(colAssetID).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		r.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return nil, toSQLErr
	}

	rows, _, queryErr := r.executeQuery(ctx, sqlQuery, logActionFind)
	if queryErr != nil {
		return nil, queryErr
	}
	defer r.closeRows(rows)

	var assetIDs []core.AssetIDString

	for rows.Next() {
		var assetID string

		if scanErr := rows.Scan(&assetID); scanErr != nil {
			r.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, scanErr
		}

		assetIDs = append(assetIDs, core.AssetIDString(assetID))
	}

	return assetIDs, nil
}

func (r Repository) buildSaveQuery(asset *core.AssetAvailability, expectedVersion shell.Version) (sqlQueryString, error) {
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
			record[colLockValidUntil] = stored.ValidUntil.UTC()
		}
	}

	builder := goqu.Dialect(dialectPostgres)

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

// executeQuery executes the SQL query and returns rows with timing information.
func (r Repository) executeQuery(ctx context.Context, sqlQuery string, action string) (
	adapters.DBRows,
	time.Duration,
	error,
) {

	start := time.Now()
	rows, queryErr := r.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	r.logQueryWithDuration(sqlQuery, action, duration)

	if queryErr != nil {
		r.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, duration, queryErr
	}

	return rows, duration, nil
}

// executeExec executes the SQL statement and returns rows affected with timing information.
func (r Repository) executeExec(ctx context.Context, sqlQuery string, action string) (
	int64,
	time.Duration,
	error,
) {

	start := time.Now()
	result, execErr := r.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	r.logQueryWithDuration(sqlQuery, action, duration)

	if execErr != nil {
		r.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return 0, duration, execErr
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		r.logError(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		return 0, duration, rowsAffectedErr
	}

	return rowsAffected, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (r Repository) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if r.logger != nil {
			r.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (r Repository) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if r.logger != nil {
		r.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (r Repository) logOperation(action string, args ...any) {
	if r.logger != nil {
		r.logger.Info(logMsgOperation+action, args...)
	}
}

func (r Repository) logError(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Error(msg, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
