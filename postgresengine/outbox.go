package postgresengine

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/availsys/asset-availability-go/postgresengine/internal/adapters"
	"github.com/availsys/asset-availability-go/shell"
)

// EventOutbox implements shell.EventOutbox on PostgreSQL. Domain events are
// appended to an append-only table from which a relay publishes them.
type EventOutbox struct {
	db              adapters.DBAdapter
	outboxTableName string
	logger          shell.Logger
}

// OutboxOption defines a functional option for configuring the EventOutbox.
type OutboxOption func(*EventOutbox) error

// WithOutboxTableName sets the outbox table name.
func WithOutboxTableName(tableName string) OutboxOption {
	return func(o *EventOutbox) error {
		if tableName == "" {
			return shell.ErrEmptyTableName
		}

		o.outboxTableName = tableName

		return nil
	}
}

// WithOutboxLogger sets the logger for the EventOutbox.
func WithOutboxLogger(logger shell.Logger) OutboxOption {
	return func(o *EventOutbox) error {
		o.logger = logger
		return nil
	}
}

// NewEventOutboxFromPGXPool creates a new EventOutbox using a pgx pool with optional configuration.
func NewEventOutboxFromPGXPool(db *pgxpool.Pool, options ...OutboxOption) (EventOutbox, error) {
	if db == nil {
		return EventOutbox{}, shell.ErrNilDatabaseConnection
	}

	return newEventOutbox(adapters.NewPGXAdapter(db), options...)
}

// NewEventOutboxFromSQLDB creates a new EventOutbox using a sql.DB with optional configuration.
func NewEventOutboxFromSQLDB(db *sql.DB, options ...OutboxOption) (EventOutbox, error) {
	if db == nil {
		return EventOutbox{}, shell.ErrNilDatabaseConnection
	}

	return newEventOutbox(adapters.NewSQLAdapter(db), options...)
}

// NewEventOutboxFromSQLX creates a new EventOutbox using a sqlx.DB with optional configuration.
func NewEventOutboxFromSQLX(db *sqlx.DB, options ...OutboxOption) (EventOutbox, error) {
	if db == nil {
		return EventOutbox{}, shell.ErrNilDatabaseConnection
	}

	return newEventOutbox(adapters.NewSQLXAdapter(db), options...)
}

func newEventOutbox(db adapters.DBAdapter, options ...OutboxOption) (EventOutbox, error) {
	outbox := EventOutbox{
		db:              db,
		outboxTableName: defaultOutboxTableName,
	}

	for _, option := range options {
		if err := option(&outbox); err != nil {
			return EventOutbox{}, err
		}
	}

	return outbox, nil
}

// Append implements shell.EventOutbox.
func (o EventOutbox) Append(ctx context.Context, storableEvents ...shell.StorableEvent) error {
	if len(storableEvents) == 0 {
		return nil
	}

	records := make([]any, 0, len(storableEvents))

	for _, event := range storableEvents {
		records = append(records, goqu.Record{
			colEventType:  event.EventType,
			colOccurredAt: event.OccurredAt.UTC(),
			colPayload:    string(event.PayloadJSON),
			colMetadata:   string(event.MetadataJSON),
		})
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(o.outboxTableName).
		Rows(records...)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		o.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return toSQLErr
	}

	rowsAffected, duration, execErr := o.executeExec(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if o.logger != nil {
		o.logger.Info(
			logMsgOperation+logMsgEventsAppended,
			logAttrEventCount, len(storableEvents),
			logAttrRowsAffected, rowsAffected,
			logAttrDurationMS, durationToMilliseconds(duration))
	}

	return nil
}

func (o EventOutbox) executeExec(ctx context.Context, sqlQuery string) (int64, time.Duration, error) {
	start := time.Now()
	result, execErr := o.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)

	if o.logger != nil {
		o.logger.Debug(logMsgSQLExecuted+logActionAppend, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}

	if execErr != nil {
		o.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return 0, duration, execErr
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		o.logError(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		return 0, duration, rowsAffectedErr
	}

	return rowsAffected, duration, nil
}

func (o EventOutbox) logError(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Error(msg, args...)
	}
}
