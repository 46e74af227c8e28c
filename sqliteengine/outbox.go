package sqliteengine

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/availsys/asset-availability-go/shell"
)

// EventOutbox implements shell.EventOutbox on SQLite.
type EventOutbox struct {
	db              *sql.DB
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

// NewEventOutbox creates a new EventOutbox using a sql.DB opened with the
// modernc.org/sqlite driver, with optional configuration.
func NewEventOutbox(db *sql.DB, options ...OutboxOption) (EventOutbox, error) {
	if db == nil {
		return EventOutbox{}, shell.ErrNilDatabaseConnection
	}

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
			colOccurredAt: event.OccurredAt.UTC().UnixMicro(),
			colPayload:    string(event.PayloadJSON),
			colMetadata:   string(event.MetadataJSON),
		})
	}

	insertStmt := goqu.Dialect(dialectSQLite).
		Insert(o.outboxTableName).
		Rows(records...)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		o.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return toSQLErr
	}

	if _, execErr := o.db.ExecContext(ctx, sqlQuery); execErr != nil {
		o.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return execErr
	}

	return nil
}

func (o EventOutbox) logError(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Error(msg, args...)
	}
}
