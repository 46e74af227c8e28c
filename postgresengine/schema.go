package postgresengine

import (
	"context"
	"fmt"
)

const createAssetTableTemplate = `
CREATE TABLE IF NOT EXISTS %s (
    asset_id         TEXT PRIMARY KEY,
    lock_kind        TEXT,
    lock_owner       TEXT,
    lock_valid_until TIMESTAMPTZ,
    version          BIGINT NOT NULL
)`

const createOverdueIndexTemplate = `
CREATE INDEX IF NOT EXISTS %s_lock_valid_until_idx
    ON %s (lock_valid_until)
    WHERE lock_kind = 'OWNER'`

const createOutboxTableTemplate = `
CREATE TABLE IF NOT EXISTS %s (
    id           BIGSERIAL PRIMARY KEY,
    event_type   TEXT NOT NULL,
    occurred_at  TIMESTAMPTZ NOT NULL,
    payload      JSONB NOT NULL,
    metadata     JSONB NOT NULL,
    published_at TIMESTAMPTZ
)`

// EnsureSchema creates the asset table and its partial index if they do not exist.
func (r Repository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(createAssetTableTemplate, r.assetTableName),
		fmt.Sprintf(createOverdueIndexTemplate, r.assetTableName, r.assetTableName),
	}

	for _, statement := range statements {
		if _, err := r.db.Exec(ctx, statement); err != nil {
			r.logError(logMsgDBExecFailed, logAttrError, err.Error(), logAttrQuery, statement)
			return err
		}
	}

	return nil
}

// EnsureSchema creates the outbox table if it does not exist.
func (o EventOutbox) EnsureSchema(ctx context.Context) error {
	statement := fmt.Sprintf(createOutboxTableTemplate, o.outboxTableName)

	if _, err := o.db.Exec(ctx, statement); err != nil {
		o.logError(logMsgDBExecFailed, logAttrError, err.Error(), logAttrQuery, statement)
		return err
	}

	return nil
}
