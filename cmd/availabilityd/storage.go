package main

import (
	"context"
	"fmt"

	"github.com/availsys/asset-availability-go/postgresengine"
	"github.com/availsys/asset-availability-go/shell"
	"github.com/availsys/asset-availability-go/shell/config"
	"github.com/availsys/asset-availability-go/sqliteengine"
)

// schemaEnsurer is implemented by both engines' repository and outbox types.
type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// storage bundles the configured persistence layer.
type storage struct {
	repository shell.AssetRepository
	outbox     shell.EventOutbox
	ensurers   []schemaEnsurer
	cleanup    func()
}

// buildStorage constructs the repository and outbox for the configured engine.
func buildStorage(ctx context.Context, logger shell.Logger) (*storage, error) {
	engine := cfg.GetString(cfgKeyStorageEngine)

	switch engine {
	case enginePostgres:
		return buildPostgresStorage(ctx, logger)

	case engineSQLite:
		return buildSQLiteStorage(ctx, logger)
	}

	return nil, fmt.Errorf("unknown storage engine %q", engine)
}

func buildPostgresStorage(ctx context.Context, logger shell.Logger) (*storage, error) {
	pool, err := config.NewPGXPool(ctx, cfg.GetString(cfgKeyPostgresDSN))
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	repository, err := postgresengine.NewRepositoryFromPGXPool(pool, postgresengine.WithLogger(logger))
	if err != nil {
		pool.Close()
		return nil, err
	}

	outbox, err := postgresengine.NewEventOutboxFromPGXPool(pool, postgresengine.WithOutboxLogger(logger))
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &storage{
		repository: repository,
		outbox:     outbox,
		ensurers:   []schemaEnsurer{repository, outbox},
		cleanup:    pool.Close,
	}, nil
}

func buildSQLiteStorage(ctx context.Context, logger shell.Logger) (*storage, error) {
	db, err := config.NewSQLiteDB(ctx, cfg.GetString(cfgKeySQLitePath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	repository, err := sqliteengine.NewRepository(db, sqliteengine.WithLogger(logger))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	outbox, err := sqliteengine.NewEventOutbox(db, sqliteengine.WithOutboxLogger(logger))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &storage{
		repository: repository,
		outbox:     outbox,
		ensurers:   []schemaEnsurer{repository, outbox},
		cleanup:    func() { _ = db.Close() },
	}, nil
}
