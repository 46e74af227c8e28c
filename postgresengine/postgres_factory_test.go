package postgresengine_test

import (
	"database/sql"
	"testing"

	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/assert"

	"github.com/availsys/asset-availability-go/postgresengine"
	"github.com/availsys/asset-availability-go/shell"
)

func Test_FactoryFunctions_NewRepository_ShouldFail_WithNilDatabaseConnection(t *testing.T) {
	testCases := []struct {
		name        string
		factoryFunc func() (postgresengine.Repository, error)
	}{
		{
			name: "NewRepositoryFromPGXPool with nil",
			factoryFunc: func() (postgresengine.Repository, error) {
				return postgresengine.NewRepositoryFromPGXPool(nil)
			},
		},
		{
			name: "NewRepositoryFromSQLDB with nil",
			factoryFunc: func() (postgresengine.Repository, error) {
				return postgresengine.NewRepositoryFromSQLDB(nil)
			},
		},
		{
			name: "NewRepositoryFromSQLX with nil",
			factoryFunc: func() (postgresengine.Repository, error) {
				return postgresengine.NewRepositoryFromSQLX(nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := tc.factoryFunc()

			// assert
			assert.ErrorIs(t, err, shell.ErrNilDatabaseConnection)
		})
	}
}

func Test_FactoryFunctions_NewRepository_ShouldFail_WithEmptyTableName(t *testing.T) {
	// arrange: sql.Open validates lazily, so no live database is needed here
	db, openErr := sql.Open("postgres", "postgres://localhost:5432/availability")
	assert.NoError(t, openErr)
	defer func() { _ = db.Close() }()

	// act
	_, err := postgresengine.NewRepositoryFromSQLDB(db, postgresengine.WithTableName(""))

	// assert
	assert.ErrorIs(t, err, shell.ErrEmptyTableName)
}

func Test_FactoryFunctions_NewEventOutbox_ShouldFail_WithEmptyTableName(t *testing.T) {
	// arrange
	db, openErr := sql.Open("postgres", "postgres://localhost:5432/availability")
	assert.NoError(t, openErr)
	defer func() { _ = db.Close() }()

	// act
	_, err := postgresengine.NewEventOutboxFromSQLDB(db, postgresengine.WithOutboxTableName(""))

	// assert
	assert.ErrorIs(t, err, shell.ErrEmptyTableName)
}

func Test_FactoryFunctions_NewEventOutbox_ShouldFail_WithNilDatabaseConnection(t *testing.T) {
	testCases := []struct {
		name        string
		factoryFunc func() (postgresengine.EventOutbox, error)
	}{
		{
			name: "NewEventOutboxFromPGXPool with nil",
			factoryFunc: func() (postgresengine.EventOutbox, error) {
				return postgresengine.NewEventOutboxFromPGXPool(nil)
			},
		},
		{
			name: "NewEventOutboxFromSQLDB with nil",
			factoryFunc: func() (postgresengine.EventOutbox, error) {
				return postgresengine.NewEventOutboxFromSQLDB(nil)
			},
		},
		{
			name: "NewEventOutboxFromSQLX with nil",
			factoryFunc: func() (postgresengine.EventOutbox, error) {
				return postgresengine.NewEventOutboxFromSQLX(nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := tc.factoryFunc()

			// assert
			assert.ErrorIs(t, err, shell.ErrNilDatabaseConnection)
		})
	}
}
