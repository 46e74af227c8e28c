package shell

import (
	"context"
	"time"

	"github.com/availsys/asset-availability-go/core"
)

// Version is the optimistic-concurrency version of a persisted availability
// record. Zero means "not yet persisted".
type Version = uint

// AssetRepository is the port through which handlers load and store the
// availability state of assets. Implementations detect lost-update races via
// the expected version and return ErrConcurrencyConflict.
type AssetRepository interface {
	// Load returns the reconstructed entity and its current version,
	// or ErrAssetNotFound.
	Load(ctx context.Context, assetID core.AssetIDString) (*core.AssetAvailability, Version, error)

	// Save persists the entity state. An expectedVersion of zero inserts a
	// new record (ErrAssetAlreadyRegistered if the id exists); any other
	// value updates the record guarded by the version
	// (ErrConcurrencyConflict if it moved).
	Save(ctx context.Context, asset *core.AssetAvailability, expectedVersion Version) error

	// FindLockedBefore returns the ids of assets whose owner lock expired
	// before the cutoff.
	FindLockedBefore(ctx context.Context, cutoff time.Time) ([]core.AssetIDString, error)
}

// EventOutbox is the port through which handlers hand domain events to the
// publication side. Appending is best-effort relative to Save; the outbox
// relay owns delivery guarantees.
type EventOutbox interface {
	Append(ctx context.Context, storableEvents ...StorableEvent) error
}

// Clock supplies "now" to the handlers so the core never reads wall time itself.
type Clock interface {
	Now() time.Time
}

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CommandHandler defines the contract for components that process commands.
// Handlers orchestrate the complete workflow: load, entity transition, save,
// outbox append - wrapped in optimistic-concurrency retry.
// The generic parameter C ensures type safety between commands and their handlers.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Logger is the plain leveled logging interface used by the storage engines.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger is the context-aware logging interface used by handlers
// and the HTTP layer, enabling trace correlation.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector records command processing outcomes and durations.
type MetricsCollector interface {
	RecordCommandOutcome(ctx context.Context, commandType string, outcome string)
	RecordCommandDuration(ctx context.Context, commandType string, duration time.Duration)
}
