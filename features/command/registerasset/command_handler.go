package registerasset

import (
	"context"

	"github.com/google/uuid"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/shell"
)

// CommandHandler creates a fresh availability record for an asset.
// Registered assets start under maintenance; activating them is a separate
// command. Registering an id twice fails with ErrAssetAlreadyRegistered.
type CommandHandler struct {
	repository shell.AssetRepository
	outbox     shell.EventOutbox
	clock      shell.Clock
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithClock sets a custom clock for the handler.
func WithClock(clock shell.Clock) Option {
	return func(h *CommandHandler) {
		h.clock = clock
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(repository shell.AssetRepository, outbox shell.EventOutbox, opts ...Option) CommandHandler {
	handler := CommandHandler{
		repository: repository,
		outbox:     outbox,
		clock:      shell.SystemClock{},
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle creates the entity and persists it as a new record. There is no
// retry here: the only conflicting outcome is a duplicate registration,
// which retrying cannot resolve.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	asset := core.AssetAvailabilityOf(command.AssetID)

	if err := h.repository.Save(ctx, asset, 0); err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{Attempts: 1}), err
	}

	event := core.BuildAssetRegistered(command.AssetID, h.clock.Now())

	if err := h.appendToOutbox(ctx, event); err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{Attempts: 1}), err
	}

	return shell.NewSuccessResult(shell.RetryMetrics{Attempts: 1, LastErrorType: "none"}), nil
}

func (h CommandHandler) appendToOutbox(ctx context.Context, event core.DomainEvent) error {
	uid := uuid.New()

	storableEvent, err := shell.StorableEventFrom(event, shell.BuildEventMetadata(uid, uid, uid))
	if err != nil {
		return err
	}

	return h.outbox.Append(ctx, storableEvent)
}
