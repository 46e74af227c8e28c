package extendassetlock

import (
	"context"

	"github.com/google/uuid"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/shell"
)

// CommandHandler orchestrates the indefinite extension workflow. The entity
// only extends a hold the same owner already has; anything else rejects
// with NO_LOCK_DEFINED_FOR_OWNER.
type CommandHandler struct {
	repository   shell.AssetRepository
	outbox       shell.EventOutbox
	clock        shell.Clock
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithClock sets a custom clock for the handler.
func WithClock(clock shell.Clock) Option {
	return func(h *CommandHandler) {
		h.clock = clock
	}
}

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
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

// Handle executes the complete command processing workflow with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var rejectionReason string

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		reason, execErr := h.executeCommand(retryCtx, command)
		rejectionReason = reason

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if rejectionReason != "" {
		return shell.NewRejectedResult(rejectionReason, retryMetrics), nil
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (string, error) {
	asset, version, err := h.repository.Load(ctx, command.AssetID)
	if err != nil {
		return "", err
	}

	result := asset.LockIndefinitelyFor(command.OwnerID, h.clock.Now())

	if result.IsRejected() {
		return result.RejectionReason(), h.appendToOutbox(ctx, result.Event)
	}

	if saveErr := h.repository.Save(ctx, asset, version); saveErr != nil {
		return "", saveErr
	}

	return "", h.appendToOutbox(ctx, result.Event)
}

func (h CommandHandler) appendToOutbox(ctx context.Context, event core.DomainEvent) error {
	uid := uuid.New()

	storableEvent, err := shell.StorableEventFrom(event, shell.BuildEventMetadata(uid, uid, uid))
	if err != nil {
		return err
	}

	return h.outbox.Append(ctx, storableEvent)
}
