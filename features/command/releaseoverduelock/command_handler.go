package releaseoverduelock

import (
	"context"

	"github.com/google/uuid"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/shell"
)

// CommandHandler polls one asset for an expired hold. The overdue decision
// lives here, not in the entity: the handler compares the owner lock's
// ValidUntil against its clock and only then invokes the unconditional
// force release. Sentinel locks carry no expiry and are never released by
// this handler. An asset without an overdue lock is an idempotent no-op.
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
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return shell.NewIdempotentResult(retryMetrics), nil
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
// It returns true when no release was needed.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	asset, version, err := h.repository.Load(ctx, command.AssetID)
	if err != nil {
		return false, err
	}

	now := h.clock.Now()

	lock, hasLock := asset.CurrentLock()
	if !hasLock {
		return true, nil
	}

	ownerLock, isOwnerLock := lock.(core.OwnerLock)
	if !isOwnerLock || ownerLock.ValidUntil.After(now) {
		return true, nil
	}

	event, released := asset.UnlockIfOverdue(now)
	if !released {
		return true, nil
	}

	if saveErr := h.repository.Save(ctx, asset, version); saveErr != nil {
		return false, saveErr
	}

	return false, h.appendToOutbox(ctx, event)
}

func (h CommandHandler) appendToOutbox(ctx context.Context, event core.DomainEvent) error {
	uid := uuid.New()

	storableEvent, err := shell.StorableEventFrom(event, shell.BuildEventMetadata(uid, uid, uid))
	if err != nil {
		return err
	}

	return h.outbox.Append(ctx, storableEvent)
}
