package shell

import (
	"context"
	"time"
)

// Command processing outcomes as recorded by the metrics collector.
const (
	OutcomeSuccess    = "success"
	OutcomeRejected   = "rejected"
	OutcomeIdempotent = "idempotent"
	OutcomeError      = "error"
)

// InstrumentedCommandHandler decorates a CommandHandler with outcome and
// duration metrics. The wrapped handler stays unaware of instrumentation.
type InstrumentedCommandHandler[C Command] struct {
	inner   CommandHandler[C]
	metrics MetricsCollector
}

// NewInstrumentedCommandHandler wraps the given handler.
func NewInstrumentedCommandHandler[C Command](inner CommandHandler[C], metrics MetricsCollector) InstrumentedCommandHandler[C] {
	return InstrumentedCommandHandler[C]{
		inner:   inner,
		metrics: metrics,
	}
}

// Handle delegates to the wrapped handler and records the outcome.
func (h InstrumentedCommandHandler[C]) Handle(ctx context.Context, command C) (HandlerResult, error) {
	start := time.Now()

	result, err := h.inner.Handle(ctx, command)

	h.metrics.RecordCommandOutcome(ctx, command.CommandType(), outcomeOf(result, err))
	h.metrics.RecordCommandDuration(ctx, command.CommandType(), time.Since(start))

	return result, err
}

func outcomeOf(result HandlerResult, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case result.Rejected:
		return OutcomeRejected
	case result.Idempotent:
		return OutcomeIdempotent
	default:
		return OutcomeSuccess
	}
}
