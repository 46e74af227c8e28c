package shell

import "time"

// HandlerResult represents the outcome of a command handler execution.
// It captures business outcomes (rejection, idempotency) and execution
// metadata (retry information) without coupling the handler to specific
// observability implementations.
type HandlerResult struct {
	// Rejected indicates the entity refused the transition; RejectionReason
	// carries the stable reason code. A rejection is a business outcome,
	// not an error condition.
	Rejected        bool
	RejectionReason string

	// Idempotent indicates the operation required no state change
	// (e.g. releasing a lock that is not overdue).
	Idempotent bool

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the type of the final error encountered during retries.
	// Values: "none" (success), "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted indicates whether max retry attempts were reached with a retryable error.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for applied transitions.
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewRejectedResult creates a HandlerResult for transitions the entity refused.
func NewRejectedResult(reason string, retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Rejected:         true,
		RejectionReason:  reason,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewIdempotentResult creates a HandlerResult for operations that needed no state change.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Idempotent:       true,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewErrorResult creates a HandlerResult for failed operations.
// This is used when the handler returns an error but still wants to report retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
