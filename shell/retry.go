package shell

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

var (
	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

// RetryableFunc represents a function that can be retried.
type RetryableFunc func(ctx context.Context) error

// RetryMetrics reports what happened during a retried execution.
type RetryMetrics struct {
	Attempts         int
	TotalDelay       time.Duration
	LastErrorType    string
	RetriesExhausted bool
}

// retryConfig holds configuration for exponential backoff retry logic.
type retryConfig struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
}

// RetryOption configures retry behavior using the functional options pattern.
type RetryOption func(*retryConfig) error

// WithMaxAttempts sets the maximum number of retry attempts.
func WithMaxAttempts(attempts int) RetryOption {
	return func(config *retryConfig) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		config.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
// Actual delays: baseDelay, baseDelay*2, baseDelay*4, baseDelay*8, etc.
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(config *retryConfig) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		config.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets the jitter factor applied to each backoff delay.
func WithJitterFactor(factor float64) RetryOption {
	return func(config *retryConfig) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		config.jitterFactor = factor

		return nil
	}
}

// RetryWithExponentialBackoff implements optimistic concurrency retry logic.
// It executes the provided function with exponential backoff retry logic,
// retrying only on retryable errors up to maxAttempts times.
//
// Retry Schedule (default): 0 ms, 10 ms, 20 ms, 40 ms, 80 ms (with 30% jitter)
// Total Duration: ~ 200 ms worst case
// Use Case: repository concurrency conflicts in high-load scenarios
//
// Only ErrConcurrencyConflict is retried - all other errors fail fast.
// A context.DeadlineExceeded is NOT retryable - retrying timeouts during
// overload creates cascade failures; timeouts should fail fast.
func RetryWithExponentialBackoff(
	ctx context.Context,
	fn RetryableFunc,
	options ...RetryOption,
) (RetryMetrics, error) {
	config := &retryConfig{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}

	metrics := RetryMetrics{LastErrorType: "none"}

	for _, option := range options {
		if err := option(config); err != nil {
			return metrics, err
		}
	}

	var lastErr error

	for attempt := 0; attempt < config.maxAttempts; attempt++ {
		if attempt > 0 {
			// Exponential backoff: baseDelay * 2^(attempt-1)
			delay := config.baseDelay * time.Duration(1<<(attempt-1))

			// Add jitter to prevent thundering herd
			jitter := rand.Float64() * float64(delay) * config.jitterFactor //nolint:gosec // math/rand is sufficient for jitter
			backoffDelay := delay + time.Duration(jitter)

			metrics.TotalDelay += backoffDelay

			select {
			case <-time.After(backoffDelay):
				// Continue with retry
			case <-ctx.Done():
				metrics.LastErrorType = getErrorType(ctx.Err())
				return metrics, ctx.Err()
			}
		}

		metrics.Attempts = attempt + 1

		lastErr = fn(ctx)
		if lastErr == nil {
			metrics.LastErrorType = "none"
			return metrics, nil // Success
		}

		metrics.LastErrorType = getErrorType(lastErr)

		// Check if the error is retryable
		if !isRetryableError(lastErr) {
			return metrics, lastErr // Permanent failure
		}
	}

	metrics.RetriesExhausted = true

	return metrics, lastErr // Max attempts reached
}

// isRetryableError determines if an error should be retried.
// Currently, only concurrency conflicts are considered retryable.
func isRetryableError(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}

// getErrorType extracts a string representation of the error type for reporting.
func getErrorType(err error) string {
	if err == nil {
		return "none"
	}
	if errors.Is(err, ErrConcurrencyConflict) {
		return "concurrency_conflict"
	}
	if errors.Is(err, context.Canceled) {
		return "context_canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "context_deadline_exceeded"
	}

	return "other"
}
