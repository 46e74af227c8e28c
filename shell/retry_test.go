package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/availsys/asset-availability-go/shell"
)

func Test_Retry_Success_OnFirstAttempt(t *testing.T) {
	// arrange
	calls := 0

	// act
	metrics, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error {
		calls++
		return nil
	})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, metrics.Attempts)
	assert.Equal(t, "none", metrics.LastErrorType)
	assert.False(t, metrics.RetriesExhausted)
}

func Test_Retry_RetriesConcurrencyConflicts(t *testing.T) {
	// arrange
	calls := 0

	// act
	metrics, err := shell.RetryWithExponentialBackoff(
		context.Background(),
		func(_ context.Context) error {
			calls++
			if calls < 3 {
				return shell.ErrConcurrencyConflict
			}
			return nil
		},
		shell.WithBaseDelay(time.Millisecond),
	)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, metrics.Attempts)
	assert.False(t, metrics.RetriesExhausted)
}

func Test_Retry_FailsFast_OnPermanentError(t *testing.T) {
	// arrange
	permanentErr := errors.New("boom")
	calls := 0

	// act
	metrics, err := shell.RetryWithExponentialBackoff(context.Background(), func(_ context.Context) error {
		calls++
		return permanentErr
	})

	// assert
	assert.ErrorIs(t, err, permanentErr)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "other", metrics.LastErrorType)
}

func Test_Retry_Exhausts_OnPersistentConflict(t *testing.T) {
	// act
	metrics, err := shell.RetryWithExponentialBackoff(
		context.Background(),
		func(_ context.Context) error {
			return shell.ErrConcurrencyConflict
		},
		shell.WithMaxAttempts(3),
		shell.WithBaseDelay(time.Millisecond),
		shell.WithJitterFactor(0),
	)

	// assert
	assert.ErrorIs(t, err, shell.ErrConcurrencyConflict)
	assert.Equal(t, 3, metrics.Attempts)
	assert.True(t, metrics.RetriesExhausted)
	assert.Equal(t, "concurrency_conflict", metrics.LastErrorType)
}

func Test_Retry_RejectsInvalidOptions(t *testing.T) {
	noop := func(_ context.Context) error { return nil }

	_, err := shell.RetryWithExponentialBackoff(context.Background(), noop, shell.WithMaxAttempts(0))
	assert.ErrorIs(t, err, shell.ErrInvalidMaxAttempts)

	_, err = shell.RetryWithExponentialBackoff(context.Background(), noop, shell.WithBaseDelay(-time.Second))
	assert.ErrorIs(t, err, shell.ErrNegativeBaseDelay)

	_, err = shell.RetryWithExponentialBackoff(context.Background(), noop, shell.WithJitterFactor(1.5))
	assert.ErrorIs(t, err, shell.ErrInvalidJitterFactor)
}

func Test_Retry_HonorsContextCancellation(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())

	// act
	_, err := shell.RetryWithExponentialBackoff(
		ctx,
		func(_ context.Context) error {
			cancel()
			return shell.ErrConcurrencyConflict
		},
		shell.WithBaseDelay(time.Hour), // the cancelled context must win over the delay
	)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}
