package lockasset_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/features/command/lockasset"
	"github.com/availsys/asset-availability-go/shell"
	"github.com/availsys/asset-availability-go/testutil"
)

func Test_Handle_Success_WhenAssetAvailable(t *testing.T) {
	// arrange
	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	repository.Seed(core.AssetAvailabilityOf("A1").With(nil), 1)

	now := time.Now()
	handler := lockasset.NewCommandHandler(
		repository,
		outbox,
		lockasset.WithClock(testutil.NewFixedClock(now)),
	)

	// act
	result, err := handler.Handle(context.Background(), lockasset.BuildCommand("A1", "O1", 2*time.Hour))

	// assert
	assert.NoError(t, err)
	assert.False(t, result.Rejected)
	assert.Equal(t, core.AssetLockedEventType, outbox.LastEventType())

	asset, _, loadErr := repository.Load(context.Background(), "A1")
	assert.NoError(t, loadErr)
	lock, hasLock := asset.CurrentLock()
	assert.True(t, hasLock)
	ownerLock, ok := lock.(core.OwnerLock)
	assert.True(t, ok)
	assert.Equal(t, "O1", ownerLock.Owner)
	assert.Equal(t, core.ToOccurredAt(now.Add(2*time.Hour)), ownerLock.ValidUntil)
}

func Test_Handle_Rejected_WhenAssetAlreadyLocked(t *testing.T) {
	// arrange
	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	lock := core.BuildOwnerLock("O1", time.Now().Add(time.Hour))
	repository.Seed(core.AssetAvailabilityOf("A1").With(lock), 2)

	handler := lockasset.NewCommandHandler(repository, outbox)

	// act - a second owner tries to grab the held asset
	result, err := handler.Handle(context.Background(), lockasset.BuildCommand("A1", "O2", time.Hour))

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Rejected)
	assert.Equal(t, core.ReasonAssetCurrentlyLocked, result.RejectionReason)
	assert.Equal(t, core.AssetLockRejectedEventType, outbox.LastEventType())

	// the holder is unchanged
	asset, _, _ := repository.Load(context.Background(), "A1")
	currentLock, _ := asset.CurrentLock()
	assert.Equal(t, "O1", currentLock.LockOwnerID())
}

func Test_Handle_Rejected_WhenAssetUnderMaintenance(t *testing.T) {
	// arrange
	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	repository.Seed(core.AssetAvailabilityOf("A1"), 1)

	handler := lockasset.NewCommandHandler(repository, outbox)

	// act
	result, err := handler.Handle(context.Background(), lockasset.BuildCommand("A1", "O1", time.Hour))

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Rejected)
	assert.Equal(t, core.ReasonAssetCurrentlyLocked, result.RejectionReason)
}

func Test_Handle_RetriesOnConcurrencyConflict(t *testing.T) {
	// arrange
	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	repository.Seed(core.AssetAvailabilityOf("A1").With(nil), 1)
	repository.FailNextSaveWith(shell.ErrConcurrencyConflict)

	handler := lockasset.NewCommandHandler(
		repository,
		outbox,
		lockasset.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)),
	)

	// act
	result, err := handler.Handle(context.Background(), lockasset.BuildCommand("A1", "O1", time.Hour))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 2, result.RetryAttempts)
	assert.Equal(t, core.AssetLockedEventType, outbox.LastEventType())
}
