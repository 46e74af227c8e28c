package releaseoverduelock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/features/command/releaseoverduelock"
	"github.com/availsys/asset-availability-go/testutil"
)

func Test_Handle_ReleasesOverdueOwnerLock(t *testing.T) {
	// arrange
	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	now := time.Now()
	lock := core.BuildOwnerLock("O1", now.Add(-time.Minute))
	repository.Seed(core.AssetAvailabilityOf("A1").With(lock), 2)

	handler := releaseoverduelock.NewCommandHandler(
		repository,
		outbox,
		releaseoverduelock.WithClock(testutil.NewFixedClock(now)),
	)

	// act
	result, err := handler.Handle(context.Background(), releaseoverduelock.BuildCommand("A1"))

	// assert
	assert.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, core.AssetLockExpiredEventType, outbox.LastEventType())

	asset, _, loadErr := repository.Load(context.Background(), "A1")
	assert.NoError(t, loadErr)
	_, hasLock := asset.CurrentLock()
	assert.False(t, hasLock)
}

func Test_Handle_NoOp_WhenLockNotYetOverdue(t *testing.T) {
	// arrange
	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	now := time.Now()
	lock := core.BuildOwnerLock("O1", now.Add(time.Hour))
	repository.Seed(core.AssetAvailabilityOf("A1").With(lock), 2)

	handler := releaseoverduelock.NewCommandHandler(
		repository,
		outbox,
		releaseoverduelock.WithClock(testutil.NewFixedClock(now)),
	)

	// act
	result, err := handler.Handle(context.Background(), releaseoverduelock.BuildCommand("A1"))

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Empty(t, outbox.Events())

	// the lock survives
	asset, _, _ := repository.Load(context.Background(), "A1")
	currentLock, hasLock := asset.CurrentLock()
	assert.True(t, hasLock)
	assert.Equal(t, "O1", currentLock.LockOwnerID())
}

func Test_Handle_NoOp_ForSentinelLocks(t *testing.T) {
	testCases := []struct {
		name string
		lock core.Lock
	}{
		{name: "maintenance lock", lock: core.MaintenanceLock{}},
		{name: "withdrawal lock", lock: core.WithdrawalLock{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange - sentinel locks carry no expiry, the sweeper must not touch them
			repository := testutil.NewInMemoryAssetRepository()
			outbox := testutil.NewCapturingEventOutbox()
			repository.Seed(core.AssetAvailabilityOf("A1").With(tc.lock), 1)

			handler := releaseoverduelock.NewCommandHandler(repository, outbox)

			// act
			result, err := handler.Handle(context.Background(), releaseoverduelock.BuildCommand("A1"))

			// assert
			assert.NoError(t, err)
			assert.True(t, result.Idempotent)
			assert.Empty(t, outbox.Events())
		})
	}
}

func Test_Handle_NoOp_WhenAlreadyUnlocked(t *testing.T) {
	// arrange
	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	repository.Seed(core.AssetAvailabilityOf("A1").With(nil), 1)

	handler := releaseoverduelock.NewCommandHandler(repository, outbox)

	// act - idempotent-to-empty: releasing an unlocked asset returns nothing
	result, err := handler.Handle(context.Background(), releaseoverduelock.BuildCommand("A1"))

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Empty(t, outbox.Events())
}
