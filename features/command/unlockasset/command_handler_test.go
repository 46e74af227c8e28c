package unlockasset_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/features/command/unlockasset"
	"github.com/availsys/asset-availability-go/shell"
	"github.com/availsys/asset-availability-go/testutil"
)

func Test_Handle_Success_WhenOwnerHoldsLock(t *testing.T) {
	// arrange
	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	now := time.Now()
	lock := core.BuildOwnerLock("O1", now.Add(2*time.Hour))
	repository.Seed(core.AssetAvailabilityOf("A1").With(lock), 2)

	handler := unlockasset.NewCommandHandler(repository, outbox)

	// act
	result, err := handler.Handle(context.Background(), unlockasset.BuildCommand("A1", "O1", now))

	// assert
	assert.NoError(t, err)
	assert.False(t, result.Rejected)
	assert.Equal(t, core.AssetUnlockedEventType, outbox.LastEventType())

	asset, _, loadErr := repository.Load(context.Background(), "A1")
	assert.NoError(t, loadErr)
	_, hasLock := asset.CurrentLock()
	assert.False(t, hasLock)
}

func Test_Handle_Rejected_WithoutLockForOwner(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name string
		lock core.Lock
	}{
		{name: "unlocked", lock: nil},
		{name: "held by another owner", lock: core.BuildOwnerLock("O2", now.Add(time.Hour))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			repository := testutil.NewInMemoryAssetRepository()
			outbox := testutil.NewCapturingEventOutbox()
			repository.Seed(core.AssetAvailabilityOf("A1").With(tc.lock), 1)

			handler := unlockasset.NewCommandHandler(repository, outbox)

			// act
			result, err := handler.Handle(context.Background(), unlockasset.BuildCommand("A1", "O1", now))

			// assert
			assert.NoError(t, err)
			assert.True(t, result.Rejected)
			assert.Equal(t, core.ReasonNoLockOnTheAsset, result.RejectionReason)
			assert.Equal(t, core.AssetUnlockingRejectedEventType, outbox.LastEventType())
		})
	}
}

func Test_Handle_CarriesCallerProvidedReleaseTime(t *testing.T) {
	// arrange
	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	releaseAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	lock := core.BuildOwnerLock("O1", releaseAt.Add(time.Hour))
	repository.Seed(core.AssetAvailabilityOf("A1").With(lock), 1)

	handler := unlockasset.NewCommandHandler(repository, outbox)

	// act
	_, err := handler.Handle(context.Background(), unlockasset.BuildCommand("A1", "O1", releaseAt))

	// assert
	assert.NoError(t, err)
	events := outbox.Events()
	assert.Len(t, events, 1)

	rebuilt, mapErr := shell.DomainEventFrom(events[0])
	assert.NoError(t, mapErr)
	unlocked, ok := rebuilt.(core.AssetUnlocked)
	assert.True(t, ok)
	assert.Equal(t, releaseAt, unlocked.UnlockedAt)
}
