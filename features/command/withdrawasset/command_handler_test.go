package withdrawasset_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/features/command/withdrawasset"
	"github.com/availsys/asset-availability-go/shell"
	"github.com/availsys/asset-availability-go/testutil"
)

func Test_Handle_Success_WhenAssetAvailable(t *testing.T) {
	// arrange
	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	repository.Seed(core.AssetAvailabilityOf("A1").With(nil), 1)

	handler := withdrawasset.NewCommandHandler(repository, outbox)

	// act
	result, err := handler.Handle(context.Background(), withdrawasset.BuildCommand("A1"))

	// assert
	assert.NoError(t, err)
	assert.False(t, result.Rejected)
	assert.Equal(t, core.AssetWithdrawnEventType, outbox.LastEventType())

	asset, _, loadErr := repository.Load(context.Background(), "A1")
	assert.NoError(t, loadErr)
	lock, _ := asset.CurrentLock()
	assert.Equal(t, core.WithdrawalLock{}, lock)
}

func Test_Handle_Success_WhenAssetUnderMaintenance(t *testing.T) {
	// arrange
	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	repository.Seed(core.AssetAvailabilityOf("A1"), 1)

	handler := withdrawasset.NewCommandHandler(repository, outbox)

	// act
	result, err := handler.Handle(context.Background(), withdrawasset.BuildCommand("A1"))

	// assert
	assert.NoError(t, err)
	assert.False(t, result.Rejected)
	assert.Equal(t, core.AssetWithdrawnEventType, outbox.LastEventType())
}

func Test_Handle_Rejected_WhenAssetOwnerLocked(t *testing.T) {
	// arrange
	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	lock := core.BuildOwnerLock("O1", time.Now().Add(time.Hour))
	repository.Seed(core.AssetAvailabilityOf("A1").With(lock), 3)

	handler := withdrawasset.NewCommandHandler(repository, outbox)

	// act
	result, err := handler.Handle(context.Background(), withdrawasset.BuildCommand("A1"))

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Rejected)
	assert.Equal(t, core.ReasonAssetCurrentlyLocked, result.RejectionReason)
	assert.Equal(t, core.AssetWithdrawalRejectedEventType, outbox.LastEventType())
	assert.Equal(t, shell.Version(3), repository.Version("A1"))
}
