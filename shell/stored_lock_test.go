package shell_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/shell"
)

func Test_StoredLock_RoundTrip(t *testing.T) {
	until := time.Now().Add(4 * time.Hour)

	testCases := []struct {
		name string
		lock core.Lock
	}{
		{name: "maintenance lock", lock: core.MaintenanceLock{}},
		{name: "withdrawal lock", lock: core.WithdrawalLock{}},
		{name: "owner lock", lock: core.BuildOwnerLock("O1", until)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			stored := shell.StoredLockFrom(tc.lock)
			rebuilt, err := shell.LockFromStored(stored)

			// assert
			assert.NoError(t, err)
			assert.Equal(t, tc.lock, rebuilt)
		})
	}
}

func Test_StoredLockFrom_FlattensOwnerLock(t *testing.T) {
	// arrange
	until := time.Now().Add(time.Hour)

	// act
	stored := shell.StoredLockFrom(core.BuildOwnerLock("O1", until))

	// assert
	assert.Equal(t, shell.LockKindOwner, stored.Kind)
	assert.Equal(t, "O1", stored.Owner)
	assert.Equal(t, core.ToOccurredAt(until), stored.ValidUntil)
}

func Test_LockFromStored_FailsForUnknownKind(t *testing.T) {
	// act
	lock, err := shell.LockFromStored(shell.StoredLock{Kind: "GARBAGE"})

	// assert
	assert.Nil(t, lock)
	assert.ErrorIs(t, err, shell.ErrUnknownLockKind)
}
