package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/availsys/asset-availability-go/core"
)

func Test_Lock_OwnerResolution(t *testing.T) {
	until := time.Now().Add(time.Hour)

	testCases := []struct {
		name          string
		lock          core.Lock
		expectedOwner core.OwnerIDString
	}{
		{name: "maintenance lock", lock: core.MaintenanceLock{}, expectedOwner: core.MaintenanceOwnerID},
		{name: "withdrawal lock", lock: core.WithdrawalLock{}, expectedOwner: core.WithdrawalOwnerID},
		{name: "owner lock", lock: core.BuildOwnerLock("O1", until), expectedOwner: "O1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedOwner, tc.lock.LockOwnerID())
		})
	}
}

func Test_LockMadeFor(t *testing.T) {
	until := time.Now().Add(time.Hour)

	assert.True(t, core.LockMadeFor(core.BuildOwnerLock("O1", until), "O1"))
	assert.False(t, core.LockMadeFor(core.BuildOwnerLock("O1", until), "O2"))
	assert.True(t, core.LockMadeFor(core.MaintenanceLock{}, core.MaintenanceOwnerID))
	assert.False(t, core.LockMadeFor(nil, "O1"))
}

func Test_BuildOwnerLock_NormalizesValidUntil(t *testing.T) {
	// arrange
	until := time.Date(2026, 8, 30, 12, 0, 0, 999, time.FixedZone("CEST", 2*60*60))

	// act
	lock := core.BuildOwnerLock("O1", until)

	// assert
	assert.Equal(t, time.UTC, lock.ValidUntil.Location())
	assert.Equal(t, core.ToOccurredAt(until), lock.ValidUntil)
}
