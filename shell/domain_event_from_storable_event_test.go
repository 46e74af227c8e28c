package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/shell"
)

func Test_DomainEventFrom_RebuildsLockedEvent(t *testing.T) {
	// arrange
	now := time.Now()
	event := core.BuildAssetLocked("A1", "O1", now.Add(2*time.Hour), now)
	uid := uuid.New()
	storable, err := shell.StorableEventFrom(event, shell.BuildEventMetadata(uid, uid, uid))
	assert.NoError(t, err)

	// act
	rebuilt, err := shell.DomainEventFrom(storable)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, event, rebuilt)
}

func Test_DomainEventFrom_RebuildsRejectionEvent(t *testing.T) {
	// arrange
	now := time.Now()
	event := core.BuildAssetLockRejected("A1", "O2", core.ReasonAssetCurrentlyLocked, now)
	storable, err := shell.StorableEventWithEmptyMetadataFrom(event)
	assert.NoError(t, err)

	// act
	rebuilt, err := shell.DomainEventFrom(storable)

	// assert
	assert.NoError(t, err)
	assert.True(t, rebuilt.IsFailureEvent())
	rejection, ok := rebuilt.(core.AssetLockRejected)
	assert.True(t, ok)
	assert.Equal(t, core.ReasonAssetCurrentlyLocked, rejection.Reason)
}

func Test_DomainEventsFrom_RebuildsFullHistory(t *testing.T) {
	// arrange
	now := time.Now()
	events := core.DomainEvents{
		core.BuildAssetRegistered("A1", now.Add(-3*time.Hour)),
		core.BuildAssetActivated("A1", now.Add(-2*time.Hour)),
		core.BuildAssetLocked("A1", "O1", now.Add(time.Hour), now.Add(-time.Hour)),
		core.BuildAssetUnlocked("A1", "O1", now),
	}

	storables := make(shell.StorableEvents, 0, len(events))
	for _, event := range events {
		storable, err := shell.StorableEventWithEmptyMetadataFrom(event)
		assert.NoError(t, err)
		storables = append(storables, storable)
	}

	// act
	rebuilt, err := shell.DomainEventsFrom(storables)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, events, rebuilt)
}

func Test_DomainEventFrom_FailsForUnknownEventType(t *testing.T) {
	// arrange
	storable, err := shell.BuildStorableEventWithEmptyMetadata("SomethingElse", time.Now(), []byte(`{}`))
	assert.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storable)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_EventMetadataFrom_RoundTrip(t *testing.T) {
	// arrange
	messageID := uuid.New()
	causationID := uuid.New()
	correlationID := uuid.New()
	metadata := shell.BuildEventMetadata(messageID, causationID, correlationID)

	event := core.BuildAssetActivated("A1", time.Now())
	storable, err := shell.StorableEventFrom(event, metadata)
	assert.NoError(t, err)

	// act
	rebuilt, err := shell.EventMetadataFrom(storable)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, metadata, rebuilt)
}
