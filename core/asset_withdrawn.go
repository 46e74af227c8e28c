package core

import (
	"time"
)

// AssetWithdrawnEventType is the event type identifier.
const AssetWithdrawnEventType = "AssetWithdrawn"

// AssetWithdrawn represents when an asset is permanently removed from service.
type AssetWithdrawn struct {
	AssetID    AssetIDString
	OccurredAt OccurredAtTS
}

// BuildAssetWithdrawn creates a new AssetWithdrawn event.
func BuildAssetWithdrawn(assetID AssetIDString, occurredAt time.Time) AssetWithdrawn {
	return AssetWithdrawn{
		AssetID:    assetID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e AssetWithdrawn) EventType() string {
	return AssetWithdrawnEventType
}

// HasOccurredAt returns when this event occurred.
func (e AssetWithdrawn) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsFailureEvent returns false since this event represents a successful operation.
func (e AssetWithdrawn) IsFailureEvent() bool {
	return false
}
