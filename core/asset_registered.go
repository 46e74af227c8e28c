package core

import (
	"time"
)

// AssetRegisteredEventType is the event type identifier.
const AssetRegisteredEventType = "AssetRegistered"

// AssetRegistered represents when a new asset is brought under availability
// tracking. Registered assets start under maintenance.
type AssetRegistered struct {
	AssetID    AssetIDString
	OccurredAt OccurredAtTS
}

// BuildAssetRegistered creates a new AssetRegistered event.
func BuildAssetRegistered(assetID AssetIDString, occurredAt time.Time) AssetRegistered {
	return AssetRegistered{
		AssetID:    assetID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e AssetRegistered) EventType() string {
	return AssetRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e AssetRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsFailureEvent returns false since this event represents a successful operation.
func (e AssetRegistered) IsFailureEvent() bool {
	return false
}
