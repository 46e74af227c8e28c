package core

import (
	"time"
)

// AssetActivatedEventType is the event type identifier.
const AssetActivatedEventType = "AssetActivated"

// AssetActivated represents when an asset leaves maintenance and becomes available.
type AssetActivated struct {
	AssetID    AssetIDString
	OccurredAt OccurredAtTS
}

// BuildAssetActivated creates a new AssetActivated event.
func BuildAssetActivated(assetID AssetIDString, occurredAt time.Time) AssetActivated {
	return AssetActivated{
		AssetID:    assetID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e AssetActivated) EventType() string {
	return AssetActivatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AssetActivated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsFailureEvent returns false since this event represents a successful operation.
func (e AssetActivated) IsFailureEvent() bool {
	return false
}
