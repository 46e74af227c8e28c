package core

import (
	"time"
)

// AssetUnlockedEventType is the event type identifier.
const AssetUnlockedEventType = "AssetUnlocked"

// AssetUnlocked represents when an owner releases their hold on an asset.
type AssetUnlocked struct {
	AssetID    AssetIDString
	OwnerID    OwnerIDString
	UnlockedAt OccurredAtTS
	OccurredAt OccurredAtTS
}

// BuildAssetUnlocked creates a new AssetUnlocked event.
func BuildAssetUnlocked(assetID AssetIDString, ownerID OwnerIDString, at time.Time) AssetUnlocked {
	return AssetUnlocked{
		AssetID:    assetID,
		OwnerID:    ownerID,
		UnlockedAt: ToOccurredAt(at),
		OccurredAt: ToOccurredAt(at),
	}
}

// EventType returns the event type identifier.
func (e AssetUnlocked) EventType() string {
	return AssetUnlockedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AssetUnlocked) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsFailureEvent returns false since this event represents a successful operation.
func (e AssetUnlocked) IsFailureEvent() bool {
	return false
}
