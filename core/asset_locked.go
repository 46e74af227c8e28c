package core

import (
	"time"
)

// AssetLockedEventType is the event type identifier.
const AssetLockedEventType = "AssetLocked"

// AssetLocked represents when an exclusive hold is placed or extended for an owner.
type AssetLocked struct {
	AssetID    AssetIDString
	OwnerID    OwnerIDString
	ValidUntil OccurredAtTS
	OccurredAt OccurredAtTS
}

// BuildAssetLocked creates a new AssetLocked event.
func BuildAssetLocked(assetID AssetIDString, ownerID OwnerIDString, validUntil time.Time, occurredAt time.Time) AssetLocked {
	return AssetLocked{
		AssetID:    assetID,
		OwnerID:    ownerID,
		ValidUntil: ToOccurredAt(validUntil),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e AssetLocked) EventType() string {
	return AssetLockedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AssetLocked) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsFailureEvent returns false since this event represents a successful operation.
func (e AssetLocked) IsFailureEvent() bool {
	return false
}
