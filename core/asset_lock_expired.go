package core

import (
	"time"
)

// AssetLockExpiredEventType is the event type identifier.
const AssetLockExpiredEventType = "AssetLockExpired"

// AssetLockExpired represents the forced release of an overdue lock.
type AssetLockExpired struct {
	AssetID    AssetIDString
	OccurredAt OccurredAtTS
}

// BuildAssetLockExpired creates a new AssetLockExpired event.
func BuildAssetLockExpired(assetID AssetIDString, occurredAt time.Time) AssetLockExpired {
	return AssetLockExpired{
		AssetID:    assetID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e AssetLockExpired) EventType() string {
	return AssetLockExpiredEventType
}

// HasOccurredAt returns when this event occurred.
func (e AssetLockExpired) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsFailureEvent returns false since this event represents a successful operation.
func (e AssetLockExpired) IsFailureEvent() bool {
	return false
}
