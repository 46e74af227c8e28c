package core

import (
	"time"
)

// AssetLockRejectedEventType is the event type identifier.
const AssetLockRejectedEventType = "AssetLockRejected"

// AssetLockRejected represents a refused lock or lock-extension attempt.
type AssetLockRejected struct {
	AssetID    AssetIDString
	OwnerID    OwnerIDString
	Reason     string
	OccurredAt OccurredAtTS
}

// BuildAssetLockRejected creates a new AssetLockRejected event.
func BuildAssetLockRejected(assetID AssetIDString, ownerID OwnerIDString, reason string, occurredAt time.Time) AssetLockRejected {
	return AssetLockRejected{
		AssetID:    assetID,
		OwnerID:    ownerID,
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e AssetLockRejected) EventType() string {
	return AssetLockRejectedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AssetLockRejected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsFailureEvent returns true since this event represents a rejected transition.
func (e AssetLockRejected) IsFailureEvent() bool {
	return true
}

// RejectionReason returns the stable reason code for this rejection.
func (e AssetLockRejected) RejectionReason() string {
	return e.Reason
}
