package core

import (
	"time"
)

// AssetUnlockingRejectedEventType is the event type identifier.
const AssetUnlockingRejectedEventType = "AssetUnlockingRejected"

// AssetUnlockingRejected represents a refused unlock attempt.
type AssetUnlockingRejected struct {
	AssetID    AssetIDString
	OwnerID    OwnerIDString
	Reason     string
	OccurredAt OccurredAtTS
}

// BuildAssetUnlockingRejected creates a new AssetUnlockingRejected event.
func BuildAssetUnlockingRejected(assetID AssetIDString, ownerID OwnerIDString, reason string, occurredAt time.Time) AssetUnlockingRejected {
	return AssetUnlockingRejected{
		AssetID:    assetID,
		OwnerID:    ownerID,
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e AssetUnlockingRejected) EventType() string {
	return AssetUnlockingRejectedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AssetUnlockingRejected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsFailureEvent returns true since this event represents a rejected transition.
func (e AssetUnlockingRejected) IsFailureEvent() bool {
	return true
}

// RejectionReason returns the stable reason code for this rejection.
func (e AssetUnlockingRejected) RejectionReason() string {
	return e.Reason
}
