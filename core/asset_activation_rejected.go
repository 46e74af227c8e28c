package core

import (
	"time"
)

// AssetActivationRejectedEventType is the event type identifier.
const AssetActivationRejectedEventType = "AssetActivationRejected"

// AssetActivationRejected represents a refused activation attempt.
type AssetActivationRejected struct {
	AssetID    AssetIDString
	Reason     string
	OccurredAt OccurredAtTS
}

// BuildAssetActivationRejected creates a new AssetActivationRejected event.
func BuildAssetActivationRejected(assetID AssetIDString, reason string, occurredAt time.Time) AssetActivationRejected {
	return AssetActivationRejected{
		AssetID:    assetID,
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e AssetActivationRejected) EventType() string {
	return AssetActivationRejectedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AssetActivationRejected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsFailureEvent returns true since this event represents a rejected transition.
func (e AssetActivationRejected) IsFailureEvent() bool {
	return true
}

// RejectionReason returns the stable reason code for this rejection.
func (e AssetActivationRejected) RejectionReason() string {
	return e.Reason
}
