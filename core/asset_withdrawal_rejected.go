package core

import (
	"time"
)

// AssetWithdrawalRejectedEventType is the event type identifier.
const AssetWithdrawalRejectedEventType = "AssetWithdrawalRejected"

// AssetWithdrawalRejected represents a refused withdrawal attempt.
type AssetWithdrawalRejected struct {
	AssetID    AssetIDString
	Reason     string
	OccurredAt OccurredAtTS
}

// BuildAssetWithdrawalRejected creates a new AssetWithdrawalRejected event.
func BuildAssetWithdrawalRejected(assetID AssetIDString, reason string, occurredAt time.Time) AssetWithdrawalRejected {
	return AssetWithdrawalRejected{
		AssetID:    assetID,
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e AssetWithdrawalRejected) EventType() string {
	return AssetWithdrawalRejectedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AssetWithdrawalRejected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsFailureEvent returns true since this event represents a rejected transition.
func (e AssetWithdrawalRejected) IsFailureEvent() bool {
	return true
}

// RejectionReason returns the stable reason code for this rejection.
func (e AssetWithdrawalRejected) RejectionReason() string {
	return e.Reason
}
