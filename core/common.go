package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// AssetIDString represents an asset identifier
type AssetIDString = string

// OwnerIDString represents a lock holder identifier
type OwnerIDString = string

// OccurredAtTS represents when an event occurred
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
