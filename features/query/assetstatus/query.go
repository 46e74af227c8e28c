package assetstatus

import (
	"time"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/shell"
)

const (
	queryType = "AssetStatus"
)

// Availability status values as exposed to callers.
const (
	StatusAvailable   = "AVAILABLE"
	StatusMaintenance = "MAINTENANCE"
	StatusWithdrawn   = "WITHDRAWN"
	StatusLocked      = "LOCKED"
)

// Query requests the current availability status of one asset.
type Query struct {
	AssetID core.AssetIDString
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(assetID core.AssetIDString) Query {
	return Query{
		AssetID: assetID,
	}
}

// Status is the projection of one asset's availability.
// Owner and ValidUntil are only set for StatusLocked.
type Status struct {
	AssetID    core.AssetIDString
	Status     string
	Owner      core.OwnerIDString
	ValidUntil time.Time
	Version    shell.Version
}
