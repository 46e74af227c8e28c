package overdueassets

import (
	"time"

	"github.com/availsys/asset-availability-go/core"
)

const (
	queryType = "OverdueAssets"
)

// Query requests the ids of all assets whose owner lock expired before the cutoff.
type Query struct {
	Cutoff time.Time
}

// QueryType returns the type identifier for this query.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(cutoff time.Time) Query {
	return Query{
		Cutoff: cutoff,
	}
}

// Result lists the overdue asset ids, in no particular order.
type Result struct {
	AssetIDs []core.AssetIDString
}
