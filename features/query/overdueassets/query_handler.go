package overdueassets

import (
	"context"

	"github.com/availsys/asset-availability-go/shell"
)

// QueryHandler lists the assets whose owner lock has expired. The sweep
// command uses this to decide which locks to force-release.
type QueryHandler struct {
	repository shell.AssetRepository
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(repository shell.AssetRepository) QueryHandler {
	return QueryHandler{
		repository: repository,
	}
}

// Handle returns the ids of assets with an owner lock that expired before
// the cutoff. Maintenance and withdrawal locks never expire and are not
// reported.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Result, error) {
	assetIDs, err := h.repository.FindLockedBefore(ctx, query.Cutoff)
	if err != nil {
		return Result{}, err
	}

	return Result{AssetIDs: assetIDs}, nil
}
