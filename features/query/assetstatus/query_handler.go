package assetstatus

import (
	"context"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/shell"
)

// QueryHandler projects the persisted availability state of one asset into
// a Status. Read-only; no retry is needed.
type QueryHandler struct {
	repository shell.AssetRepository
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(repository shell.AssetRepository) QueryHandler {
	return QueryHandler{
		repository: repository,
	}
}

// Handle loads the asset and maps its current lock to a status value.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Status, error) {
	asset, version, err := h.repository.Load(ctx, query.AssetID)
	if err != nil {
		return Status{}, err
	}

	status := Status{
		AssetID: asset.ID(),
		Version: version,
	}

	lock, hasLock := asset.CurrentLock()
	if !hasLock {
		status.Status = StatusAvailable
		return status, nil
	}

	switch l := lock.(type) {
	case core.MaintenanceLock:
		status.Status = StatusMaintenance

	case core.WithdrawalLock:
		status.Status = StatusWithdrawn

	case core.OwnerLock:
		status.Status = StatusLocked
		status.Owner = l.Owner
		status.ValidUntil = l.ValidUntil
	}

	return status, nil
}
