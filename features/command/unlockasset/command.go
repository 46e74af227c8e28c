package unlockasset

import (
	"time"

	"github.com/availsys/asset-availability-go/core"
)

const (
	commandType = "UnlockAsset"
)

// Command represents the intent of an owner to release their hold on an
// asset at a given time.
type Command struct {
	AssetID core.AssetIDString
	OwnerID core.OwnerIDString
	At      core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(assetID core.AssetIDString, ownerID core.OwnerIDString, at time.Time) Command {
	return Command{
		AssetID: assetID,
		OwnerID: ownerID,
		At:      core.ToOccurredAt(at),
	}
}
