package lockasset

import (
	"time"

	"github.com/availsys/asset-availability-go/core"
)

const (
	commandType = "LockAsset"
)

// Command represents the intent to place a time-bounded exclusive hold on
// an available asset.
type Command struct {
	AssetID  core.AssetIDString
	OwnerID  core.OwnerIDString
	Duration time.Duration
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(assetID core.AssetIDString, ownerID core.OwnerIDString, duration time.Duration) Command {
	return Command{
		AssetID:  assetID,
		OwnerID:  ownerID,
		Duration: duration,
	}
}
