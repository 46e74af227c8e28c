package extendassetlock

import (
	"github.com/availsys/asset-availability-go/core"
)

const (
	commandType = "ExtendAssetLock"
)

// Command represents the intent to extend an existing hold indefinitely
// (one year from now). It never originates a lock.
type Command struct {
	AssetID core.AssetIDString
	OwnerID core.OwnerIDString
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(assetID core.AssetIDString, ownerID core.OwnerIDString) Command {
	return Command{
		AssetID: assetID,
		OwnerID: ownerID,
	}
}
