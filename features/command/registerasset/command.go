package registerasset

import (
	"github.com/availsys/asset-availability-go/core"
)

const (
	commandType = "RegisterAsset"
)

// Command represents the intent to bring a new asset under availability tracking.
type Command struct {
	AssetID core.AssetIDString
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(assetID core.AssetIDString) Command {
	return Command{
		AssetID: assetID,
	}
}
