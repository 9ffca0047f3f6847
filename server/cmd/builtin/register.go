// Package builtin holds the commands that every server registers: safe
// location searches, teleports and warp management.
package builtin

import (
	"github.com/df-mc/safespot/server/cmd"
)

// Register registers the built-in command set on the provided server.
func Register(srv serverAdapter) {
	cmd.Register(newHelpCommand())
	cmd.Register(newFindCommand(srv))
	cmd.Register(newSetBlockCommand(srv))
	cmd.Register(newSpawnCommand(srv))
	cmd.Register(newRandomTeleportCommand(srv))
	cmd.Register(newBackCommand(srv))
	cmd.Register(newWarpCommand(srv))
	cmd.Register(newSetWarpCommand(srv))
	cmd.Register(newDeleteWarpCommand(srv))
	cmd.Register(newWarpsCommand(srv))
	cmd.Register(newWarpCostCommand(srv))
	cmd.Register(newStatsCommand(srv))
	cmd.Register(newStopCommand(srv))
}
