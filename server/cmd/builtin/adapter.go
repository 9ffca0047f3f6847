package builtin

import (
	"github.com/df-mc/safespot/server/teleport"
	"github.com/df-mc/safespot/server/warp"
	"github.com/df-mc/safespot/server/world"
	"github.com/df-mc/safespot/server/world/safe"
)

type serverAdapter interface {
	World() *world.World
	WorldByName(name string) (*world.World, bool)
	Locator() *safe.Locator
	Teleporter() *teleport.Service
	Warps() *warp.Store
	WarpConfig() warp.Config
	Metrics() *safe.Metrics
	Close() error
}
