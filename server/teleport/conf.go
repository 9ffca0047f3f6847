package teleport

import (
	"log/slog"
	"time"

	"github.com/df-mc/safespot/server/warp"
	"github.com/df-mc/safespot/server/world"
	"github.com/df-mc/safespot/server/world/safe"
	"github.com/google/uuid"
)

// Config holds the options of a Service.
type Config struct {
	// Log is the Logger that teleports are logged to. If nil, Log is set to
	// slog.Default().
	Log *slog.Logger
	// Locator is used to find safe locations. If nil, a Locator with the
	// default search radii is used.
	Locator *safe.Locator
	// Worlds returns the world with a name. It is used to look up the world
	// of a warp. If nil, no world can be found by name.
	Worlds func(name string) (*world.World, bool)
	// Warps holds the warps that entities may be teleported to. If nil,
	// Service.Warp always fails with warp.ErrUnavailable.
	Warps *warp.Store
	// SafeByDefault specifies if teleports to the spawn of a world search for
	// a safe location around it.
	SafeByDefault bool
	// SafeWarps specifies if teleports to warps search for a safe location
	// around the warp.
	SafeWarps bool
	// Random holds the options of random teleports.
	Random safe.RandomConfig
	// Seed returns the seed of the random generator of a random teleport.
	// The generator is further keyed by the UUID of the entity teleported.
	// If nil, the current time is used.
	Seed func() uint64
}

// New creates a Service using the Config conf.
func (conf Config) New() *Service {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Locator == nil {
		conf.Locator = safe.Config{Log: conf.Log}.New()
	}
	if conf.Worlds == nil {
		conf.Worlds = func(string) (*world.World, bool) { return nil, false }
	}
	if conf.Seed == nil {
		conf.Seed = func() uint64 { return uint64(time.Now().UnixNano()) }
	}
	return &Service{conf: conf, back: make(map[uuid.UUID]Location)}
}
