package world

import (
	"sync"

	"github.com/df-mc/safespot/server/block/cube"
)

// Settings holds the settings of a World. These are typically saved to a
// level.dat file. It is safe to pass the same Settings to multiple worlds
// created using New, in which case the Settings are synchronised between the
// worlds.
type Settings struct {
	sync.Mutex

	// Name is the display name of the World.
	Name string
	// Spawn is the spawn position of the World. New players that join the
	// world will be spawned here.
	Spawn cube.Pos
	// Border is the horizontal boundary of the World.
	Border Border
}
