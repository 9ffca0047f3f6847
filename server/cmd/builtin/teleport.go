package builtin

import (
	"errors"

	"github.com/df-mc/safespot/server/cmd"
	"github.com/df-mc/safespot/server/teleport"
	"github.com/df-mc/safespot/server/world"
)

type spawnCommand struct {
	srv serverAdapter
}

func newSpawnCommand(srv serverAdapter) cmd.Command {
	return cmd.New("spawn", "Teleports you to the spawn of a world.", "[world]", nil, spawnCommand{srv: srv})
}

func (s spawnCommand) Run(src cmd.Source, args []string, o *cmd.Output) {
	e, ok := entityFrom(src, o)
	if !ok {
		return
	}
	w, ok := worldArg(s.srv, args, o)
	if !ok {
		return
	}
	to, err := s.srv.Teleporter().Spawn(e, w)
	if err != nil {
		o.Error(teleportError(err))
		return
	}
	o.Printf("Teleported to the spawn of %v at %v.", to.World.Name(), formatVec3(to.Position))
}

type randomTeleportCommand struct {
	srv serverAdapter
}

func newRandomTeleportCommand(srv serverAdapter) cmd.Command {
	return cmd.New("rtp", "Teleports you to a random safe location.", "[world]", []string{"randomteleport", "wild"}, randomTeleportCommand{srv: srv})
}

func (r randomTeleportCommand) Run(src cmd.Source, args []string, o *cmd.Output) {
	e, ok := entityFrom(src, o)
	if !ok {
		return
	}
	w, ok := worldArg(r.srv, args, o)
	if !ok {
		return
	}
	to, err := r.srv.Teleporter().Random(e, w)
	if err != nil {
		o.Error(teleportError(err))
		return
	}
	o.Printf("Teleported to %v in %v.", formatVec3(to.Position), to.World.Name())
}

type backCommand struct {
	srv serverAdapter
}

func newBackCommand(srv serverAdapter) cmd.Command {
	return cmd.New("back", "Returns you to the location you last teleported from.", "", nil, backCommand{srv: srv})
}

func (b backCommand) Run(src cmd.Source, _ []string, o *cmd.Output) {
	e, ok := entityFrom(src, o)
	if !ok {
		return
	}
	to, err := b.srv.Teleporter().Back(e)
	if err != nil {
		o.Error(teleportError(err))
		return
	}
	o.Printf("Returned to %v in %v.", formatVec3(to.Position), to.World.Name())
}

// worldArg returns the world named by the first argument, or nil if there are
// no arguments.
func worldArg(srv serverAdapter, args []string, o *cmd.Output) (*world.World, bool) {
	if len(args) == 0 {
		return nil, true
	}
	w, ok := srv.WorldByName(args[0])
	if !ok {
		o.Errorf("Unknown world %q.", args[0])
	}
	return w, ok
}

// teleportError returns a user facing message for an error returned by a
// teleport.
func teleportError(err error) string {
	switch {
	case errors.Is(err, teleport.ErrNoSafeLocation):
		return "No safe location could be found. Try again later."
	case errors.Is(err, teleport.ErrNoBackLocation):
		return "You have no location to return to."
	case errors.Is(err, teleport.ErrUnknownWorld):
		return "The destination world does not exist."
	}
	return err.Error()
}
