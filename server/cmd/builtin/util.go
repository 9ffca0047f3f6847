package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/df-mc/safespot/server/block/cube"
	"github.com/df-mc/safespot/server/cmd"
	"github.com/df-mc/safespot/server/teleport"
	"github.com/df-mc/safespot/server/world"
	"github.com/go-gl/mathgl/mgl64"
)

// entityFrom returns the teleport.Entity executing a command. If src is not
// an entity, an error is added to o and false is returned.
func entityFrom(src cmd.Source, o *cmd.Output) (teleport.Entity, bool) {
	e, ok := src.(teleport.Entity)
	if !ok {
		o.Error("This command can only be run by an entity.")
	}
	return e, ok
}

// worldOf returns the world of src if it is an entity, or the default world
// otherwise.
func worldOf(srv serverAdapter, src cmd.Source) *world.World {
	if e, ok := src.(teleport.Entity); ok {
		if w := e.Location().World; w != nil {
			return w
		}
	}
	return srv.World()
}

// parseVec3 parses three coordinates from args. Coordinates starting with ~
// are relative to the position of src, if it is an entity.
func parseVec3(src cmd.Source, args []string) (mgl64.Vec3, error) {
	if len(args) < 3 {
		return mgl64.Vec3{}, fmt.Errorf("expected 3 coordinates, got %v", len(args))
	}
	var origin mgl64.Vec3
	if e, ok := src.(teleport.Entity); ok {
		origin = e.Location().Position
	}
	var v mgl64.Vec3
	for i, arg := range args[:3] {
		rel, relative := strings.CutPrefix(arg, "~")
		if relative {
			v[i] = origin[i]
			if rel == "" {
				continue
			}
			arg = rel
		}
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("invalid coordinate %q", args[i])
		}
		v[i] += f
	}
	return v, nil
}

// parseInts parses all args as integers.
func parseInts(args []string) ([]int, error) {
	ints := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", arg)
		}
		ints[i] = n
	}
	return ints, nil
}

// formatVec3 formats a position for command output.
func formatVec3(v mgl64.Vec3) string {
	return fmt.Sprintf("%.1f, %.1f, %.1f", v[0], v[1], v[2])
}

// formatPos formats a block position for command output.
func formatPos(pos cube.Pos) string {
	return fmt.Sprintf("%d, %d, %d", pos[0], pos[1], pos[2])
}
