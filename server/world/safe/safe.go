// Package safe finds safe positions to relocate entities to in a world. A
// position is safe if the entity's body fits in the two blocks above it and
// the block below it (or the block below that, after a one block fall) can be
// stood on.
//
// The search is synchronous and reads blocks through a Source. Every search
// uses its own Cache, so concurrent searches never share state.
package safe

import (
	"slices"

	"github.com/df-mc/safespot/server/block/cube"
	"github.com/df-mc/safespot/server/world"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultHeight is the amount of blocks searched above and below the
	// target if no height is specified.
	DefaultHeight = 3
	// DefaultWidth is the amount of blocks searched on the X and Z axes around
	// the target if no width is specified.
	DefaultWidth = 3
)

// Source is the world a search reads blocks from. *world.World implements
// Source.
type Source interface {
	// Block returns the block at a position. nil is returned for positions
	// outside the world.
	Block(pos cube.Pos) world.Block
	// Range returns the vertical range of the world.
	Range() cube.Range
	// Border returns the horizontal boundary of the world.
	Border() world.Border
}

// HeightSource is a Source that can also report the highest block of a
// column. It is used for surface-only random placement.
type HeightSource interface {
	Source
	// HighestBlock returns the y value of the highest non-air block at x, z.
	HighestBlock(x, z int) int
}

// Find searches for the safe position nearest to target within height blocks
// above and below and width blocks horizontally. The position returned is
// the middle of the bottom face of the block found. If no safe position
// exists, false is returned.
func Find(src Source, target mgl64.Vec3, height, width int) (mgl64.Vec3, bool) {
	candidates := Candidates(target, src, height, width)
	pos, ok := Select(slices.Values(candidates), NewEvaluator(src, NewCache(len(candidates))))
	if !ok {
		return mgl64.Vec3{}, false
	}
	return pos.Vec3Middle(), true
}

// FindDefault calls Find with DefaultHeight and DefaultWidth.
func FindDefault(src Source, target mgl64.Vec3) (mgl64.Vec3, bool) {
	return Find(src, target, DefaultHeight, DefaultWidth)
}
