package world

import (
	"math"

	"github.com/df-mc/safespot/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultBorder is the border used by worlds that have none configured. It is
// centred on the origin and as large as the border of a vanilla world.
var DefaultBorder = Border{Diameter: 59_999_968}

// Border is the horizontal boundary of a World. It is a square centred on
// Centre (x, z) with sides of Diameter blocks.
type Border struct {
	Centre   mgl64.Vec2
	Diameter float64
}

// Radius returns half of the diameter of the border, rounded down.
func (b Border) Radius() int {
	return int(math.Floor(b.Diameter / 2))
}

// MinX returns the lowest X block coordinate inside the border.
func (b Border) MinX() int {
	return int(math.Floor(b.Centre[0] - float64(b.Radius())))
}

// MaxX returns the highest X block coordinate inside the border.
func (b Border) MaxX() int {
	return int(math.Floor(b.Centre[0] + float64(b.Radius())))
}

// MinZ returns the lowest Z block coordinate inside the border.
func (b Border) MinZ() int {
	return int(math.Floor(b.Centre[1] - float64(b.Radius())))
}

// MaxZ returns the highest Z block coordinate inside the border.
func (b Border) MaxZ() int {
	return int(math.Floor(b.Centre[1] + float64(b.Radius())))
}

// Contains reports if the horizontal coordinates of pos are inside the border.
func (b Border) Contains(pos cube.Pos) bool {
	return pos[0] >= b.MinX() && pos[0] <= b.MaxX() && pos[2] >= b.MinZ() && pos[2] <= b.MaxZ()
}
