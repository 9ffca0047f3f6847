package safe

import (
	"math"

	"github.com/df-mc/safespot/server/block/cube"
)

// Bounds is an inclusive box of block positions. A Bounds with Min greater
// than Max on any axis is empty.
type Bounds struct {
	Min, Max cube.Pos
}

var emptyBounds = Bounds{Max: cube.Pos{-1, -1, -1}}

// SearchBounds returns the box searched around target. The Y axis spans
// height blocks above and below target, clamped to the world range. The X and
// Z axes span width blocks around target, cut off at the world border, so a
// target too far outside the border results in empty Bounds. Negative height
// or width also result in empty Bounds.
func SearchBounds(target cube.Pos, src Source, height, width int) Bounds {
	if height < 0 || width < 0 {
		return emptyBounds
	}
	r, border := src.Range(), src.Border()
	return Bounds{
		Min: cube.Pos{
			max(sub(target[0], width), border.MinX()),
			r.Clamp(sub(target[1], height)),
			max(sub(target[2], width), border.MinZ()),
		},
		Max: cube.Pos{
			min(add(target[0], width), border.MaxX()),
			r.Clamp(add(target[1], height)),
			min(add(target[2], width), border.MaxZ()),
		},
	}
}

// Empty reports if the Bounds hold no positions.
func (b Bounds) Empty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Volume returns the amount of positions in the Bounds. The result saturates
// at math.MaxInt.
func (b Bounds) Volume() int {
	if b.Empty() {
		return 0
	}
	v := 1
	for i := range b.Min {
		n := b.Max[i] - b.Min[i] + 1
		if n <= 0 || v > math.MaxInt/n {
			return math.MaxInt
		}
		v *= n
	}
	return v
}

// Contains reports if pos lies within the Bounds.
func (b Bounds) Contains(pos cube.Pos) bool {
	for i := range pos {
		if pos[i] < b.Min[i] || pos[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// add returns a+b, saturating at math.MaxInt. b must not be negative.
func add(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// sub returns a-b, saturating at math.MinInt. b must not be negative.
func sub(a, b int) int {
	if a < math.MinInt+b {
		return math.MinInt
	}
	return a - b
}
