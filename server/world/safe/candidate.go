package safe

import (
	"cmp"
	"slices"

	"github.com/df-mc/safespot/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Candidates returns every block position in the SearchBounds around target,
// ordered by their squared distance to the block position of target. Positions
// at the same distance keep the order in which they were generated: X first,
// then Y, then Z, each ascending.
func Candidates(target mgl64.Vec3, src Source, height, width int) []cube.Pos {
	centre := cube.PosFromVec3(target)
	return SearchBounds(centre, src, height, width).Candidates(centre)
}

// Candidates returns all positions in b ordered by their squared distance to
// centre. nil is returned if b is empty.
func (b Bounds) Candidates(centre cube.Pos) []cube.Pos {
	if b.Empty() {
		return nil
	}
	positions := make([]cube.Pos, 0, b.Volume())
	for x := b.Min[0]; x <= b.Max[0]; x++ {
		for y := b.Min[1]; y <= b.Max[1]; y++ {
			for z := b.Min[2]; z <= b.Max[2]; z++ {
				positions = append(positions, cube.Pos{x, y, z})
			}
		}
	}
	slices.SortStableFunc(positions, func(p, q cube.Pos) int {
		return cmp.Compare(p.DistanceSq(centre), q.DistanceSq(centre))
	})
	return positions
}
