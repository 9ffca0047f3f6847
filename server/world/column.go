package world

import (
	"cmp"
	"iter"
	"slices"

	"github.com/df-mc/safespot/server/block/cube"
)

// ChunkPos holds the position of a chunk. The type is provided as a utility
// struct for keeping track of a chunk's position. Chunks do not themselves
// keep track of that. Chunk positions are different from block positions in
// the way that increasing the X/Z by one means increasing the absolute value
// on the X/Z axis in terms of blocks by 16.
type ChunkPos [2]int32

// X returns the X coordinate of the chunk position.
func (p ChunkPos) X() int32 {
	return p[0]
}

// Z returns the Z coordinate of the chunk position.
func (p ChunkPos) Z() int32 {
	return p[1]
}

// ChunkPosFromBlock returns the ChunkPos of the chunk that a block at a
// cube.Pos is in.
func ChunkPosFromBlock(pos cube.Pos) ChunkPos {
	return ChunkPos{int32(pos[0] >> 4), int32(pos[2] >> 4)}
}

// Column holds the blocks of a single 16x16 chunk column. Only blocks other
// than air are stored.
type Column struct {
	blocks map[cube.Pos]Block
}

// NewColumn returns an empty Column.
func NewColumn() *Column {
	return &Column{blocks: make(map[cube.Pos]Block)}
}

// Block returns the block set at pos. If no block was set, false is returned.
func (c *Column) Block(pos cube.Pos) (Block, bool) {
	b, ok := c.blocks[pos]
	return b, ok
}

// SetBlock sets the block at pos. Setting nil or air removes the block.
func (c *Column) SetBlock(pos cube.Pos, b Block) {
	if b == nil || IsAir(b) {
		delete(c.blocks, pos)
		return
	}
	c.blocks[pos] = b
}

// Len returns the amount of non-air blocks in the Column.
func (c *Column) Len() int {
	return len(c.blocks)
}

// Blocks returns a sequence of all non-air blocks in the Column, ordered by
// y, then x, then z, so that encoding a Column is deterministic.
func (c *Column) Blocks() iter.Seq2[cube.Pos, Block] {
	positions := make([]cube.Pos, 0, len(c.blocks))
	for pos := range c.blocks {
		positions = append(positions, pos)
	}
	slices.SortFunc(positions, func(a, b cube.Pos) int {
		return cmp.Or(cmp.Compare(a[1], b[1]), cmp.Compare(a[0], b[0]), cmp.Compare(a[2], b[2]))
	})
	return func(yield func(cube.Pos, Block) bool) {
		for _, pos := range positions {
			if !yield(pos, c.blocks[pos]) {
				return
			}
		}
	}
}
