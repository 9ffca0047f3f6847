package safe

import (
	"github.com/brentp/intintmap"
	"github.com/df-mc/safespot/server/block/cube"
)

// Cache stores the Safety of blocks already read during a single search. A
// Cache must not be shared between searches: the world may change between
// them.
type Cache interface {
	// Load returns the Safety stored for pos, if any.
	Load(pos cube.Pos) (Safety, bool)
	// Store stores the Safety of the block at pos.
	Store(pos cube.Pos, s Safety)
}

// NewCache returns a Cache with room for roughly size positions before it
// needs to grow.
func NewCache(size int) Cache {
	return &posCache{m: intintmap.New(max(size, 64), 0.6)}
}

// NopCache is a Cache that never stores anything, so that every evaluation
// reads the block from the Source.
type NopCache struct{}

func (NopCache) Load(cube.Pos) (Safety, bool) { return Safety{}, false }
func (NopCache) Store(cube.Pos, Safety)       {}

// posCache is a Cache that packs positions into int64 keys. Positions that do
// not fit in a packed key are kept in overflow.
type posCache struct {
	m        *intintmap.Map
	overflow map[cube.Pos]Safety
}

const (
	packXZBits = 26
	packYBits  = 12

	packXZMask = 1<<packXZBits - 1
	packYMask  = 1<<packYBits - 1

	safetyBody  = 1 << 0
	safetyFloor = 1 << 1
)

// Load ...
func (c *posCache) Load(pos cube.Pos) (Safety, bool) {
	key, ok := packPos(pos)
	if !ok {
		s, found := c.overflow[pos]
		return s, found
	}
	v, found := c.m.Get(key)
	if !found {
		return Safety{}, false
	}
	return Safety{Body: v&safetyBody != 0, Floor: v&safetyFloor != 0}, true
}

// Store ...
func (c *posCache) Store(pos cube.Pos, s Safety) {
	key, ok := packPos(pos)
	if !ok {
		if c.overflow == nil {
			c.overflow = make(map[cube.Pos]Safety)
		}
		c.overflow[pos] = s
		return
	}
	var v int64
	if s.Body {
		v |= safetyBody
	}
	if s.Floor {
		v |= safetyFloor
	}
	c.m.Put(key, v)
}

// packPos packs pos into a single int64: 26 bits for X and Z each and 12 bits
// for Y. false is returned if pos does not fit.
func packPos(pos cube.Pos) (int64, bool) {
	const xzLimit, yLimit = 1 << (packXZBits - 1), 1 << (packYBits - 1)
	if pos[0] < -xzLimit || pos[0] >= xzLimit || pos[2] < -xzLimit || pos[2] >= xzLimit || pos[1] < -yLimit || pos[1] >= yLimit {
		return 0, false
	}
	x, y, z := int64(pos[0])&packXZMask, int64(pos[1])&packYMask, int64(pos[2])&packXZMask
	return x<<(packXZBits+packYBits) | z<<packYBits | y, true
}
