package safe

import (
	"sync"

	"github.com/df-mc/safespot/server/block/cube"
	"github.com/df-mc/safespot/server/world"
)

// testSource is a Source backed by a map of blocks. Positions without a block
// are filled using fill. Every block read is counted.
type testSource struct {
	mu     sync.Mutex
	blocks map[cube.Pos]world.Block
	fill   func(pos cube.Pos) world.Block
	rng    cube.Range
	border world.Border
	reads  map[cube.Pos]int
}

// newTestSource returns a testSource with a range of 0-255 and a border of
// radius 100 around the origin, filled with fill.
func newTestSource(fill string) *testSource {
	b := block(fill)
	return &testSource{
		blocks: make(map[cube.Pos]world.Block),
		fill:   func(cube.Pos) world.Block { return b },
		rng:    cube.Range{0, 255},
		border: world.Border{Diameter: 200},
		reads:  make(map[cube.Pos]int),
	}
}

// groundSource returns a testSource with stone up to and including y ground
// and air above.
func groundSource(ground int) *testSource {
	s := newTestSource("air")
	stone := block("stone")
	s.fill = func(pos cube.Pos) world.Block {
		if pos[1] <= ground {
			return stone
		}
		return world.Air()
	}
	return s
}

func block(name string) world.Block {
	b, ok := world.BlockByName(name, nil)
	if !ok {
		panic("block " + name + " not registered")
	}
	return b
}

func (s *testSource) set(pos cube.Pos, name string) {
	s.blocks[pos] = block(name)
}

func (s *testSource) Block(pos cube.Pos) world.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads[pos]++
	if pos.OutOfBounds(s.rng) {
		return nil
	}
	if b, ok := s.blocks[pos]; ok {
		return b
	}
	return s.fill(pos)
}

func (s *testSource) Range() cube.Range    { return s.rng }
func (s *testSource) Border() world.Border { return s.border }

func (s *testSource) totalReads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.reads {
		n += c
	}
	return n
}

// heightSource adds a fixed HighestBlock to a testSource.
type heightSource struct {
	*testSource
	ground int
}

func (s heightSource) HighestBlock(int, int) int { return s.ground }
