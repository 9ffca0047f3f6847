package safe

import (
	"github.com/df-mc/safespot/server/block/cube"
)

// Stats holds counters of a single search.
type Stats struct {
	// Candidates is the amount of positions in the search volume.
	Candidates int
	// Examined is the amount of candidates tested before the search ended.
	Examined int
	// Queries is the amount of blocks read from the Source.
	Queries int
	// CacheHits is the amount of evaluations answered by the Cache.
	CacheHits int
}

// Evaluator evaluates the Safety of blocks in a Source, remembering the result
// in a Cache so that every block is read at most once. An Evaluator must only
// be used for a single search.
type Evaluator struct {
	src   Source
	floor int
	cache Cache
	stats Stats
}

// NewEvaluator returns an Evaluator reading blocks from src. If cache is nil,
// a new Cache is used.
func NewEvaluator(src Source, cache Cache) *Evaluator {
	if cache == nil {
		cache = NewCache(0)
	}
	return &Evaluator{src: src, floor: src.Range().Min(), cache: cache}
}

// Evaluate returns the Safety of the block at pos. Positions below the floor
// of the world are never safe, and are answered without reading the Source or
// touching the Cache.
func (e *Evaluator) Evaluate(pos cube.Pos) Safety {
	if pos[1] < e.floor {
		return Safety{}
	}
	if s, ok := e.cache.Load(pos); ok {
		e.stats.CacheHits++
		return s
	}
	s := Classify(e.src.Block(pos))
	e.stats.Queries++
	e.cache.Store(pos, s)
	return s
}

// Stats returns the counters collected by the Evaluator so far.
func (e *Evaluator) Stats() Stats {
	return e.stats
}
