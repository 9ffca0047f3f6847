package safe

import (
	"iter"

	"github.com/df-mc/safespot/server/block/cube"
)

// Select returns the first of the candidates that e accepts. false is returned
// if the sequence ends without an accepted candidate.
func Select(candidates iter.Seq[cube.Pos], e *Evaluator) (cube.Pos, bool) {
	for pos := range candidates {
		e.stats.Examined++
		if e.Accepts(pos) {
			return pos, true
		}
	}
	return cube.Pos{}, false
}

// Accepts reports if an entity may be placed at pos: the block at pos and the
// one above it must be safe for the body, and there must be a safe floor below
// pos.
func (e *Evaluator) Accepts(pos cube.Pos) bool {
	if !e.Evaluate(pos).Body {
		return false
	}
	if !e.Evaluate(pos.Side(cube.FaceUp)).Body {
		return false
	}
	return e.floorSafe(pos)
}

// floorSafe reports if the entity has a floor to land on below pos. The block
// directly below may be a safe floor itself. If it is passable instead, the
// entity falls through it and the block below that must be a safe floor. The
// entity never falls more than one block.
func (e *Evaluator) floorSafe(pos cube.Pos) bool {
	below := pos.Side(cube.FaceDown)
	s := e.Evaluate(below)
	if s.Floor {
		return true
	}
	if !s.Body {
		return false
	}
	return e.Evaluate(below.Side(cube.FaceDown)).Floor
}
