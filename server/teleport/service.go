// Package teleport moves entities between locations, optionally searching for
// a safe location around the destination first. The Service remembers the
// location every entity was moved from, so that it may be moved back.
package teleport

import (
	"errors"
	"fmt"
	"sync"

	"github.com/df-mc/safespot/server/block/cube"
	"github.com/df-mc/safespot/server/warp"
	"github.com/df-mc/safespot/server/world"
	"github.com/df-mc/safespot/server/world/safe"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

var (
	// ErrNoSafeLocation is returned when a safe teleport finds no safe
	// location around its destination.
	ErrNoSafeLocation = errors.New("no safe location found")
	// ErrUnknownWorld is returned when the world of a destination does not
	// exist.
	ErrUnknownWorld = errors.New("unknown world")
	// ErrNoBackLocation is returned by Service.Back if the entity has not
	// been teleported before.
	ErrNoBackLocation = errors.New("no location to return to")
)

// Location is a position and rotation within a world.
type Location struct {
	World    *world.World
	Position mgl64.Vec3
	Rotation cube.Rotation
}

// Entity is an entity that may be teleported by a Service.
type Entity interface {
	// UUID returns the UUID of the entity.
	UUID() uuid.UUID
	// Location returns the current location of the entity.
	Location() Location
	// Move moves the entity to the location passed.
	Move(to Location)
}

// Service teleports entities and keeps track of the location each entity was
// last teleported from. A Service is safe for concurrent use.
type Service struct {
	conf Config

	mu   sync.Mutex
	back map[uuid.UUID]Location
}

// Teleport moves e to the location passed. If to has no World, the world of e
// is used. If safely is true, e is moved to the safe location nearest to the
// position of to instead, and ErrNoSafeLocation is returned if there is no
// such location. The location e ends up at is returned.
func (s *Service) Teleport(e Entity, to Location, safely bool) (Location, error) {
	from := e.Location()
	if to.World == nil {
		to.World = from.World
	}
	if to.World == nil {
		return Location{}, ErrUnknownWorld
	}
	if safely {
		pos, ok := s.conf.Locator.Find(to.World, to.Position)
		if !ok {
			return Location{}, fmt.Errorf("%w near %v in %v", ErrNoSafeLocation, cube.PosFromVec3(to.Position), to.World.Name())
		}
		to.Position = pos
	}
	s.move(e, from, to)
	return to, nil
}

// Spawn moves e to the spawn of w, or to the spawn of the world of e if w is
// nil.
func (s *Service) Spawn(e Entity, w *world.World) (Location, error) {
	if w == nil {
		w = e.Location().World
	}
	if w == nil {
		return Location{}, ErrUnknownWorld
	}
	return s.Teleport(e, Location{World: w, Position: w.Spawn().Vec3Middle()}, s.conf.SafeByDefault)
}

// Warp moves e to the warp with the name passed.
func (s *Service) Warp(e Entity, name string) (Location, error) {
	if s.conf.Warps == nil {
		return Location{}, warp.ErrUnavailable
	}
	wp, ok := s.conf.Warps.Get(name)
	if !ok {
		return Location{}, fmt.Errorf("%w: %v", warp.ErrUnknownWarp, name)
	}
	w, ok := s.conf.Worlds(wp.World)
	if !ok {
		return Location{}, fmt.Errorf("warp %v: %w: %v", wp.Name, ErrUnknownWorld, wp.World)
	}
	return s.Teleport(e, Location{World: w, Position: wp.Position, Rotation: wp.Rotation}, s.conf.SafeWarps)
}

// Random moves e to a random safe location in w, or in the world of e if w is
// nil.
func (s *Service) Random(e Entity, w *world.World) (Location, error) {
	from := e.Location()
	if w == nil {
		w = from.World
	}
	if w == nil {
		return Location{}, ErrUnknownWorld
	}
	r := safe.NewRand(s.conf.Seed(), e.UUID().String())
	pos, ok := s.conf.Locator.Random(w, r, s.conf.Random)
	if !ok {
		return Location{}, fmt.Errorf("%w in %v", ErrNoSafeLocation, w.Name())
	}
	to := Location{World: w, Position: pos, Rotation: from.Rotation}
	s.move(e, from, to)
	return to, nil
}

// Back moves e to the location it was last teleported from. The location e
// is moved from becomes its new back location.
func (s *Service) Back(e Entity) (Location, error) {
	to, ok := s.LastLocation(e.UUID())
	if !ok {
		return Location{}, ErrNoBackLocation
	}
	s.move(e, e.Location(), to)
	return to, nil
}

// LastLocation returns the location the entity with the UUID passed was last
// teleported from.
func (s *Service) LastLocation(id uuid.UUID) (Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.back[id]
	return l, ok
}

// Forget removes the back location of the entity with the UUID passed.
func (s *Service) Forget(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.back, id)
}

// move moves e to a location and stores from as its back location.
func (s *Service) move(e Entity, from, to Location) {
	e.Move(to)

	s.mu.Lock()
	s.back[e.UUID()] = from
	s.mu.Unlock()

	s.conf.Log.Debug("entity teleported", "uuid", e.UUID(), "world", to.World.Name(), "pos", cube.PosFromVec3(to.Position))
}
