package teleport

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/df-mc/safespot/server/block/cube"
	"github.com/df-mc/safespot/server/warp"
	"github.com/df-mc/safespot/server/world"
	"github.com/df-mc/safespot/server/world/safe"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

type testEntity struct {
	id  uuid.UUID
	loc Location
}

func (e *testEntity) UUID() uuid.UUID    { return e.id }
func (e *testEntity) Location() Location { return e.loc }
func (e *testEntity) Move(to Location)   { e.loc = to }

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTestWorld returns a world with a stone floor at y 63 between -8 and 8 on
// the X and Z axes.
func newTestWorld(t *testing.T, name string) *world.World {
	t.Helper()
	w := world.Config{Log: testLog, Name: name, Border: world.Border{Diameter: 200}}.New()
	t.Cleanup(func() { _ = w.Close() })
	stone, _ := world.BlockByName("stone", nil)
	for x := -8; x <= 8; x++ {
		for z := -8; z <= 8; z++ {
			w.SetBlock(cube.Pos{x, 63, z}, stone)
		}
	}
	return w
}

func newTestService(conf Config) *Service {
	conf.Log = testLog
	conf.Locator = safe.Config{Log: testLog}.New()
	conf.Seed = func() uint64 { return 42 }
	return conf.New()
}

func TestTeleportSafe(t *testing.T) {
	w := newTestWorld(t, "World")
	s := newTestService(Config{})
	e := &testEntity{id: uuid.New(), loc: Location{World: w, Position: mgl64.Vec3{0.5, 64, 0.5}}}

	to, err := s.Teleport(e, Location{Position: mgl64.Vec3{3.2, 66, 4.7}}, true)
	if err != nil {
		t.Fatalf("teleport: %v", err)
	}
	if want := (mgl64.Vec3{3.5, 65, 4.5}); to.Position != want || e.loc.Position != want {
		t.Fatalf("expected the entity at %v, got %v", want, e.loc.Position)
	}
	if to.World != w {
		t.Fatal("expected the entity to stay in its world")
	}
	back, ok := s.LastLocation(e.id)
	if !ok || back.Position != (mgl64.Vec3{0.5, 64, 0.5}) {
		t.Fatalf("unexpected back location: %v, %v", back, ok)
	}
}

func TestTeleportNoSafeLocation(t *testing.T) {
	w := newTestWorld(t, "World")
	s := newTestService(Config{})
	start := Location{World: w, Position: mgl64.Vec3{0.5, 64, 0.5}}
	e := &testEntity{id: uuid.New(), loc: start}

	if _, err := s.Teleport(e, Location{Position: mgl64.Vec3{50, 100, 50}}, true); !errors.Is(err, ErrNoSafeLocation) {
		t.Fatalf("expected ErrNoSafeLocation, got %v", err)
	}
	if e.loc != start {
		t.Fatalf("expected the entity not to move, got %v", e.loc)
	}
	if _, ok := s.LastLocation(e.id); ok {
		t.Fatal("expected no back location after a failed teleport")
	}

	// Unsafe teleports go to the exact position.
	to, err := s.Teleport(e, Location{Position: mgl64.Vec3{50, 100, 50}}, false)
	if err != nil || to.Position != (mgl64.Vec3{50, 100, 50}) {
		t.Fatalf("unexpected unsafe teleport: %v, %v", to, err)
	}
}

func TestSpawn(t *testing.T) {
	w := newTestWorld(t, "World")
	w.SetSpawn(cube.Pos{2, 67, -2})
	e := &testEntity{id: uuid.New(), loc: Location{World: w}}

	to, err := newTestService(Config{}).Spawn(e, nil)
	if err != nil || to.Position != (mgl64.Vec3{2.5, 67, -1.5}) {
		t.Fatalf("unexpected spawn teleport: %v, %v", to, err)
	}
	to, err = newTestService(Config{SafeByDefault: true}).Spawn(e, w)
	if err != nil || to.Position != (mgl64.Vec3{2.5, 65, -1.5}) {
		t.Fatalf("unexpected safe spawn teleport: %v, %v", to, err)
	}
}

func TestWarp(t *testing.T) {
	overworld, nether := newTestWorld(t, "World"), newTestWorld(t, "Nether")
	warps, err := warp.Load(filepath.Join(t.TempDir(), "warps.toml"))
	if err != nil {
		t.Fatalf("load warps: %v", err)
	}
	_ = warps.Set("fort", warp.Warp{World: "Nether", Position: mgl64.Vec3{-4.5, 68, 6.5}, Rotation: cube.Rotation{180, 0}})
	_ = warps.Set("lost", warp.Warp{World: "End", Position: mgl64.Vec3{0, 64, 0}})

	s := newTestService(Config{
		Warps:     warps,
		SafeWarps: true,
		Worlds: func(name string) (*world.World, bool) {
			switch name {
			case "World":
				return overworld, true
			case "Nether":
				return nether, true
			}
			return nil, false
		},
	})
	e := &testEntity{id: uuid.New(), loc: Location{World: overworld, Position: mgl64.Vec3{0.5, 64, 0.5}}}

	to, err := s.Warp(e, "FORT")
	if err != nil {
		t.Fatalf("warp: %v", err)
	}
	if to.World != nether || to.Position != (mgl64.Vec3{-4.5, 65, 6.5}) || to.Rotation != (cube.Rotation{180, 0}) {
		t.Fatalf("unexpected warp location: %+v", to)
	}
	if _, err := s.Warp(e, "missing"); !errors.Is(err, warp.ErrUnknownWarp) {
		t.Fatalf("expected warp.ErrUnknownWarp, got %v", err)
	}
	if _, err := s.Warp(e, "lost"); !errors.Is(err, ErrUnknownWorld) {
		t.Fatalf("expected ErrUnknownWorld, got %v", err)
	}
	if _, err := newTestService(Config{}).Warp(e, "fort"); !errors.Is(err, warp.ErrUnavailable) {
		t.Fatalf("expected warp.ErrUnavailable, got %v", err)
	}
}

func TestRandom(t *testing.T) {
	w := newTestWorld(t, "World")
	s := newTestService(Config{Random: safe.RandomConfig{Attempts: 5, Radius: 5, MinY: 64, MaxY: 64}})
	e := &testEntity{id: uuid.New(), loc: Location{World: w, Position: mgl64.Vec3{0.5, 64, 0.5}, Rotation: cube.Rotation{45, 0}}}

	to, err := s.Random(e, nil)
	if err != nil {
		t.Fatalf("random teleport: %v", err)
	}
	p := to.Position
	if p[1] != 64 || p[0] < -5 || p[0] > 6 || p[2] < -5 || p[2] > 6 {
		t.Fatalf("unexpected random location: %v", p)
	}
	if to.Rotation != (cube.Rotation{45, 0}) {
		t.Fatalf("expected the rotation to be kept, got %v", to.Rotation)
	}

	// The same seed and entity always result in the same location.
	e2 := &testEntity{id: e.id, loc: Location{World: w}}
	again, err := s.Random(e2, w)
	if err != nil || again.Position != to.Position {
		t.Fatalf("expected the same random location, got %v, %v", again.Position, err)
	}

	empty := world.Config{Log: testLog, Border: world.Border{Diameter: 200}}.New()
	if _, err := s.Random(e, empty); !errors.Is(err, ErrNoSafeLocation) {
		t.Fatalf("expected ErrNoSafeLocation in an empty world, got %v", err)
	}
}

func TestBack(t *testing.T) {
	w := newTestWorld(t, "World")
	s := newTestService(Config{})
	start := Location{World: w, Position: mgl64.Vec3{0.5, 64, 0.5}}
	e := &testEntity{id: uuid.New(), loc: start}

	if _, err := s.Back(e); !errors.Is(err, ErrNoBackLocation) {
		t.Fatalf("expected ErrNoBackLocation, got %v", err)
	}
	dest := Location{World: w, Position: mgl64.Vec3{5.5, 64, 5.5}}
	if _, err := s.Teleport(e, dest, false); err != nil {
		t.Fatalf("teleport: %v", err)
	}
	if to, err := s.Back(e); err != nil || to != start || e.loc != start {
		t.Fatalf("expected the entity to return to %v, got %v, %v", start, e.loc, err)
	}
	// Going back twice returns to the destination of the first teleport.
	if to, err := s.Back(e); err != nil || to != dest {
		t.Fatalf("expected the entity to return to %v, got %v, %v", dest, to, err)
	}

	s.Forget(e.id)
	if _, err := s.Back(e); !errors.Is(err, ErrNoBackLocation) {
		t.Fatalf("expected ErrNoBackLocation after forgetting, got %v", err)
	}
}
