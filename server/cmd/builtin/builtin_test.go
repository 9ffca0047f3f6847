package builtin

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df-mc/safespot/server"
	"github.com/df-mc/safespot/server/block/cube"
	"github.com/df-mc/safespot/server/cmd"
	"github.com/df-mc/safespot/server/teleport"
	"github.com/df-mc/safespot/server/warp"
	"github.com/df-mc/safespot/server/world"
	"github.com/df-mc/safespot/server/world/safe"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

type testEntity struct {
	name string
	id   uuid.UUID
	loc  teleport.Location
	out  []*cmd.Output
}

func (e *testEntity) Name() string                    { return e.name }
func (e *testEntity) UUID() uuid.UUID                 { return e.id }
func (e *testEntity) Location() teleport.Location     { return e.loc }
func (e *testEntity) Move(to teleport.Location)       { e.loc = to }
func (e *testEntity) SendCommandOutput(o *cmd.Output) { e.out = append(e.out, o) }

// run executes a command line and returns the output it produced.
func (e *testEntity) run(t *testing.T, line string) *cmd.Output {
	t.Helper()
	n := len(e.out)
	cmd.ExecuteLine(e, line, nil)
	if len(e.out) != n+1 {
		t.Fatalf("%v: expected a single output, got %v", line, len(e.out)-n)
	}
	return e.out[n]
}

// plainSource is a command source that is not an entity.
type plainSource struct {
	out []*cmd.Output
}

func (*plainSource) Name() string                      { return "Console" }
func (s *plainSource) SendCommandOutput(o *cmd.Output) { s.out = append(s.out, o) }

// serverConsole is a command source representing the server console.
type serverConsole struct {
	plainSource
}

func (*serverConsole) ServerConsole() {}

func newTestServer(t *testing.T) (*server.Server, *testEntity) {
	t.Helper()
	warps, err := warp.Load(filepath.Join(t.TempDir(), "warps.toml"))
	if err != nil {
		t.Fatalf("load warps: %v", err)
	}
	srv := server.Config{
		Log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		Border:        world.Border{Diameter: 200},
		Warps:         warps,
		WarpConfig:    warp.Config{DefaultCost: 3},
		SafeByDefault: true,
		SafeWarps:     true,
		Random:        safe.RandomConfig{Attempts: 10, Radius: 6, MinY: 64, MaxY: 64},
	}.New()
	t.Cleanup(func() { _ = srv.Close() })
	Register(srv)

	stone, _ := world.BlockByName("stone", nil)
	for x := -8; x <= 8; x++ {
		for z := -8; z <= 8; z++ {
			srv.World().SetBlock(cube.Pos{x, 63, z}, stone)
		}
	}
	e := &testEntity{name: "Steve", id: uuid.New(), loc: teleport.Location{World: srv.World(), Position: mgl64.Vec3{0.5, 64, 0.5}}}
	return srv, e
}

func expectMessage(t *testing.T, o *cmd.Output, want string) {
	t.Helper()
	for _, err := range o.Errors() {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, msg := range o.Messages() {
		if strings.Contains(msg, want) {
			return
		}
	}
	t.Fatalf("expected a message containing %q, got %v", want, o.Messages())
}

func expectError(t *testing.T, o *cmd.Output, want string) {
	t.Helper()
	for _, err := range o.Errors() {
		if strings.Contains(err.Error(), want) {
			return
		}
	}
	t.Fatalf("expected an error containing %q, got %v", want, o.Errors())
}

func TestFindCommand(t *testing.T) {
	srv, e := newTestServer(t)
	expectMessage(t, e.run(t, "find 2 66 2"), "Safe location found at 2.5, 65.0, 2.5")
	expectMessage(t, e.run(t, "find ~ ~ ~ 0 0"), "Safe location found at 0.5, 64.0, 0.5")
	expectError(t, e.run(t, "find 2 66 2 0 0"), "No safe location found")
	expectError(t, e.run(t, "find 2 66"), "Usage: /find")
	expectError(t, e.run(t, "find 1 2 3 x"), "invalid number")
	expectError(t, e.run(t, "find 0 64 0 255 100000000"), "Search area too large")

	if c := srv.Metrics().Counters("World"); c.Searches != 3 || c.Found != 2 {
		t.Fatalf("unexpected search counters: %+v", c)
	}
	expectMessage(t, e.run(t, "stats"), "Searches in World: 3 (2 found, 1 not found)")
}

func TestSetBlockCommand(t *testing.T) {
	srv, e := newTestServer(t)
	expectMessage(t, e.run(t, "setblock 1 64 1 lava"), "Changed the block at 1, 64, 1 to minecraft:lava.")
	if name, _ := srv.World().Block(cube.Pos{1, 64, 1}).EncodeBlock(); name != "minecraft:lava" {
		t.Fatalf("expected lava to be placed, got %v", name)
	}
	expectError(t, e.run(t, "setblock 1 64 1 not_a_block"), "Unknown block")
	expectError(t, e.run(t, "setblock 1 400 1 stone"), "outside of the world")
}

func TestTeleportCommands(t *testing.T) {
	srv, e := newTestServer(t)
	srv.World().SetSpawn(cube.Pos{3, 66, 3})

	expectMessage(t, e.run(t, "spawn"), "Teleported to the spawn of World at 3.5, 65.0, 3.5.")
	expectMessage(t, e.run(t, "back"), "Returned to 0.5, 64.0, 0.5 in World.")
	expectMessage(t, e.run(t, "rtp"), "Teleported to")
	if p := e.loc.Position; p[1] != 64 || p[0] < -6 || p[0] > 7 || p[2] < -6 || p[2] > 7 {
		t.Fatalf("unexpected random location: %v", p)
	}
	expectError(t, e.run(t, "spawn Nether"), "Unknown world")

	src := &plainSource{}
	cmd.ExecuteLine(src, "spawn", nil)
	expectError(t, src.out[0], "can only be run by an entity")
}

func TestWarpCommands(t *testing.T) {
	srv, e := newTestServer(t)
	e.loc.Position = mgl64.Vec3{4.5, 64, -4.5}
	expectMessage(t, e.run(t, "setwarp Tower Landmarks"), "Created warp Tower at 4.5, 64.0, -4.5.")
	expectMessage(t, e.run(t, "setwarp Tower Landmarks"), "Moved warp Tower")
	e.loc.Position = mgl64.Vec3{-2.5, 64, 1.5}
	expectMessage(t, e.run(t, "setwarp market"), "Created warp market")
	expectError(t, e.run(t, "setwarp"), "Usage: /setwarp")

	expectMessage(t, e.run(t, "warp tower"), "Teleported to warp Tower for 3.")
	if e.loc.Position != (mgl64.Vec3{4.5, 64, -4.5}) {
		t.Fatalf("unexpected warp location: %v", e.loc.Position)
	}
	expectError(t, e.run(t, "warp nowhere"), `Warp "nowhere" does not exist.`)

	expectMessage(t, e.run(t, "warpcost tower 0"), "The cost of warp Tower is now 0.")
	expectMessage(t, e.run(t, "warp tower"), "Teleported to warp Tower.")
	expectMessage(t, e.run(t, "warpcost tower"), "The cost of warp Tower is now 3.")
	expectError(t, e.run(t, "warpcost tower -1"), "cannot be negative")

	o := e.run(t, "warps")
	expectMessage(t, o, "Landmarks: Tower")
	expectMessage(t, o, "Uncategorised: market")
	expectMessage(t, e.run(t, "warps uncategorised"), "uncategorised: market")
	expectMessage(t, e.run(t, "warp"), "Landmarks: Tower")

	expectMessage(t, e.run(t, "delwarp TOWER"), "Removed warp TOWER.")
	expectError(t, e.run(t, "delwarp tower"), "does not exist")
	if srv.Warps().Exists("tower") {
		t.Fatal("expected the warp to be removed")
	}
}

func TestHelpCommand(t *testing.T) {
	_, e := newTestServer(t)
	o := e.run(t, "help")
	expectMessage(t, o, "/find <x> <y> <z> [height] [width]")
	for _, msg := range o.Messages() {
		if strings.HasPrefix(msg, "/stop") {
			t.Fatal("expected stop not to be listed for an entity")
		}
	}
	expectMessage(t, e.run(t, "help rtp"), "/rtp [world]")
	expectError(t, e.run(t, "help stop"), "Unknown command")
}

func TestStopCommand(t *testing.T) {
	srv, e := newTestServer(t)
	expectError(t, e.run(t, "stop"), "do not have permission")

	// A source is not the console just because of its name.
	named := &plainSource{}
	cmd.ExecuteLine(named, "stop", nil)
	expectError(t, named.out[0], "do not have permission")
	select {
	case <-srv.Closed():
		t.Fatal("expected the server to keep running")
	default:
	}

	console := &serverConsole{}
	cmd.ExecuteLine(console, "stop", nil)
	expectMessage(t, console.out[0], "Stopping server...")
	select {
	case <-srv.Closed():
	default:
		t.Fatal("expected the server to be closed")
	}
}
