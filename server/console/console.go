package console

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/df-mc/safespot/server"
	"github.com/df-mc/safespot/server/cmd"
	"github.com/df-mc/safespot/server/teleport"
	"github.com/google/uuid"
)

// Console provides a simple CLI backed command source that reads commands from
// an io.Reader (defaulting to os.Stdin) and executes them on the provided server.
// The console acts as an entity in the world of the server, so that it may be
// teleported around by commands.
type Console struct {
	srv    *server.Server
	log    *slog.Logger
	reader io.Reader
	src    *consoleSource
}

// New returns a Console bound to the provided server. The console reads from
// os.Stdin and writes command output to the supplied logger. It starts at the
// spawn of the world of the server.
func New(srv *server.Server, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	w := srv.World()
	return &Console{
		srv:    srv,
		log:    log,
		reader: os.Stdin,
		src: &consoleSource{
			log: log,
			id:  uuid.New(),
			loc: teleport.Location{World: w, Position: w.Spawn().Vec3Middle()},
		},
	}
}

// WithReader sets a custom reader for the console input. It enables testing the
// console without relying on os.Stdin.
func (c *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		c.reader = r
	}
	return c
}

// Location returns the current location of the console.
func (c *Console) Location() teleport.Location {
	return c.src.Location()
}

// Run starts consuming commands from the console. It blocks until the context
// is cancelled or the underlying reader reaches EOF.
func (c *Console) Run(ctx context.Context) {
	scanner := bufio.NewScanner(c.reader)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				c.log.Error("console input error", "err", err)
			}
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd.ExecuteLine(c.src, line, nil)
	}
}

type consoleSource struct {
	log *slog.Logger
	id  uuid.UUID

	mu  sync.Mutex
	loc teleport.Location
}

func (c *consoleSource) Name() string    { return "Console" }
func (c *consoleSource) UUID() uuid.UUID { return c.id }
func (c *consoleSource) ServerConsole()  {}

func (c *consoleSource) Location() teleport.Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loc
}

func (c *consoleSource) Move(to teleport.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loc = to
}

func (c *consoleSource) SendCommandOutput(o *cmd.Output) {
	for _, msg := range o.Messages() {
		c.log.Info(msg)
	}
	for _, err := range o.Errors() {
		c.log.Error(err.Error())
	}
}
