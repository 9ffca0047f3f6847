// Package server wires a world, the safe location search and the teleport
// service together into a Server that commands are executed on.
package server

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/df-mc/safespot/server/teleport"
	"github.com/df-mc/safespot/server/warp"
	"github.com/df-mc/safespot/server/world"
	"github.com/df-mc/safespot/server/world/safe"
)

// Server holds the world of a server along with the services operating on
// it. Use Config.New to create a Server.
type Server struct {
	conf Config

	world   *world.World
	locator *safe.Locator
	metrics *safe.Metrics
	tp      *teleport.Service

	once   sync.Once
	closed chan struct{}
	err    error
}

// New creates a Server using fields of conf. The world of the Server is
// created right away, but columns are only loaded once they are used.
func (conf Config) New() *Server {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.WorldProvider == nil {
		conf.WorldProvider = world.NopProvider{}
	}
	if conf.Search.Log == nil {
		conf.Search.Log = conf.Log
	}
	if conf.Search.Metrics == nil {
		conf.Search.Metrics = safe.NewMetrics()
	}
	if conf.Warps == nil {
		conf.Log.Warn("config: no warp file set, warps are disabled")
	}

	srv := &Server{conf: conf, metrics: conf.Search.Metrics, closed: make(chan struct{})}
	srv.world = world.Config{
		Log:      conf.Log,
		Name:     conf.Name,
		Range:    conf.Range,
		Border:   conf.Border,
		Provider: conf.WorldProvider,
		ReadOnly: conf.ReadOnlyWorld,
	}.New()
	srv.locator = conf.Search.New()
	srv.tp = teleport.Config{
		Log:           conf.Log,
		Locator:       srv.locator,
		Worlds:        srv.WorldByName,
		Warps:         conf.Warps,
		SafeByDefault: conf.SafeByDefault,
		SafeWarps:     conf.SafeWarps,
		Random:        conf.Random,
	}.New()
	return srv
}

// World returns the world of the Server.
func (srv *Server) World() *world.World {
	return srv.world
}

// WorldByName returns the world of the Server with the name passed. Names are
// compared case-insensitively.
func (srv *Server) WorldByName(name string) (*world.World, bool) {
	if strings.EqualFold(strings.TrimSpace(name), srv.world.Name()) {
		return srv.world, true
	}
	return nil, false
}

// Locator returns the safe.Locator used for all searches of the Server.
func (srv *Server) Locator() *safe.Locator {
	return srv.locator
}

// Metrics returns the search counters of the worlds of the Server.
func (srv *Server) Metrics() *safe.Metrics {
	return srv.metrics
}

// Teleporter returns the teleport.Service that moves entities around the
// Server.
func (srv *Server) Teleporter() *teleport.Service {
	return srv.tp
}

// Warps returns the warps of the Server. The warp.Store returned is nil if
// warps are disabled.
func (srv *Server) Warps() *warp.Store {
	return srv.conf.Warps
}

// WarpConfig returns the default cost and category of warps.
func (srv *Server) WarpConfig() warp.Config {
	return srv.conf.WarpConfig
}

// Closed returns a channel that is closed once the Server is closed.
func (srv *Server) Closed() <-chan struct{} {
	return srv.closed
}

// Close saves the world of the Server and closes its provider. Calling Close
// more than once returns the error of the first call.
func (srv *Server) Close() error {
	srv.once.Do(func() {
		srv.conf.Log.Info("Server closing...")
		if err := srv.world.Close(); err != nil {
			srv.err = fmt.Errorf("close world: %w", err)
		}
		close(srv.closed)
	})
	return srv.err
}
