package world

import (
	"log/slog"

	"github.com/df-mc/safespot/server/block/cube"
)

// DefaultRange is the vertical range of worlds created without a Range set in
// their Config.
var DefaultRange = cube.Range{0, 255}

// Config may be used to create a new World. It holds a variety of fields that
// influence the World.
type Config struct {
	// Log is the Logger that will be used to log errors that occur when
	// reading or writing world data. If nil, Log defaults to slog.Default().
	Log *slog.Logger
	// Name is the display name of the World. It is only used if the Provider
	// does not have a name stored. Defaults to "World".
	Name string
	// Range is the vertical range of the World in blocks. Blocks outside the
	// range cannot be set and are never returned by World.Block. If left
	// empty, DefaultRange is used.
	Range cube.Range
	// Border is the horizontal boundary of the World. It is only used if the
	// Provider does not have a border stored. If the Diameter is 0,
	// DefaultBorder is used.
	Border Border
	// Provider is the Provider implementation used to read and write World
	// data. If set to nil, NopProvider is used, which ensures no data is ever
	// read or written.
	Provider Provider
	// ReadOnly specifies if the World should be read-only, meaning no new data
	// will be written to the Provider.
	ReadOnly bool
}

// New creates a new World using the Config conf. The World returned will
// start reading columns from the Provider lazily, the first time a block in a
// column is requested.
func (conf Config) New() *World {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Provider == nil {
		conf.Provider = NopProvider{}
	}
	if conf.Range == (cube.Range{}) {
		conf.Range = DefaultRange
	}
	if conf.Name == "" {
		conf.Name = "World"
	}
	if conf.Border.Diameter == 0 {
		conf.Border = DefaultBorder
	}
	s := conf.Provider.Settings()
	if s == nil {
		s = &Settings{}
	}
	if s.Name == "" {
		s.Name = conf.Name
	}
	if s.Border.Diameter == 0 {
		s.Border = conf.Border
	}
	if s.Spawn == (cube.Pos{}) {
		s.Spawn = cube.Pos{0, conf.Range.Clamp(64), 0}
	}
	return &World{
		conf:   conf,
		ra:     conf.Range,
		set:    s,
		chunks: make(map[ChunkPos]*Column),
		dirty:  make(map[ChunkPos]struct{}),
	}
}
