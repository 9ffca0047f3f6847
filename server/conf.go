package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/df-mc/safespot/server/block/cube"
	"github.com/df-mc/safespot/server/warp"
	"github.com/df-mc/safespot/server/world"
	"github.com/df-mc/safespot/server/world/ldb"
	"github.com/df-mc/safespot/server/world/safe"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Config contains options for starting a server.
type Config struct {
	// Log is the Logger to use for logging information. If nil, Log is set to
	// slog.Default().
	Log *slog.Logger
	// Name is the name of the world of the server. It is only used if the
	// WorldProvider has no name stored.
	Name string
	// WorldProvider is the world.Provider used for storing and loading world
	// data. If left as nil, world data will be newly created every time and
	// nothing will be stored.
	WorldProvider world.Provider
	// ReadOnlyWorld specifies if the world should be read only. If set to
	// true, the WorldProvider won't be saved to at all.
	ReadOnlyWorld bool
	// Range is the vertical range of the world. If left empty,
	// world.DefaultRange is used.
	Range cube.Range
	// Border is the border of the world. It is only used if the
	// WorldProvider has no border stored.
	Border world.Border
	// Search holds the options of safe location searches. Its Log is replaced
	// with the Log of the Config if nil.
	Search safe.Config
	// SafeByDefault specifies if teleports to the spawn of the world search
	// for a safe location around it.
	SafeByDefault bool
	// SafeWarps specifies if teleports to warps search for a safe location
	// around the warp.
	SafeWarps bool
	// Random holds the options of random teleports.
	Random safe.RandomConfig
	// Warps holds the warps of the server. If nil, warps are not available.
	Warps *warp.Store
	// WarpConfig holds the default cost and category of warps.
	WarpConfig warp.Config
}

// UserConfig is the user configuration of a server. It holds settings that
// affect different aspects of the server, such as the world and the way safe
// locations are searched. UserConfig may be serialised and can be converted
// to a Config by calling UserConfig.Config().
type UserConfig struct {
	World struct {
		// Name is the name of the world if it does not have one stored yet.
		Name string
		// SaveData controls whether a world's data will be saved and loaded.
		// If true, the server will use the default LevelDB data provider and if
		// false, an empty provider will be used.
		SaveData bool
		// Folder is the folder that the data of the world resides in.
		Folder string
		// MinY and MaxY are the lowest and highest Y values of blocks in the
		// world.
		MinY, MaxY int
		// BorderCentreX and BorderCentreZ are the position of the centre of
		// the world border.
		BorderCentreX, BorderCentreZ float64
		// BorderDiameter is the length of the sides of the world border.
		BorderDiameter float64
	}
	Search struct {
		// Height is the amount of blocks searched above and below a target.
		Height int
		// Width is the amount of blocks searched horizontally around a
		// target.
		Width int
		// DisableCache disables caching blocks during a single search.
		DisableCache bool
		// Workers is the maximum amount of searches run at the same time,
		// such as the attempts of a random teleport. Set to 0 to use the
		// amount of CPUs.
		Workers int
		// MaxVolume is the maximum amount of blocks a single search may
		// cover. Larger searches, for example from /find with large radii,
		// are refused.
		MaxVolume int
	}
	Teleport struct {
		// SafeByDefault controls whether teleports to the spawn search for a
		// safe location around it first.
		SafeByDefault bool
	}
	RandomTeleport struct {
		// Attempts is the maximum amount of random locations tried.
		Attempts int
		// Radius is the maximum distance from the centre of the world border.
		Radius int
		// MinY and MaxY limit the Y values of random locations.
		MinY, MaxY int
		// SurfaceOnly places entities on top of the highest block instead of
		// at a random Y value.
		SurfaceOnly bool
	}
	Warps struct {
		// File is the path to the TOML file that warps are stored in. Leave
		// empty to disable warps.
		File string
		// SafeTeleport controls whether teleports to warps search for a safe
		// location around the warp first.
		SafeTeleport bool
		// DefaultCost is the cost of warps that have no cost set.
		DefaultCost int
		// DefaultCategory is the category that uncategorised warps are listed
		// under.
		DefaultCategory string
	}
}

// Config converts a UserConfig to a Config, so that it may be used for
// creating a Server. An error is returned if creating the world provider or
// loading the warps failed.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	var err error
	if log == nil {
		log = slog.Default()
	}
	conf := Config{
		Log:   log,
		Name:  uc.World.Name,
		Range: cube.Range{uc.World.MinY, uc.World.MaxY},
		Border: world.Border{
			Centre:   mgl64.Vec2{uc.World.BorderCentreX, uc.World.BorderCentreZ},
			Diameter: uc.World.BorderDiameter,
		},
		Search: safe.Config{
			Log:          log,
			Height:       uc.Search.Height,
			Width:        uc.Search.Width,
			DisableCache: uc.Search.DisableCache,
			Workers:      uc.Search.Workers,
			MaxVolume:    uc.Search.MaxVolume,
		},
		SafeByDefault: uc.Teleport.SafeByDefault,
		SafeWarps:     uc.Warps.SafeTeleport,
		Random: safe.RandomConfig{
			Attempts:    uc.RandomTeleport.Attempts,
			Radius:      uc.RandomTeleport.Radius,
			MinY:        uc.RandomTeleport.MinY,
			MaxY:        uc.RandomTeleport.MaxY,
			SurfaceOnly: uc.RandomTeleport.SurfaceOnly,
		},
		WarpConfig: warp.Config{
			DefaultCost:     uc.Warps.DefaultCost,
			DefaultCategory: uc.Warps.DefaultCategory,
		},
	}
	if conf.Range.Min() > conf.Range.Max() {
		log.Warn("config: world min Y above max Y, using default range.", "min", conf.Range.Min(), "max", conf.Range.Max())
		conf.Range = world.DefaultRange
	}
	if file := strings.TrimSpace(uc.Warps.File); file != "" {
		conf.Warps, err = warp.Load(file)
		if err != nil {
			return conf, fmt.Errorf("load warps: %w", err)
		}
	}
	if uc.World.SaveData {
		conf.WorldProvider, err = ldb.Config{Log: log}.Open(uc.World.Folder)
		if err != nil {
			return conf, fmt.Errorf("create world provider: %w", err)
		}
	}
	return conf, nil
}

// DefaultConfig returns a configuration with the default values filled out.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.World.Name = "World"
	c.World.SaveData = true
	c.World.Folder = "world"
	c.World.MinY, c.World.MaxY = world.DefaultRange.Min(), world.DefaultRange.Max()
	c.World.BorderDiameter = world.DefaultBorder.Diameter
	c.Search.Height = safe.DefaultHeight
	c.Search.Width = safe.DefaultWidth
	c.Search.MaxVolume = safe.DefaultMaxVolume
	c.Teleport.SafeByDefault = true

	r := safe.DefaultRandomConfig()
	c.RandomTeleport.Attempts = r.Attempts
	c.RandomTeleport.Radius = r.Radius
	c.RandomTeleport.MinY, c.RandomTeleport.MaxY = r.MinY, r.MaxY

	c.Warps.File = "warps.toml"
	c.Warps.SafeTeleport = true
	c.Warps.DefaultCategory = "Uncategorised"
	return c
}

// ReadConfig reads a UserConfig from the file at the path passed. Files ending
// in .yaml or .yml are decoded as YAML, all other files as TOML. Fields
// missing from the file keep their default values. If the file does not
// exist, it is created with the default configuration. The file is rewritten
// after reading, so that fields added since it was created are filled out.
func ReadConfig(path string) (UserConfig, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := decodeConfig(path, data, &c); err != nil {
			return c, fmt.Errorf("decode config: %w", err)
		}
	}
	if data, err = encodeConfig(path, c); err != nil {
		return c, fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return c, fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return c, fmt.Errorf("write config: %w", err)
	}
	return c, nil
}

func yamlPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func decodeConfig(path string, data []byte, c *UserConfig) error {
	if yamlPath(path) {
		return yaml.Unmarshal(data, c)
	}
	return toml.Unmarshal(data, c)
}

func encodeConfig(path string, c UserConfig) ([]byte, error) {
	if yamlPath(path) {
		return yaml.Marshal(c)
	}
	return toml.Marshal(c)
}
