package safe

import (
	"context"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
	"github.com/df-mc/safespot/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// RandomConfig holds the options of a random placement. The zero value is
// usable; zero fields are replaced with the values of DefaultRandomConfig.
type RandomConfig struct {
	// Attempts is the maximum amount of random positions tried.
	Attempts int
	// Radius is the maximum distance on the X and Z axes from the centre of
	// the world border. It is limited to the radius of the border.
	Radius int
	// MinY and MaxY limit the Y values tried. Both are limited to the range
	// of the world.
	MinY, MaxY int
	// SurfaceOnly places entities on top of the highest block of the column
	// tried, instead of at a random Y value. It only has an effect if the
	// Source implements HeightSource.
	SurfaceOnly bool
}

// DefaultRandomConfig returns a RandomConfig with the default values filled
// out.
func DefaultRandomConfig() RandomConfig {
	return RandomConfig{Attempts: 10, Radius: 30000, MinY: 0, MaxY: 255}
}

func (c RandomConfig) withDefaults() RandomConfig {
	def := DefaultRandomConfig()
	if c.Attempts <= 0 {
		c.Attempts = def.Attempts
	}
	if c.Radius <= 0 {
		c.Radius = def.Radius
	}
	if c.MinY == 0 && c.MaxY == 0 {
		c.MinY, c.MaxY = def.MinY, def.MaxY
	}
	return c
}

// Random searches for a safe position at random columns within the radius of
// conf around the centre of the world border. Every attempt runs a search
// using the height and width of the Locator around the random position. The
// positions of all attempts are drawn from r first, after which they are
// searched in batches of Config.Workers. The safe position of the earliest
// successful attempt is returned, so the result only depends on r. If none
// of the attempts succeed, false is returned.
func (l *Locator) Random(src Source, r *rand.Rand, conf RandomConfig) (mgl64.Vec3, bool) {
	conf = conf.withDefaults()
	reqs := l.randomRequests(src, r, conf)

	for start := 0; start < len(reqs); start += l.conf.Workers {
		batch := reqs[start:min(start+l.conf.Workers, len(reqs))]
		results, err := l.FindAll(context.Background(), batch)
		if err != nil {
			break
		}
		for i, res := range results {
			if res.Found {
				l.conf.Log.Debug("random location found", "world", sourceName(src), "pos", cube.PosFromVec3(res.Position), "attempts", start+i+1)
				return res.Position, true
			}
		}
	}
	l.conf.Log.Debug("random location not found", "world", sourceName(src), "attempts", conf.Attempts)
	return mgl64.Vec3{}, false
}

// randomRequests draws the positions of all attempts of a random placement.
func (l *Locator) randomRequests(src Source, r *rand.Rand, conf RandomConfig) []Request {
	rng, border := src.Range(), src.Border()

	minY := rng.Clamp(min(conf.MinY, conf.MaxY))
	maxY := rng.Clamp(max(conf.MinY, conf.MaxY))
	radius := max(min(conf.Radius, border.Radius()), 0)
	centre := cube.PosFromVec3(mgl64.Vec3{border.Centre[0], 0, border.Centre[1]})
	heights, surface := src.(HeightSource)
	surface = surface && conf.SurfaceOnly

	reqs := make([]Request, conf.Attempts)
	for i := range reqs {
		pos := cube.Pos{centre[0] + r.IntN(2*radius+1) - radius, 0, centre[2] + r.IntN(2*radius+1) - radius}
		if surface {
			pos[1] = rng.Clamp(heights.HighestBlock(pos[0], pos[2]) + 1)
		} else {
			pos[1] = minY + r.IntN(maxY-minY+1)
		}
		reqs[i] = Request{Source: src, Target: pos.Vec3Middle(), Height: l.conf.Height, Width: l.conf.Width}
	}
	return reqs
}

// NewRand returns a random number generator seeded with seed and the hash of
// key, so that placements for different keys with the same seed differ.
func NewRand(seed uint64, key string) *rand.Rand {
	return rand.New(rand.NewPCG(seed, xxhash.Sum64String(key)))
}
