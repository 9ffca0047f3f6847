package safe

import (
	"log/slog"
	"runtime"
	"slices"

	"github.com/df-mc/safespot/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultMaxVolume is the maximum amount of positions covered by a single
// search if Config.MaxVolume is not set.
const DefaultMaxVolume = 1 << 20

// Config holds the options of a Locator. The zero value is usable; defaults
// are applied by New.
type Config struct {
	// Log is the Logger that searches are logged to at debug level. If nil,
	// Log is set to slog.Default().
	Log *slog.Logger
	// Height and Width are the search radii used by Locator.Find. If left 0,
	// DefaultHeight and DefaultWidth are used. Use Locator.FindWithin to
	// search with a radius of 0.
	Height, Width int
	// DisableCache disables the per-search block cache, so that every
	// evaluation reads the block from the Source again. It does not change
	// the results of a search.
	DisableCache bool
	// Workers is the maximum amount of searches run simultaneously by
	// Locator.FindAll and Locator.Random. If 0 or lower, the amount of CPUs
	// is used.
	Workers int
	// MaxVolume is the maximum amount of positions a single search may
	// cover. Searches over more positions are not run and report no safe
	// position. If 0 or lower, DefaultMaxVolume is used.
	MaxVolume int
	// Metrics, if not nil, records the Stats of every search.
	Metrics *Metrics
}

// New creates a Locator using the Config conf.
func (conf Config) New() *Locator {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Height == 0 {
		conf.Height = DefaultHeight
	}
	if conf.Width == 0 {
		conf.Width = DefaultWidth
	}
	if conf.Workers <= 0 {
		conf.Workers = runtime.NumCPU()
	}
	if conf.MaxVolume <= 0 {
		conf.MaxVolume = DefaultMaxVolume
	}
	return &Locator{conf: conf}
}

// Locator runs safe position searches with a fixed set of options. A Locator
// holds no state between searches and is safe for concurrent use.
type Locator struct {
	conf Config
}

// Result is the result of a single search.
type Result struct {
	// Position is the safe position found. It is only set if Found is true.
	Position mgl64.Vec3
	// Found is true if a safe position was found.
	Found bool
	// TooLarge is true if the search was not run because its bounds held
	// more positions than Config.MaxVolume.
	TooLarge bool
	// Stats holds the counters of the search.
	Stats Stats
}

// Radius returns the height and width searched by Find.
func (l *Locator) Radius() (height, width int) {
	return l.conf.Height, l.conf.Width
}

// MaxVolume returns the maximum amount of positions a single search may
// cover.
func (l *Locator) MaxVolume() int {
	return l.conf.MaxVolume
}

// Find searches for a safe position around target using the height and width
// of the Config.
func (l *Locator) Find(src Source, target mgl64.Vec3) (mgl64.Vec3, bool) {
	return l.FindWithin(src, target, l.conf.Height, l.conf.Width)
}

// FindWithin searches for a safe position within height blocks above and
// below and width blocks horizontally around target.
func (l *Locator) FindWithin(src Source, target mgl64.Vec3, height, width int) (mgl64.Vec3, bool) {
	res := l.Search(src, target, height, width)
	return res.Position, res.Found
}

// Search runs a single search and returns its Result, including the counters
// of the search. Searches covering more than MaxVolume positions read no
// blocks and return a Result with TooLarge set.
func (l *Locator) Search(src Source, target mgl64.Vec3, height, width int) Result {
	centre := cube.PosFromVec3(target)
	bounds := SearchBounds(centre, src, height, width)
	if v := bounds.Volume(); v > l.conf.MaxVolume {
		l.conf.Log.Debug("safe location search too large", "world", sourceName(src), "target", centre, "volume", v, "max", l.conf.MaxVolume)
		return Result{TooLarge: true, Stats: Stats{Candidates: v}}
	}
	candidates := bounds.Candidates(centre)

	var cache Cache = NopCache{}
	if !l.conf.DisableCache {
		cache = NewCache(len(candidates))
	}
	ev := NewEvaluator(src, cache)
	pos, ok := Select(slices.Values(candidates), ev)

	res := Result{Found: ok, Stats: ev.Stats()}
	res.Stats.Candidates = len(candidates)
	if ok {
		res.Position = pos.Vec3Middle()
	}

	name := sourceName(src)
	l.conf.Log.Debug("safe location search", "world", name, "target", centre, "found", ok,
		"candidates", res.Stats.Candidates, "examined", res.Stats.Examined, "queries", res.Stats.Queries, "hits", res.Stats.CacheHits)
	l.conf.Metrics.Record(name, ok, res.Stats)
	return res
}

// sourceName returns the name of src if it has one.
func sourceName(src Source) string {
	if n, ok := src.(interface{ Name() string }); ok {
		return n.Name()
	}
	return ""
}
