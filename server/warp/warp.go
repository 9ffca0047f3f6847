// Package warp implements named, persisted teleport destinations. Warps are
// stored in a TOML file and looked up case-insensitively.
package warp

import (
	"strings"

	"github.com/df-mc/safespot/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/text/cases"
)

// Warp is a named location that entities may be teleported to.
type Warp struct {
	// Name is the display name of the Warp.
	Name string
	// World is the name of the world the Warp is in.
	World string
	// Position and Rotation are the location of the Warp within World.
	Position mgl64.Vec3
	Rotation cube.Rotation
	// Category is the name of the category the Warp is listed under. An
	// empty Category means the Warp is uncategorised.
	Category string
	// Cost is the cost of using the Warp. A negative Cost means the default
	// cost of the Config applies.
	Cost int
}

// Config holds the defaults applied to warps that do not set their own cost
// or category.
type Config struct {
	// DefaultCost is the cost of warps without a cost set.
	DefaultCost int
	// DefaultCategory is the name that uncategorised warps are listed under.
	// If empty, "Uncategorised" is used.
	DefaultCategory string
}

// Cost returns the cost of using w. The cost returned is never negative.
func (conf Config) Cost(w Warp) int {
	if w.Cost < 0 {
		return max(conf.DefaultCost, 0)
	}
	return w.Cost
}

// CategoryName returns the name of the category w is listed under.
func (conf Config) CategoryName(w Warp) string {
	if w.Category != "" {
		return w.Category
	}
	if conf.DefaultCategory == "" {
		return "Uncategorised"
	}
	return conf.DefaultCategory
}

// validName reports if name may be used as the name of a warp.
func validName(name string) bool {
	return name != "" && !strings.ContainsFunc(name, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// normalizeName returns the key that warps with the name passed are stored
// under. A new Caser is used for every call, as a Caser is not safe for
// concurrent use.
func normalizeName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
