package safe

import (
	"github.com/df-mc/safespot/server/world"
)

// Safety holds the safety of a single block.
type Safety struct {
	// Body is true if an entity's body may occupy the block without harm.
	Body bool
	// Floor is true if an entity may stand on top of the block without harm
	// or falling through it.
	Floor bool
}

// Classify returns the Safety of b. A nil block, such as one returned for a
// position outside the world, is neither safe for the body nor as a floor.
func Classify(b world.Block) Safety {
	if b == nil {
		return Safety{}
	}
	name, _ := b.EncodeBlock()
	return Safety{Body: BodySafe(name), Floor: FloorSafe(name)}
}

// BodySafe reports if a block with the name passed may be occupied by an
// entity's body. Only blocks explicitly listed are safe: any block not known
// to be passable is treated as solid.
func BodySafe(name string) bool {
	switch name {
	case "minecraft:air", "minecraft:cave_air", "minecraft:void_air",
		"minecraft:water", "minecraft:flowing_water", "minecraft:snow":
		return true
	}
	return thin(name)
}

// FloorSafe reports if an entity may stand on a block with the name passed.
// Every block is a safe floor, except for blocks that an entity would sink
// into, burn on, get hurt by or fall through.
func FloorSafe(name string) bool {
	switch name {
	case "minecraft:air", "minecraft:cave_air", "minecraft:void_air",
		"minecraft:water", "minecraft:flowing_water", "minecraft:lava", "minecraft:flowing_lava",
		"minecraft:fire", "minecraft:soul_fire", "minecraft:magma", "minecraft:cactus",
		"minecraft:campfire", "minecraft:soul_campfire", "minecraft:sweet_berry_bush",
		"minecraft:wither_rose", "minecraft:pointed_dripstone", "minecraft:powder_snow",
		"minecraft:end_portal":
		return false
	}
	return !thin(name)
}

// thin reports if a block with the name passed has no collision box, so that
// entities walk through it. Both the names used before and after the 1.20.70
// and 1.21 flattening of plants are listed, so that upgraded worlds classify
// the same.
func thin(name string) bool {
	switch name {
	case "minecraft:tallgrass", "minecraft:tall_grass", "minecraft:short_grass",
		"minecraft:fern", "minecraft:large_fern", "minecraft:deadbush", "minecraft:dead_bush",
		"minecraft:double_plant", "minecraft:sunflower", "minecraft:lilac", "minecraft:rose_bush", "minecraft:peony",
		"minecraft:yellow_flower", "minecraft:dandelion",
		"minecraft:red_flower", "minecraft:poppy", "minecraft:blue_orchid", "minecraft:allium",
		"minecraft:azure_bluet", "minecraft:red_tulip", "minecraft:orange_tulip", "minecraft:white_tulip",
		"minecraft:pink_tulip", "minecraft:oxeye_daisy", "minecraft:cornflower", "minecraft:lily_of_the_valley",
		"minecraft:vine", "minecraft:snow_layer", "minecraft:web",
		"minecraft:redstone_wire", "minecraft:redstone_torch", "minecraft:unlit_redstone_torch",
		"minecraft:torch", "minecraft:soul_torch",
		"minecraft:portal", "minecraft:nether_portal":
		return true
	}
	return false
}
