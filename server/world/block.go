package world

import (
	"maps"
	"strings"
)

// Block is a block that may be placed in a World. Blocks are identified by
// their name and a set of properties, the same way they are stored on disk.
type Block interface {
	// EncodeBlock encodes the block to a string ID such as 'minecraft:grass'
	// and properties (also called states) that specify the variant of the
	// block.
	EncodeBlock() (name string, properties map[string]any)
}

// BlockState is the plain implementation of Block used by the world and its
// providers. The Properties map must not be modified after the BlockState has
// been placed in a World.
type BlockState struct {
	Name       string
	Properties map[string]any
}

// EncodeBlock ...
func (b BlockState) EncodeBlock() (string, map[string]any) {
	return b.Name, b.Properties
}

// String returns the name of the BlockState.
func (b BlockState) String() string {
	return b.Name
}

var air = BlockState{Name: "minecraft:air"}

// Air returns the air block, which is returned by World.Block for every
// position within the world range that has no block set.
func Air() Block {
	return air
}

// IsAir reports if b is one of the air variants.
func IsAir(b Block) bool {
	if b == nil {
		return false
	}
	switch name, _ := b.EncodeBlock(); name {
	case "minecraft:air", "minecraft:cave_air", "minecraft:void_air":
		return true
	}
	return false
}

// blockNames holds all block names known to the world, registered through
// RegisterBlock.
var blockNames = map[string]struct{}{}

// RegisterBlock registers a block name so that it can be obtained using
// BlockByName. RegisterBlock must only be called during initialisation.
func RegisterBlock(name string) {
	blockNames[name] = struct{}{}
}

// BlockByName attempts to return a block by its name and properties. If the
// name is not registered, false is returned. Names without a namespace are
// assumed to be in the 'minecraft' namespace.
func BlockByName(name string, properties map[string]any) (Block, bool) {
	if !strings.Contains(name, ":") {
		name = "minecraft:" + name
	}
	if _, ok := blockNames[name]; !ok {
		return nil, false
	}
	if len(properties) == 0 {
		return BlockState{Name: name}, true
	}
	return BlockState{Name: name, Properties: maps.Clone(properties)}, true
}

func init() {
	for _, name := range []string{
		"air", "cave_air", "void_air", "stone", "granite", "diorite", "andesite", "deepslate",
		"grass_block", "grass", "dirt", "coarse_dirt", "podzol", "mycelium", "sand", "red_sand",
		"gravel", "clay", "sandstone", "bedrock", "obsidian", "netherrack", "end_stone",
		"oak_log", "oak_leaves", "oak_planks", "glass", "ice", "packed_ice", "snow",
		"snow_layer", "powder_snow", "water", "flowing_water", "lava", "flowing_lava", "fire",
		"soul_fire", "magma", "cactus", "sweet_berry_bush", "web", "vine", "tall_grass",
		"short_grass", "double_plant", "yellow_flower", "red_flower", "redstone_wire",
		"redstone_torch", "torch", "soul_torch", "nether_portal", "portal", "end_portal",
		"campfire", "soul_campfire", "pointed_dripstone", "wither_rose", "poppy", "dandelion",
		"sunflower", "fern", "large_fern",
	} {
		RegisterBlock("minecraft:" + name)
	}
}
