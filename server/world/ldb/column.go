package ldb

import (
	"fmt"
	"math"

	"github.com/df-mc/safespot/server/block/cube"
	"github.com/df-mc/safespot/server/world"
	"github.com/df-mc/worldupgrader/blockupgrader"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// blockVersion is the block state version written with every palette entry.
// Entries stored with an older version are upgraded when loaded.
const blockVersion int32 = 18168865

// blockState is the encoding of a single palette entry.
type blockState struct {
	Name       string         `nbt:"name"`
	Properties map[string]any `nbt:"states"`
	Version    int32          `nbt:"version"`
}

// blockEntry is the encoding of a single block in a column. Offset holds the
// x and z offset within the column as x | z << 4.
type blockEntry struct {
	Offset uint8 `nbt:"o"`
	Y      int32 `nbt:"y"`
	State  int32 `nbt:"s"`
}

// columnData is the encoding of a world.Column.
type columnData struct {
	Palette []blockState `nbt:"palette"`
	Blocks  []blockEntry `nbt:"blocks"`
}

// encodeColumn encodes the blocks of col into NBT. Every distinct block is
// stored once in the palette.
func encodeColumn(pos world.ChunkPos, col *world.Column) ([]byte, error) {
	var data columnData
	palette := make(map[string]int32)
	baseX, baseZ := int(pos[0])<<4, int(pos[1])<<4

	for p, b := range col.Blocks() {
		name, props := b.EncodeBlock()
		key := name + fmt.Sprint(props)
		i, ok := palette[key]
		if !ok {
			i = int32(len(data.Palette))
			palette[key] = i
			data.Palette = append(data.Palette, blockState{Name: name, Properties: props, Version: blockVersion})
		}
		x, z := p[0]-baseX, p[2]-baseZ
		if x < 0 || x > 15 || z < 0 || z > 15 || p[1] < math.MinInt32 || p[1] > math.MaxInt32 {
			return nil, fmt.Errorf("block at %v outside of column %v", p, pos)
		}
		data.Blocks = append(data.Blocks, blockEntry{Offset: uint8(x | z<<4), Y: int32(p[1]), State: i})
	}
	for i := range data.Palette {
		if data.Palette[i].Properties == nil {
			data.Palette[i].Properties = map[string]any{}
		}
	}
	return nbt.MarshalEncoding(data, nbt.LittleEndian)
}

// decodeColumn decodes a world.Column at pos from NBT. Palette entries are
// upgraded to the latest block version first.
func decodeColumn(pos world.ChunkPos, b []byte) (*world.Column, error) {
	var data columnData
	if err := nbt.UnmarshalEncoding(b, &data, nbt.LittleEndian); err != nil {
		return nil, err
	}
	palette := make([]world.Block, len(data.Palette))
	for i, s := range data.Palette {
		upgraded := blockupgrader.Upgrade(blockupgrader.BlockState{
			Name:       s.Name,
			Properties: s.Properties,
			Version:    s.Version,
		})
		state := world.BlockState{Name: upgraded.Name}
		if len(upgraded.Properties) != 0 {
			state.Properties = upgraded.Properties
		}
		palette[i] = state
	}

	col := world.NewColumn()
	baseX, baseZ := int(pos[0])<<4, int(pos[1])<<4
	for _, e := range data.Blocks {
		if e.State < 0 || int(e.State) >= len(palette) {
			return nil, fmt.Errorf("palette index %v out of range (palette size %v)", e.State, len(palette))
		}
		p := cube.Pos{baseX + int(e.Offset&0xf), int(e.Y), baseZ + int(e.Offset>>4)}
		col.SetBlock(p, palette[e.State])
	}
	return col, nil
}
