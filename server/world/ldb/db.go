// Package ldb implements a world.Provider that stores world data in a LevelDB
// database. Columns are stored under their chunk position, encoded as little
// endian NBT.
package ldb

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/safespot/server/block/cube"
	"github.com/df-mc/safespot/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// DB implements a world provider backed by a LevelDB database. Use Config.Open
// to create a DB.
type DB struct {
	conf Config
	ldb  *leveldb.DB
	dir  string
}

var _ world.Provider = (*DB)(nil)

const (
	keyBlocks   = '/'
	keySettings = "~local_settings"
)

// levelData is the encoding of world.Settings stored in the database.
type levelData struct {
	LevelName      string  `nbt:"LevelName"`
	SpawnX         int32   `nbt:"SpawnX"`
	SpawnY         int32   `nbt:"SpawnY"`
	SpawnZ         int32   `nbt:"SpawnZ"`
	BorderCentreX  float64 `nbt:"BorderCentreX"`
	BorderCentreZ  float64 `nbt:"BorderCentreZ"`
	BorderDiameter float64 `nbt:"BorderDiameter"`
}

// Dir returns the directory that the DB was opened in.
func (db *DB) Dir() string {
	return db.dir
}

// Settings returns the world.Settings stored in the DB. If no settings are
// stored, or if they could not be read, empty Settings are returned.
func (db *DB) Settings() *world.Settings {
	data, err := db.ldb.Get([]byte(keySettings), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return &world.Settings{}
	} else if err != nil {
		db.conf.Log.Error("read settings: " + err.Error())
		return &world.Settings{}
	}
	var d levelData
	if err := nbt.UnmarshalEncoding(data, &d, nbt.LittleEndian); err != nil {
		db.conf.Log.Error("decode settings: " + err.Error())
		return &world.Settings{}
	}
	return &world.Settings{
		Name:  d.LevelName,
		Spawn: cube.Pos{int(d.SpawnX), int(d.SpawnY), int(d.SpawnZ)},
		Border: world.Border{
			Centre:   mgl64.Vec2{d.BorderCentreX, d.BorderCentreZ},
			Diameter: d.BorderDiameter,
		},
	}
}

// SaveSettings stores the world.Settings passed in the DB. The caller must
// hold the lock of s.
func (db *DB) SaveSettings(s *world.Settings) {
	d := levelData{
		LevelName:      s.Name,
		SpawnX:         int32(s.Spawn[0]),
		SpawnY:         int32(s.Spawn[1]),
		SpawnZ:         int32(s.Spawn[2]),
		BorderCentreX:  s.Border.Centre[0],
		BorderCentreZ:  s.Border.Centre[1],
		BorderDiameter: s.Border.Diameter,
	}
	data, err := nbt.MarshalEncoding(d, nbt.LittleEndian)
	if err != nil {
		db.conf.Log.Error("encode settings: " + err.Error())
		return
	}
	if err := db.ldb.Put([]byte(keySettings), data, nil); err != nil {
		db.conf.Log.Error("write settings: " + err.Error())
	}
}

// LoadColumn reads a world.Column from the DB at a position passed. If no
// column is stored at that position, world.ErrColumnNotFound is returned.
func (db *DB) LoadColumn(pos world.ChunkPos) (*world.Column, error) {
	data, err := db.ldb.Get(index(pos, keyBlocks), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, world.ErrColumnNotFound
	} else if err != nil {
		return nil, fmt.Errorf("read column: %w", err)
	}
	col, err := decodeColumn(pos, data)
	if err != nil {
		return nil, fmt.Errorf("decode column %v: %w", pos, err)
	}
	return col, nil
}

// StoreColumn stores a world.Column at a position passed. Columns without any
// blocks are removed from the DB.
func (db *DB) StoreColumn(pos world.ChunkPos, col *world.Column) error {
	key := index(pos, keyBlocks)
	if col == nil || col.Len() == 0 {
		if err := db.ldb.Delete(key, nil); err != nil {
			return fmt.Errorf("delete column: %w", err)
		}
		return nil
	}
	data, err := encodeColumn(pos, col)
	if err != nil {
		return fmt.Errorf("encode column: %w", err)
	}
	if err := db.ldb.Put(key, data, nil); err != nil {
		return fmt.Errorf("write column: %w", err)
	}
	return nil
}

// Close closes the provider, saving any file that might need to be saved,
// such as the level.dat.
func (db *DB) Close() error {
	return db.ldb.Close()
}

// index returns a byte buffer holding the written index of the chunk position
// passed, followed by the key tag.
func index(pos world.ChunkPos, tag byte) []byte {
	b := make([]byte, 9)
	binary.LittleEndian.PutUint32(b, uint32(pos[0]))
	binary.LittleEndian.PutUint32(b[4:], uint32(pos[1]))
	b[8] = tag
	return b
}
