package world

import (
	"errors"
	"fmt"
	"sync"

	"github.com/df-mc/safespot/server/block/cube"
)

// World implements a voxel world snapshot. It holds the blocks of all columns
// that have been loaded so far, the world settings and the Provider used to
// load and save them. World is safe for simultaneous calls. A nil *World is
// safe to use but not functional.
type World struct {
	conf Config
	ra   cube.Range

	set *Settings

	mu sync.RWMutex
	// chunks holds a cache of columns currently loaded. Columns are loaded
	// from the Provider the first time a block in them is requested.
	chunks map[ChunkPos]*Column
	// dirty holds the positions of all columns changed since the last call
	// to Save.
	dirty map[ChunkPos]struct{}

	closeOnce sync.Once
}

// New creates a new initialised world. The world may be used right away, but
// it will not be saved or loaded from files until it has been given a
// different provider than the default. (NopProvider) By default, the name of
// the world will be 'World'.
func New() *World {
	var conf Config
	return conf.New()
}

// Name returns the display name of the world.
func (w *World) Name() string {
	if w == nil {
		return ""
	}
	w.set.Lock()
	defer w.set.Unlock()
	return w.set.Name
}

// Range returns the range in blocks of the World (min and max).
func (w *World) Range() cube.Range {
	if w == nil {
		return cube.Range{}
	}
	return w.ra
}

// Border returns the horizontal boundary of the World.
func (w *World) Border() Border {
	if w == nil {
		return Border{}
	}
	w.set.Lock()
	defer w.set.Unlock()
	return w.set.Border
}

// SetBorder changes the horizontal boundary of the World.
func (w *World) SetBorder(b Border) {
	if w == nil {
		return
	}
	w.set.Lock()
	defer w.set.Unlock()
	w.set.Border = b
}

// Spawn returns the spawn of the world. Every new player will by default
// spawn on this position in the world when joining.
func (w *World) Spawn() cube.Pos {
	if w == nil {
		return cube.Pos{}
	}
	w.set.Lock()
	defer w.set.Unlock()
	return w.set.Spawn
}

// SetSpawn sets the spawn of the world to a different position. The spawn
// will be moved to the new position if an entity is spawned there.
func (w *World) SetSpawn(pos cube.Pos) {
	if w == nil {
		return
	}
	w.set.Lock()
	defer w.set.Unlock()
	w.set.Spawn = pos
}

// Block reads a block from the position passed. If a column is not yet
// loaded at that position, the column is loaded from the Provider. Block
// returns nil for positions outside the Range of the World and air for
// positions within the range where no block is set.
func (w *World) Block(pos cube.Pos) Block {
	if w == nil || pos.OutOfBounds(w.ra) {
		return nil
	}
	chunkPos := ChunkPosFromBlock(pos)

	w.mu.RLock()
	if col, ok := w.chunks[chunkPos]; ok {
		b, found := col.Block(pos)
		w.mu.RUnlock()
		if found {
			return b
		}
		return air
	}
	w.mu.RUnlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	if b, found := w.columnLocked(chunkPos).Block(pos); found {
		return b
	}
	return air
}

// SetBlock writes a block to the position passed. Setting nil is equivalent
// to setting air. Positions outside the Range of the World are ignored.
func (w *World) SetBlock(pos cube.Pos, b Block) {
	if w == nil || pos.OutOfBounds(w.ra) {
		return
	}
	chunkPos := ChunkPosFromBlock(pos)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.columnLocked(chunkPos).SetBlock(pos, b)
	w.dirty[chunkPos] = struct{}{}
}

// HighestBlock looks up the highest non-air block in the world at a specific
// x and z. The y value of that block is returned, or the minimum of the Range
// if the column holds no blocks.
func (w *World) HighestBlock(x, z int) int {
	if w == nil {
		return 0
	}
	pos := cube.Pos{x, w.ra.Max(), z}

	w.mu.Lock()
	defer w.mu.Unlock()
	col := w.columnLocked(ChunkPosFromBlock(pos))
	for ; pos[1] > w.ra.Min(); pos[1]-- {
		if _, ok := col.Block(pos); ok {
			return pos[1]
		}
	}
	return w.ra.Min()
}

// columnLocked returns the Column at pos, loading it from the Provider if it
// was not yet loaded. w.mu must be held for writing.
func (w *World) columnLocked(pos ChunkPos) *Column {
	if col, ok := w.chunks[pos]; ok {
		return col
	}
	col, err := w.conf.Provider.LoadColumn(pos)
	if err != nil {
		if !errors.Is(err, ErrColumnNotFound) {
			w.conf.Log.Error("load column: "+err.Error(), "X", pos[0], "Z", pos[1])
		}
		col = NewColumn()
	}
	w.chunks[pos] = col
	return col
}

// Save saves the settings and all columns changed since the last call to
// Save to the Provider of the World. Save is a no-op if the World is
// read-only.
func (w *World) Save() error {
	if w == nil || w.conf.ReadOnly {
		return nil
	}
	w.mu.Lock()
	var errs []error
	for pos := range w.dirty {
		if err := w.conf.Provider.StoreColumn(pos, w.chunks[pos]); err != nil {
			errs = append(errs, fmt.Errorf("store column %v: %w", pos, err))
			continue
		}
		delete(w.dirty, pos)
	}
	w.mu.Unlock()

	w.set.Lock()
	w.conf.Provider.SaveSettings(w.set)
	w.set.Unlock()
	return errors.Join(errs...)
}

// Close saves the World and closes its Provider. Calling Close more than once
// has no effect.
func (w *World) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.closeOnce.Do(func() {
		w.conf.Log.Debug("Saving world...", "name", w.Name())
		if saveErr := w.Save(); saveErr != nil {
			err = fmt.Errorf("save world: %w", saveErr)
		}
		if closeErr := w.conf.Provider.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close provider: %w", closeErr))
		}
	})
	return err
}
