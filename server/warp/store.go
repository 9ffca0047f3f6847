package warp

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/df-mc/safespot/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml"
)

var (
	// ErrUnavailable is returned when the Store is not configured.
	ErrUnavailable = errors.New("warps are not configured")
	// ErrInvalidWarpName is returned when a warp name is empty or holds
	// whitespace.
	ErrInvalidWarpName = errors.New("invalid warp name")
	// ErrUnknownWarp is returned when no warp with a name exists.
	ErrUnknownWarp = errors.New("unknown warp")
)

// Store holds all warps of a server. Warps are persisted in a TOML file after
// every change. A Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	warps    map[string]Warp
	filePath string
}

type warpFile struct {
	Warps []warpEntry `toml:"warp"`
}

type warpEntry struct {
	Name     string  `toml:"name"`
	World    string  `toml:"world"`
	X        float64 `toml:"x"`
	Y        float64 `toml:"y"`
	Z        float64 `toml:"z"`
	Yaw      float64 `toml:"yaw"`
	Pitch    float64 `toml:"pitch"`
	Category string  `toml:"category,omitempty"`
	Cost     int     `toml:"cost"`
}

// Load loads the warps stored in the file at the provided path. If the file
// does not exist yet, it will be created without any warps.
func Load(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("warp file path must not be empty")
	}
	s := &Store{warps: make(map[string]Warp), filePath: path}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reloadLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// Set stores w under the name passed, replacing any warp with the same name.
// The name of w is replaced with name.
func (s *Store) Set(name string, w Warp) error {
	if s == nil {
		return ErrUnavailable
	}
	name = strings.TrimSpace(name)
	if !validName(name) {
		return ErrInvalidWarpName
	}
	w.Name = name
	key := normalizeName(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	previous, existed := s.warps[key]
	s.warps[key] = w
	if err := s.writeLocked(); err != nil {
		if existed {
			s.warps[key] = previous
		} else {
			delete(s.warps, key)
		}
		return err
	}
	return nil
}

// Get returns the warp with the name passed.
func (s *Store) Get(name string) (Warp, bool) {
	if s == nil {
		return Warp{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.warps[normalizeName(name)]
	return w, ok
}

// Exists reports if a warp with the name passed exists.
func (s *Store) Exists(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Remove deletes the warp with the name passed. The returned bool indicates if
// the warp existed before the call.
func (s *Store) Remove(name string) (bool, error) {
	if s == nil {
		return false, ErrUnavailable
	}
	key := normalizeName(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	original, exists := s.warps[key]
	if !exists {
		return false, nil
	}
	delete(s.warps, key)
	if err := s.writeLocked(); err != nil {
		s.warps[key] = original
		return false, err
	}
	return true, nil
}

// SetCost changes the cost of the warp with the name passed.
func (s *Store) SetCost(name string, cost int) error {
	return s.update(name, func(w *Warp) { w.Cost = cost })
}

// RemoveCost resets the cost of the warp with the name passed, so that the
// default cost applies to it.
func (s *Store) RemoveCost(name string) error {
	return s.SetCost(name, -1)
}

// SetCategory moves the warp with the name passed to a category. An empty
// category makes the warp uncategorised.
func (s *Store) SetCategory(name, category string) error {
	return s.update(name, func(w *Warp) { w.Category = strings.TrimSpace(category) })
}

// update changes the warp with the name passed using f and writes the result
// to the file.
func (s *Store) update(name string, f func(w *Warp)) error {
	if s == nil {
		return ErrUnavailable
	}
	key := normalizeName(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	original, ok := s.warps[key]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownWarp, name)
	}
	w := original
	f(&w)
	s.warps[key] = w
	if err := s.writeLocked(); err != nil {
		s.warps[key] = original
		return err
	}
	return nil
}

// Names returns the names of all warps in a case-insensitive sorted order.
func (s *Store) Names() []string {
	warps := s.filter(func(Warp) bool { return true })
	names := make([]string, len(warps))
	for i, w := range warps {
		names[i] = w.Name
	}
	return names
}

// Uncategorised returns all warps without a category, sorted by name.
func (s *Store) Uncategorised() []Warp {
	return s.filter(func(w Warp) bool { return w.Category == "" })
}

// Category returns all warps in the category passed, sorted by name.
// Categories are compared case-insensitively.
func (s *Store) Category(category string) []Warp {
	key := normalizeName(category)
	return s.filter(func(w Warp) bool { return w.Category != "" && normalizeName(w.Category) == key })
}

// Categorised returns all warps that have a category, grouped by category.
// Categories are grouped case-insensitively and keyed by the category name of
// the first warp in them. The warps of each category are sorted by name.
func (s *Store) Categorised() map[string][]Warp {
	m := make(map[string][]Warp)
	names := make(map[string]string)
	for _, w := range s.filter(func(w Warp) bool { return w.Category != "" }) {
		key := normalizeName(w.Category)
		name, ok := names[key]
		if !ok {
			name = w.Category
			names[key] = name
		}
		m[name] = append(m[name], w)
	}
	return m
}

// filter returns all warps for which f returns true, sorted by name.
func (s *Store) filter(f func(w Warp) bool) []Warp {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	warps := slices.Collect(maps.Values(s.warps))
	warps = slices.DeleteFunc(warps, func(w Warp) bool { return !f(w) })
	sortWarps(warps)
	return warps
}

func (s *Store) reloadLocked() error {
	data := warpFile{}
	contents, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.warps = make(map[string]Warp)
			return s.writeLocked()
		}
		return fmt.Errorf("read warps: %w", err)
	}
	if len(contents) != 0 {
		if err := toml.Unmarshal(contents, &data); err != nil {
			return fmt.Errorf("decode warps: %w", err)
		}
	}
	s.warps = make(map[string]Warp, len(data.Warps))
	for _, e := range data.Warps {
		name := strings.TrimSpace(e.Name)
		if !validName(name) {
			continue
		}
		s.warps[normalizeName(name)] = Warp{
			Name:     name,
			World:    e.World,
			Position: mgl64.Vec3{e.X, e.Y, e.Z},
			Rotation: cube.Rotation{e.Yaw, e.Pitch},
			Category: e.Category,
			Cost:     e.Cost,
		}
	}
	return nil
}

func (s *Store) writeLocked() error {
	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return fmt.Errorf("create warp directory: %w", err)
		}
	}
	warps := slices.Collect(maps.Values(s.warps))
	sortWarps(warps)
	data := warpFile{Warps: make([]warpEntry, len(warps))}
	for i, w := range warps {
		data.Warps[i] = warpEntry{
			Name:     w.Name,
			World:    w.World,
			X:        w.Position[0],
			Y:        w.Position[1],
			Z:        w.Position[2],
			Yaw:      w.Rotation[0],
			Pitch:    w.Rotation[1],
			Category: w.Category,
			Cost:     w.Cost,
		}
	}
	encoded, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode warps: %w", err)
	}
	if err := os.WriteFile(s.filePath, encoded, 0644); err != nil {
		return fmt.Errorf("write warps: %w", err)
	}
	return nil
}

func sortWarps(warps []Warp) {
	slices.SortFunc(warps, func(a, b Warp) int {
		lowerA, lowerB := normalizeName(a.Name), normalizeName(b.Name)
		if lowerA == lowerB {
			return strings.Compare(a.Name, b.Name)
		}
		return strings.Compare(lowerA, lowerB)
	})
}
