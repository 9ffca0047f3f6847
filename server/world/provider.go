package world

import (
	"errors"
)

// ErrColumnNotFound is returned by a Provider if no column was stored at the
// requested position.
var ErrColumnNotFound = errors.New("column not found")

// Provider represents a value that may provide world data to a World value.
// It usually does the reading and writing of the world data so that the World
// may use it.
type Provider interface {
	// Settings loads the settings for a World and returns them. If the
	// Provider has no settings stored, a zero value is returned.
	Settings() *Settings
	// SaveSettings saves the settings of a World.
	SaveSettings(*Settings)
	// LoadColumn reads a world.Column from the DB at a position passed. If a
	// column is not stored, ErrColumnNotFound is returned.
	LoadColumn(pos ChunkPos) (*Column, error)
	// StoreColumn stores a world.Column at a position passed.
	StoreColumn(pos ChunkPos, col *Column) error
	// Close closes the provider, saving any data that has not yet been saved.
	Close() error
}

// NopProvider implements a Provider that does not perform any disk I/O. It
// generates values on the run and dynamically, instead of reading and writing
// data, and otherwise returns empty values.
type NopProvider struct{}

var _ Provider = NopProvider{}

func (NopProvider) Settings() *Settings                  { return &Settings{} }
func (NopProvider) SaveSettings(*Settings)               {}
func (NopProvider) LoadColumn(ChunkPos) (*Column, error) { return nil, ErrColumnNotFound }
func (NopProvider) StoreColumn(ChunkPos, *Column) error  { return nil }
func (NopProvider) Close() error                         { return nil }
