package host

import (
	"slices"
	"sync"
)

// Directory is the live state suggestions are drawn from.
// Safe for concurrent use.
type Directory struct {
	mu      sync.RWMutex
	worlds  []string
	players []string
}

// NewDirectory creates a directory with the given worlds and no players.
func NewDirectory(worlds ...string) *Directory {
	return &Directory{worlds: slices.Clone(worlds)}
}

// DefaultDirectory is the directory the CLI starts with.
func DefaultDirectory() *Directory {
	d := NewDirectory("overworld", "nether", "the_end")
	d.Join("alice")
	d.Join("bob")
	return d
}

// Join marks a player online.
func (d *Directory) Join(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !slices.Contains(d.players, name) {
		d.players = append(d.players, name)
	}
}

// Leave marks a player offline.
func (d *Directory) Leave(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.players = slices.DeleteFunc(d.players, func(p string) bool { return p == name })
}

// Worlds returns the known worlds.
func (d *Directory) Worlds() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.worlds)
}

// Players returns the online players.
func (d *Directory) Players() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.players)
}

// HasWorld reports whether name is a known world.
func (d *Directory) HasWorld(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Contains(d.worlds, name)
}
