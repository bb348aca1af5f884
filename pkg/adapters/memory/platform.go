package memory

import (
	"sync"

	"github.com/aretw0/graft/pkg/ports"
)

// Platform implements ports.Platform in memory.
// Safe for concurrent use.
type Platform[F any] struct {
	mu       sync.RWMutex
	handles  map[string]*ports.Handle[F]
	rejected map[string]bool
}

// NewPlatform creates an empty platform that refuses the given qualified names.
func NewPlatform[F any](reject ...string) *Platform[F] {
	p := &Platform[F]{
		handles:  make(map[string]*ports.Handle[F]),
		rejected: make(map[string]bool, len(reject)),
	}
	for _, name := range reject {
		p.rejected[name] = true
	}
	return p
}

// Reject makes later registrations of name fail.
func (p *Platform[F]) Reject(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rejected[name] = true
}

// Register stores the handle unless the name is rejected.
func (p *Platform[F]) Register(name string, handle *ports.Handle[F]) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rejected[name] {
		return false
	}
	p.handles[name] = handle
	return true
}

// Unregister removes the handle.
func (p *Platform[F]) Unregister(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.handles, name)
}

// Get returns the handle registered under name.
func (p *Platform[F]) Get(name string) (*ports.Handle[F], bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	h, ok := p.handles[name]
	return h, ok
}

// Names returns the registered names in no particular order.
func (p *Platform[F]) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.handles))
	for name := range p.handles {
		names = append(names, name)
	}
	return names
}
