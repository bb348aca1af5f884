package memory

import (
	"github.com/aretw0/graft/pkg/dsl"
	"github.com/aretw0/graft/pkg/tree"
)

// Loader implements ports.DefinitionLoader from commands declared in Go.
type Loader[S any] struct {
	commands []*dsl.NodeBuilder[S]
}

// NewLoader creates a loader over the given command builders.
func NewLoader[S any](commands ...*dsl.NodeBuilder[S]) *Loader[S] {
	return &Loader[S]{commands: commands}
}

// Load builds a fresh tree on every call.
func (l *Loader[S]) Load() (*tree.Node[S], error) {
	return dsl.Tree(l.commands...)
}
