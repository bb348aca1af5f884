package ports

import (
	"context"

	"github.com/aretw0/graft/pkg/tree"
)

// DefinitionLoader builds an origin command tree.
// This allows the source of definitions (files, memory, remote) to be decoupled.
type DefinitionLoader[S any] interface {
	// Load returns a fresh root holding every defined command.
	Load() (*tree.Node[S], error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying definitions change.
	// It abstracts away the specific event details, signaling only that a reload is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
