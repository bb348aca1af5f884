package ports

import "github.com/aretw0/graft/pkg/tree"

// Handle describes one registered top-level command.
type Handle[F any] struct {
	// Name is the bare command name.
	Name string `json:"name"`
	// Namespace qualifies the name; the qualified form is "namespace:name".
	Namespace string `json:"namespace"`
	// Usage lists the command lines reachable from the command.
	Usage []string `json:"usage"`
	// Node is the installed node. It is never serialized.
	Node *tree.Node[F] `json:"-"`
}

// Qualified returns "namespace:name".
func (h *Handle[F]) Qualified() string {
	return Qualify(h.Namespace, h.Name)
}

// Qualify joins a namespace and a command name.
func Qualify(namespace, name string) string {
	return namespace + ":" + name
}

// Platform is the host environment commands are installed into.
type Platform[F any] interface {
	// Register installs a command under its qualified name.
	// It reports false when the host refuses the command.
	Register(name string, handle *Handle[F]) bool

	// Unregister removes a command. Unknown names are ignored.
	Unregister(name string)
}

// Inspector is implemented by platforms that can list what they hold.
type Inspector interface {
	Names() []string
}
