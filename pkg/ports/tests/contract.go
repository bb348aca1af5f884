package tests

import (
	"testing"

	"github.com/aretw0/graft/pkg/ports"
)

// DefinitionLoaderContractTest is a reusable test suite that verifies if an adapter complies with
// ports.DefinitionLoader. expected lists the top-level command names in definition order.
func DefinitionLoaderContractTest[S any](t *testing.T, loader ports.DefinitionLoader[S], expected []string) {
	t.Helper()

	// 1. Load returns a root
	t.Run("Load_Root", func(t *testing.T) {
		root, err := loader.Load()
		if err != nil {
			t.Fatalf("unexpected error loading definitions: %v", err)
		}
		if !root.IsRoot() {
			t.Errorf("expected a root node, got %s", root.Kind())
		}
	})

	// 2. Top-level commands keep their order
	t.Run("Load_Commands", func(t *testing.T) {
		root, err := loader.Load()
		if err != nil {
			t.Fatalf("unexpected error loading definitions: %v", err)
		}
		children := root.Children()
		if len(children) != len(expected) {
			t.Fatalf("expected %d commands, got %d", len(expected), len(children))
		}
		for i, name := range expected {
			if children[i].Name() != name {
				t.Errorf("command %d: got %q, want %q", i, children[i].Name(), name)
			}
		}
	})

	// 3. Every load builds a fresh tree
	t.Run("Load_Fresh", func(t *testing.T) {
		first, err := loader.Load()
		if err != nil {
			t.Fatalf("unexpected error loading definitions: %v", err)
		}
		second, err := loader.Load()
		if err != nil {
			t.Fatalf("unexpected error loading definitions: %v", err)
		}
		if first == second {
			t.Error("expected distinct roots for separate loads")
		}
	})
}
