package ports

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/pkg/tree"
)

// RunPlatformContract runs a suite of tests to verify that a Platform implementation
// adheres to the defined interface contract. The platform must start empty.
func RunPlatformContract[F any](t *testing.T, platform Platform[F]) {
	handle := func(ns, name string) *Handle[F] {
		return &Handle[F]{Name: name, Namespace: ns, Usage: []string{name}, Node: tree.NewLiteral[F](name)}
	}
	names := func() []string {
		inspector, ok := platform.(Inspector)
		if !ok {
			t.Skip("platform does not implement Inspector")
		}
		n := inspector.Names()
		slices.Sort(n)
		return n
	}

	t.Run("Register", func(t *testing.T) {
		require.True(t, platform.Register("a:ping", handle("a", "ping")))
		require.True(t, platform.Register("b:ping", handle("b", "ping")))
		assert.Equal(t, []string{"a:ping", "b:ping"}, names())
	})

	t.Run("Register Replaces", func(t *testing.T) {
		require.True(t, platform.Register("a:ping", handle("a", "ping")))
		assert.Equal(t, []string{"a:ping", "b:ping"}, names())
	})

	t.Run("Unregister", func(t *testing.T) {
		platform.Unregister("a:ping")
		platform.Unregister("never:registered")
		assert.Equal(t, []string{"b:ping"}, names())
		platform.Unregister("b:ping")
		assert.Empty(t, names())
	})
}
