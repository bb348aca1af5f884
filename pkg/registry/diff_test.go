package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/graft/pkg/ports"
	"github.com/aretw0/graft/pkg/registry"
)

func handle(name string, usage ...string) *ports.Handle[player] {
	return &ports.Handle[player]{Name: name, Namespace: "test", Usage: usage}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		old  []*ports.Handle[player]
		new  []*ports.Handle[player]
		want *registry.Diff
	}{
		{
			name: "Initial Load",
			new:  []*ports.Handle[player]{handle("give", "test:give <item>"), handle("ping", "test:ping")},
			want: &registry.Diff{Added: []string{"test:give", "test:ping"}},
		},
		{
			name: "No Changes",
			old:  []*ports.Handle[player]{handle("ping", "test:ping")},
			new:  []*ports.Handle[player]{handle("ping", "test:ping")},
			want: &registry.Diff{},
		},
		{
			name: "Added Removed Changed",
			old:  []*ports.Handle[player]{handle("give", "test:give <item>"), handle("stop", "test:stop")},
			new:  []*ports.Handle[player]{handle("give", "test:give <item> [count]"), handle("ping", "test:ping")},
			want: &registry.Diff{
				Added:   []string{"test:ping"},
				Removed: []string{"test:stop"},
				Changed: []string{"test:give"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := registry.Compare(tt.old, tt.new)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name == "No Changes", got.IsEmpty())
		})
	}
}

func TestDiff_NilIsEmpty(t *testing.T) {
	var d *registry.Diff
	assert.True(t, d.IsEmpty())
}
