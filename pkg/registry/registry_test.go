package registry_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/pkg/adapters/memory"
	"github.com/aretw0/graft/pkg/dsl"
	"github.com/aretw0/graft/pkg/registry"
	"github.com/aretw0/graft/pkg/tree"
	"github.com/aretw0/graft/pkg/types"
)

type player struct{}

func run(tree.Context[player]) (int, error) { return 1, nil }

func command(t *testing.T, name string, result int) *tree.Node[player] {
	t.Helper()
	n, err := dsl.Literal[player](name).
		Executes(func(tree.Context[player]) (int, error) { return result, nil }).
		Then(dsl.Argument[player]("n", types.Int()).Executes(run)).
		Build()
	require.NoError(t, err)
	return n
}

func TestRoot_Namespaces(t *testing.T) {
	platform := memory.NewPlatform[player]()
	r := registry.New[player](platform, "core")

	require.NoError(t, r.Add("alpha", command(t, "ping", 1)))
	require.NoError(t, r.Add("beta", command(t, "ping", 2)))

	d := r.Dispatcher()
	res, err := d.Execute(d.Parse("alpha:ping", player{}))
	require.NoError(t, err)
	assert.Equal(t, 1, res)

	res, err = d.Execute(d.Parse("beta:ping", player{}))
	require.NoError(t, err)
	assert.Equal(t, 2, res)

	// The bare name follows the latest registration.
	assert.Same(t, r.Find("beta:ping"), r.Find("ping").Redirect())
	res, err = d.Execute(d.Parse("ping", player{}))
	require.NoError(t, err)
	assert.Equal(t, 2, res)

	assert.True(t, d.Parse("ping 4", player{}).Consumed())
	assert.ElementsMatch(t, []string{"alpha:ping", "beta:ping"}, platform.Names())
}

func TestRoot_ReplaceQualified(t *testing.T) {
	r := registry.New[player](memory.NewPlatform[player](), "core")

	require.NoError(t, r.AddChild(command(t, "ping", 1)))
	first := r.Find("core:ping")
	require.NoError(t, r.AddChild(command(t, "ping", 5)))

	assert.NotSame(t, first, r.Find("core:ping"))
	assert.Len(t, r.Commands(), 1)

	d := r.Dispatcher()
	res, err := d.Execute(d.Parse("core:ping", player{}))
	require.NoError(t, err)
	assert.Equal(t, 5, res)
}

func TestRoot_PlatformRefusal(t *testing.T) {
	r := registry.New[player](memory.NewPlatform[player]("core:bad"), "core")
	require.NoError(t, r.AddChild(command(t, "good", 1)))
	before := r.Root()

	err := r.AddChild(command(t, "bad", 1))
	var regErr *registry.RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "core:bad", regErr.Name)

	assert.Same(t, before, r.Root())
	assert.Nil(t, r.Find("bad"))
	assert.NotNil(t, r.Find("good"))
}

func TestRoot_InvalidCommands(t *testing.T) {
	r := registry.New[player](memory.NewPlatform[player](), "core")

	arg, err := tree.NewArgument[player]("x", types.Int())
	require.NoError(t, err)
	assert.ErrorIs(t, r.AddChild(arg), registry.ErrInvalidCommand)
	assert.ErrorIs(t, r.AddChild(tree.NewLiteral[player]("a:b")), registry.ErrInvalidCommand)
	assert.ErrorIs(t, r.Add("", tree.NewLiteral[player]("a")), registry.ErrInvalidCommand)
}

func TestRoot_Remove(t *testing.T) {
	platform := memory.NewPlatform[player]()
	r := registry.New[player](platform, "core")
	require.NoError(t, r.Add("alpha", command(t, "ping", 1)))
	require.NoError(t, r.Add("beta", command(t, "ping", 2)))

	assert.True(t, r.Remove("beta:ping"))
	assert.False(t, r.Remove("beta:ping"))
	assert.Nil(t, r.Find("beta:ping"))
	assert.Same(t, r.Find("alpha:ping"), r.Find("ping").Redirect())
	assert.Equal(t, []string{"alpha:ping"}, platform.Names())

	assert.True(t, r.Remove("alpha:ping"))
	assert.Nil(t, r.Find("ping"))
	assert.Empty(t, r.Commands())
}

func TestRoot_Lookup(t *testing.T) {
	r := registry.New[player](memory.NewPlatform[player](), "core")
	require.NoError(t, r.AddChild(command(t, "ping", 1)))

	h, ok := r.Lookup("ping")
	require.True(t, ok)
	assert.Equal(t, "core:ping", h.Qualified())
	assert.Equal(t, []string{"core:ping", "core:ping <n>"}, h.Usage)

	_, ok = r.Lookup("pong")
	assert.False(t, ok)
}

func TestRoot_Closest(t *testing.T) {
	r := registry.New[player](memory.NewPlatform[player](), "core")
	require.NoError(t, r.AddChild(command(t, "teleport", 1)))
	require.NoError(t, r.AddChild(command(t, "give", 1)))

	name, ok := r.Closest("telport")
	require.True(t, ok)
	assert.Equal(t, "teleport", name)

	_, ok = r.Closest("completely-different")
	assert.False(t, ok)
}

func TestRoot_ConcurrentReads(t *testing.T) {
	r := registry.New[player](memory.NewPlatform[player](), "core")
	require.NoError(t, r.AddChild(command(t, "ping", 1)))

	extra := make([]*tree.Node[player], 8)
	for i := range extra {
		extra[i] = command(t, "ping", 2)
	}

	var wg sync.WaitGroup
	for i := range extra {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d := r.Dispatcher()
			_ = d.CompletionSuggestions(d.Parse("core:ping ", player{}))
		}()
		go func() {
			defer wg.Done()
			_ = r.Add("extra", extra[i])
		}()
	}
	wg.Wait()
	assert.NotNil(t, r.Find("extra:ping"))
}
