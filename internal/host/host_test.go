package host_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/internal/host"
	"github.com/aretw0/graft/pkg/adapters/memory"
	"github.com/aretw0/graft/pkg/dispatch"
	"github.com/aretw0/graft/pkg/mapper"
	"github.com/aretw0/graft/pkg/types"
)

func TestParseListener(t *testing.T) {
	l := host.ParseListener("ana:teleport,gamemode")
	assert.Equal(t, "ana", l.Session)
	assert.True(t, l.Sender.Can("teleport"))
	assert.False(t, l.Sender.Can("ban"))

	assert.True(t, host.ParseListener("root:*").Sender.Can("anything"))
	assert.Empty(t, host.ParseListener("guest").Sender.Permissions)
}

func TestWorld(t *testing.T) {
	world := host.World(host.DefaultDirectory())

	v, err := world.Parse(types.NewReader("nether"))
	require.NoError(t, err)
	assert.Equal(t, "nether", v)

	r := types.NewReader("moon")
	_, err = world.Parse(r)
	assert.Error(t, err)
	assert.Equal(t, 0, r.Cursor())

	mapped, err := mapper.Translate(world, "teleport world")
	require.NoError(t, err)
	assert.Equal(t, "word", mapped.Name())
}

func TestActions(t *testing.T) {
	var out bytes.Buffer
	root, err := host.Loader(host.DefaultDirectory(), &out).Load()
	require.NoError(t, err)
	d := dispatch.New(root)
	ana := host.Sender{Name: "ana", Permissions: []string{"teleport"}}

	_, err = d.Execute(d.Parse("tp nether", ana))
	require.NoError(t, err)
	_, err = d.Execute(d.Parse("go the_end bob", ana))
	require.NoError(t, err)
	_, err = d.Execute(d.Parse("wait", ana))
	require.NoError(t, err)
	res, err := d.Execute(d.Parse("wait 90s", ana))
	require.NoError(t, err)
	assert.Equal(t, 90, res)
	_, err = d.Execute(d.Parse("say hello there", ana))
	require.NoError(t, err)

	assert.Equal(t, "ana -> nether\nbob -> the_end\nwaiting 1m0s\nwaiting 1m30s\n[ana] hello there\n", out.String())
}

func TestSynchronizedDemo(t *testing.T) {
	dir := host.DefaultDirectory()
	root, err := host.Loader(dir, &bytes.Buffer{}).Load()
	require.NoError(t, err)

	s, err := graft.New(root, memory.NewPlatform[host.Listener](), host.ToSender, graft.WithNamespace("demo"))
	require.NoError(t, err)
	for key, p := range host.Native(dir) {
		s.Share(key, p)
	}
	require.NoError(t, s.Synchronize())

	op := host.ParseListener("ana:*")
	guest := host.ParseListener("guest")

	assert.Equal(t, []string{"nether"}, s.Suggest("tp n", op).Texts())
	assert.Equal(t, []string{"nether"}, s.Suggest("go n", op).Texts())
	assert.Empty(t, s.Suggest("tp n", guest).Texts())
	assert.Equal(t, []string{"alice"}, s.Suggest("teleport nether a", op).Texts())
	assert.Equal(t, []string{"5h", "5m", "5ms", "5s"}, s.Suggest("wait 5", op).Texts())

	player := s.Registry().Find("demo:teleport").Child("world").Child("player")
	require.NotNil(t, player)
	assert.Equal(t, mapper.StrategyShared, s.Mapper().StrategyFor(s.Origin().Find("teleport", "world", "player")))
}
