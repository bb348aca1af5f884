package mapper_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/pkg/dispatch"
	"github.com/aretw0/graft/pkg/dsl"
	"github.com/aretw0/graft/pkg/mapper"
	"github.com/aretw0/graft/pkg/suggestion"
	"github.com/aretw0/graft/pkg/tree"
	"github.com/aretw0/graft/pkg/types"
)

type sender struct {
	name string
	op   bool
}

type player struct {
	id    string
	admin bool
}

func convert(p player) sender { return sender{name: p.id, op: p.admin} }

func run(tree.Context[sender]) (int, error) { return 1, nil }

// target suggests words that extend what is typed, using the "mode" argument when present.
var target = types.Custom("target",
	func(r *types.Reader) (any, error) { return r.ReadUnquotedString(), nil },
	types.WithSuggest(func(args types.Arguments, b *suggestion.Builder) (*suggestion.Suggestions, error) {
		prefix := "arg-pre"
		if args.IsPresent("mode") {
			mode, err := dispatch.Get[string](args, "mode")
			if err != nil {
				return nil, err
			}
			prefix = mode + "-pre"
		}
		return b.SuggestMatching(prefix+"-one", prefix+"-two", "other").Build(), nil
	}),
	types.WithMapped(types.Word()),
)

func newMapper(t *testing.T, cmds ...*dsl.NodeBuilder[sender]) (*mapper.Mapper[sender, player], *tree.Node[sender]) {
	t.Helper()
	root, err := dsl.Tree(cmds...)
	require.NoError(t, err)
	return mapper.New(dispatch.New(root), convert), root
}

func mount(t *testing.T, nodes []*tree.Node[player]) *dispatch.Dispatcher[player] {
	t.Helper()
	root := tree.NewRoot[player]()
	for _, n := range nodes {
		require.NoError(t, root.AddChild(n))
	}
	return dispatch.New(root)
}

func shape[S any](root *tree.Node[S]) []string {
	var out []string
	_ = tree.Walk(root, func(path []string, n *tree.Node[S]) error {
		if !n.IsRoot() {
			out = append(out, n.Kind().String()+":"+strings.Join(path, "/"))
		}
		return nil
	})
	return out
}

func TestMap_Topology(t *testing.T) {
	m, origin := newMapper(t,
		dsl.Literal[sender]("give").Then(
			dsl.Argument[sender]("item", types.Word()).Then(
				dsl.Argument[sender]("count", types.IntRange(1, 64)),
				dsl.Literal[sender]("all"),
			),
		),
		dsl.Literal[sender]("say").Then(dsl.Argument[sender]("msg", types.Greedy())),
		dsl.Literal[sender]("list"),
	)

	nodes, err := m.Map(origin)
	require.NoError(t, err)
	foreign := mount(t, nodes).Root()

	assert.Equal(t, tree.Count(origin), tree.Count(foreign))
	assert.Equal(t, shape(origin), shape(foreign))
}

func TestMap_RedirectsResolveInAnyOrder(t *testing.T) {
	m, origin := newMapper(t,
		dsl.Literal[sender]("forward").RedirectTo("target"),
		dsl.Literal[sender]("target").Then(dsl.Argument[sender]("x", types.Int()).Executes(run)),
		dsl.Literal[sender]("backward").RedirectTo("target"),
	)

	nodes, err := m.Map(origin)
	require.NoError(t, err)
	foreign := mount(t, nodes)

	mappedTarget := foreign.Find("target")
	require.NotNil(t, mappedTarget)
	assert.Same(t, mappedTarget, foreign.Find("forward").Redirect())
	assert.Same(t, mappedTarget, foreign.Find("backward").Redirect())

	parse := foreign.Parse("forward 3", player{})
	assert.True(t, parse.Consumed())
}

func TestMap_DanglingRedirect(t *testing.T) {
	ghost := tree.NewLiteral[sender]("ghost")
	m, origin := newMapper(t, dsl.Literal[sender]("haunt").Redirect(ghost))

	nodes, err := m.Map(origin)
	assert.Nil(t, nodes)
	var dangling *mapper.DanglingRedirectError
	require.ErrorAs(t, err, &dangling)
	assert.Equal(t, "haunt", dangling.Path)
	assert.Equal(t, "ghost", dangling.Target)
}

func TestMap_UnsupportedType(t *testing.T) {
	opaque := types.Custom("opaque", func(r *types.Reader) (any, error) { return r.ReadUnquotedString(), nil })
	m, origin := newMapper(t,
		dsl.Literal[sender]("give").Then(dsl.Argument[sender]("item", opaque)),
	)

	nodes, err := m.Map(origin)
	assert.Nil(t, nodes)
	var unsupported *mapper.UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "give item", unsupported.Path)
	assert.Equal(t, "opaque", unsupported.Type)
}

func TestMap_RootNotMappable(t *testing.T) {
	m, origin := newMapper(t, dsl.Literal[sender]("run").RedirectTo(""))

	_, err := m.MapNode(origin)
	var rootErr *mapper.RootNotMappableError
	assert.ErrorAs(t, err, &rootErr)

	_, err = m.Map(origin)
	require.ErrorAs(t, err, &rootErr)
	assert.Equal(t, "run", rootErr.Path)
}

func TestMap_Requirements(t *testing.T) {
	m, origin := newMapper(t,
		dsl.Literal[sender]("stop").Requires(func(s sender) bool { return s.op }).Executes(run),
		dsl.Literal[sender]("help").Executes(run),
	)

	nodes, err := m.Map(origin)
	require.NoError(t, err)
	foreign := mount(t, nodes)

	stop := foreign.Find("stop")
	assert.False(t, stop.CanUse(player{id: "guest"}))
	assert.True(t, stop.CanUse(player{id: "root", admin: true}))
	assert.Nil(t, foreign.Find("help").Requirement())
}

func TestMap_Execution(t *testing.T) {
	m, origin := newMapper(t,
		dsl.Literal[sender]("ping").Executes(run).Then(dsl.Literal[sender]("loud")),
	)

	nodes, err := m.Map(origin)
	require.NoError(t, err)
	foreign := mount(t, nodes)
	assert.NotNil(t, foreign.Find("ping").Command())
	assert.Nil(t, foreign.Find("ping", "loud").Command())

	calls := 0
	m.WithExecution(func(n *tree.Node[sender]) tree.Command[player] {
		return func(tree.Context[player]) (int, error) {
			calls++
			return 7, nil
		}
	})
	nodes, err = m.Map(origin)
	require.NoError(t, err)
	foreign = mount(t, nodes)
	res, err := foreign.Execute(foreign.Parse("ping loud", player{}))
	require.NoError(t, err)
	assert.Equal(t, 7, res)
	assert.Equal(t, 1, calls)
}

func TestMapNode(t *testing.T) {
	m, origin := newMapper(t,
		dsl.Literal[sender]("a").Then(dsl.Literal[sender]("b").Then(dsl.Argument[sender]("c", types.Bool()))),
	)

	mapped, err := m.MapNode(origin.Child("a").Child("b"))
	require.NoError(t, err)
	assert.Equal(t, "b", mapped.Name())
	assert.NotNil(t, mapped.Child("c"))
}

func TestStrategy(t *testing.T) {
	shared := tree.NewShared[sender]("worlds", nil)
	custom := tree.SuggestionFunc[sender](func(_ tree.Context[sender], b *suggestion.Builder) (*suggestion.Suggestions, error) {
		return b.Build(), nil
	})
	m, origin := newMapper(t,
		dsl.Literal[sender]("cmd").Then(
			dsl.Argument[sender]("world", types.Word()).Suggests(shared),
			dsl.Argument[sender]("custom", types.Word()).Suggests(custom),
			dsl.Argument[sender]("target", target),
			dsl.Argument[sender]("plain", types.Int()),
		),
	)
	native := tree.NewShared[player]("native-worlds", nil)
	m.Share("worlds", native)

	cmd := origin.Child("cmd")
	assert.Equal(t, mapper.StrategyShared, m.StrategyFor(cmd.Child("world")))
	assert.Equal(t, mapper.StrategyReparse, m.StrategyFor(cmd.Child("custom")))
	assert.Equal(t, mapper.StrategyReparse, m.StrategyFor(cmd.Child("target")))
	assert.Equal(t, mapper.StrategyNone, m.StrategyFor(cmd.Child("plain")))
	assert.Equal(t, mapper.StrategyNone, m.StrategyFor(cmd))

	nodes, err := m.Map(origin)
	require.NoError(t, err)
	mapped := nodes[0]
	assert.Same(t, native, mapped.Child("world").Suggestions())
	assert.Nil(t, mapped.Child("plain").Suggestions())
	assert.Equal(t, "word", mapped.Child("target").Type().Name())
}

func TestReparse_MatchesOriginSuggestions(t *testing.T) {
	m, origin := newMapper(t,
		dsl.Literal[sender]("cmd").Then(dsl.Argument[sender]("target", target).Executes(run)),
		dsl.Literal[sender]("mode").Then(
			dsl.Argument[sender]("mode", types.Word()).Then(dsl.Argument[sender]("target", target)),
		),
	)
	nodes, err := m.Map(origin)
	require.NoError(t, err)
	foreign := mount(t, nodes)
	fsrc := player{id: "ana"}

	for _, tc := range []struct {
		input string
		start int
	}{
		{"cmd arg-pre", 4},
		{"mode fast fast-p", 10},
	} {
		t.Run(tc.input, func(t *testing.T) {
			got := foreign.CompletionSuggestions(foreign.Parse(tc.input, fsrc))

			originCtx, err := m.Origin().Parse(tc.input, convert(fsrc)).Context()
			require.NoError(t, err)
			want, err := target.Suggest(originCtx, suggestion.NewBuilder(tc.input, tc.start))
			require.NoError(t, err)

			assert.Equal(t, want, got)
			assert.Len(t, got.List, 2)
		})
	}
}

type fakeContext struct {
	input  string
	source player
}

func (c fakeContext) Input() string                    { return c.input }
func (c fakeContext) Source() player                   { return c.source }
func (c fakeContext) Argument(name string) (any, error) { return nil, dispatch.ErrArgumentNotFound }
func (c fakeContext) IsPresent(string) bool            { return false }

func TestReparse_Degrades(t *testing.T) {
	failing := tree.SuggestionFunc[sender](func(tree.Context[sender], *suggestion.Builder) (*suggestion.Suggestions, error) {
		return nil, errors.New("backend down")
	})
	missing := tree.SuggestionFunc[sender](func(ctx tree.Context[sender], b *suggestion.Builder) (*suggestion.Suggestions, error) {
		if _, err := ctx.Argument("nope"); err != nil {
			return nil, err
		}
		return b.Build(), nil
	})
	m, origin := newMapper(t,
		dsl.Literal[sender]("fail").Then(dsl.Argument[sender]("x", types.Word()).Suggests(failing)),
		dsl.Literal[sender]("miss").Then(dsl.Argument[sender]("x", types.Word()).Suggests(missing)),
		dsl.Literal[sender]("cmd").Then(dsl.Argument[sender]("target", target)),
	)
	nodes, err := m.Map(origin)
	require.NoError(t, err)
	foreign := mount(t, nodes)

	for _, input := range []string{"fail a", "miss a"} {
		parse := foreign.Parse(input, player{})
		assert.True(t, foreign.CompletionSuggestions(parse).IsEmpty(), input)
	}

	provider := foreign.Find("cmd", "target").Suggestions()
	s, err := provider.Suggestions(fakeContext{input: "unknown thing"}, suggestion.NewBuilder("unknown thing", 8))
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
}

func TestReparse_QualifiedInput(t *testing.T) {
	m, origin := newMapper(t,
		dsl.Literal[sender]("cmd").Then(dsl.Argument[sender]("target", target)),
	)
	nodes, err := m.Map(origin)
	require.NoError(t, err)

	provider := nodes[0].Child("target").Suggestions()
	input := "ns:cmd arg-pre"
	s, err := provider.Suggestions(fakeContext{input: input}, suggestion.NewBuilder(input, 7))
	require.NoError(t, err)
	assert.Equal(t, []string{"arg-pre-one", "arg-pre-two"}, s.Texts())
}

func TestReparse_Concurrent(t *testing.T) {
	m, origin := newMapper(t,
		dsl.Literal[sender]("cmd").Then(dsl.Argument[sender]("target", target).Executes(run)),
		dsl.Literal[sender]("mode").Then(
			dsl.Argument[sender]("mode", types.Word()).Then(dsl.Argument[sender]("target", target)),
		),
	)
	nodes, err := m.Map(origin)
	require.NoError(t, err)
	foreign := mount(t, nodes)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mode := fmt.Sprintf("m%d", i)
			for range 20 {
				s := foreign.CompletionSuggestions(foreign.Parse("cmd arg-pre", player{id: mode}))
				assert.Equal(t, []string{"arg-pre-one", "arg-pre-two"}, s.Texts())

				s = foreign.CompletionSuggestions(foreign.Parse("mode "+mode+" "+mode+"-p", player{id: mode}))
				assert.Equal(t, []string{mode + "-pre-one", mode + "-pre-two"}, s.Texts())
			}
		}()
	}
	wg.Wait()
}

func TestReparse_QualifiedInputOffsets(t *testing.T) {
	// echo repeats the text of the "mode" argument, read through the builder's input.
	echo := tree.SuggestionFunc[sender](func(ctx tree.Context[sender], b *suggestion.Builder) (*suggestion.Suggestions, error) {
		dctx, ok := ctx.(*dispatch.Context[sender])
		require.True(t, ok)
		arg, ok := dctx.ParsedArgument("mode")
		require.True(t, ok)
		return b.Suggest(arg.Range.Get(b.Input()) + "-again").Build(), nil
	})
	m, origin := newMapper(t,
		dsl.Literal[sender]("cmd").Then(
			dsl.Argument[sender]("mode", types.Word()).Then(
				dsl.Argument[sender]("target", types.Word()).Suggests(echo),
			),
		),
	)
	nodes, err := m.Map(origin)
	require.NoError(t, err)

	provider := nodes[0].Child("mode").Child("target").Suggestions()
	input := "ns:cmd fast f"
	s, err := provider.Suggestions(fakeContext{input: input}, suggestion.NewBuilder(input, 12))
	require.NoError(t, err)

	require.Len(t, s.List, 1)
	assert.Equal(t, "fast-again", s.List[0].Text)
	assert.Equal(t, suggestion.Range{Start: 12, End: 13}, s.Range)
	assert.Equal(t, "ns:cmd fast fast-again", s.List[0].Apply(input))
}
