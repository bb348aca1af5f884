package mapper

import (
	"errors"
	"strings"

	"github.com/aretw0/graft/pkg/dispatch"
	"github.com/aretw0/graft/pkg/observability"
	"github.com/aretw0/graft/pkg/suggestion"
	"github.com/aretw0/graft/pkg/tree"
	"github.com/aretw0/graft/pkg/types"
)

// Strategy is how a mapped argument node gets its suggestions.
type Strategy int

const (
	// StrategyNone leaves suggestions to the foreign dispatcher.
	StrategyNone Strategy = iota
	// StrategyShared uses a provider registered with Share.
	StrategyShared
	// StrategyReparse rebuilds an origin context for every request.
	StrategyReparse
)

func (s Strategy) String() string {
	switch s {
	case StrategyShared:
		return "shared"
	case StrategyReparse:
		return "reparse"
	default:
		return "none"
	}
}

// StrategyFor reports which strategy an origin argument node maps to.
func (m *Mapper[O, F]) StrategyFor(n *tree.Node[O]) Strategy {
	_, s := m.resolve(n, "")
	return s
}

func (m *Mapper[O, F]) resolve(n *tree.Node[O], path string) (tree.SuggestionProvider[F], Strategy) {
	if n.Kind() != tree.KindArgument {
		return nil, StrategyNone
	}
	if custom := n.Suggestions(); custom != nil {
		if k, ok := custom.(tree.Keyed); ok {
			if p, ok := m.shared[k.SharedKey()]; ok {
				return p, StrategyShared
			}
		}
		return &reparse[O, F]{mapper: m, path: path, delegate: custom.Suggestions}, StrategyReparse
	}
	if !types.IsPrimitive(n.Type()) {
		if s, ok := types.SuggesterOf(n.Type()); ok {
			delegate := func(ctx tree.Context[O], b *suggestion.Builder) (*suggestion.Suggestions, error) {
				return s.Suggest(ctx, b)
			}
			return &reparse[O, F]{mapper: m, path: path, delegate: delegate}, StrategyReparse
		}
	}
	return nil, StrategyNone
}

// reparse answers a foreign suggestion request by parsing the same input with the origin dispatcher
// and asking the origin provider.
type reparse[O, F any] struct {
	mapper   *Mapper[O, F]
	path     string
	delegate func(ctx tree.Context[O], b *suggestion.Builder) (*suggestion.Suggestions, error)
}

func (r *reparse[O, F]) Suggestions(ctx tree.Context[F], b *suggestion.Builder) (*suggestion.Suggestions, error) {
	m := r.mapper
	source := m.convert(ctx.Source())
	shift := m.qualifierLen(ctx.Input())
	input := ctx.Input()[shift:]

	parsed, err := m.origin.Parse(input, source).Context()
	if err != nil {
		return r.degrade(err), nil
	}
	// Offsets seen by the delegate refer to the stripped input.
	ob := b
	if shift > 0 && b.Start() >= shift {
		ob = suggestion.NewBuilder(b.Input()[shift:], b.Start()-shift)
	}
	s, err := r.delegate(parsed, ob)
	if err != nil {
		return r.degrade(err), nil
	}
	m.metrics.ObserveSuggestion(observability.OutcomeOK)
	if ob != b {
		s = rebase(s, shift)
	}
	return s, nil
}

// rebase moves every range of s forward by n bytes.
func rebase(s *suggestion.Suggestions, n int) *suggestion.Suggestions {
	if s.IsEmpty() {
		return suggestion.Empty()
	}
	out := &suggestion.Suggestions{
		Range: suggestion.Range{Start: s.Range.Start + n, End: s.Range.End + n},
		List:  make([]suggestion.Suggestion, len(s.List)),
	}
	for i, sg := range s.List {
		sg.Range = suggestion.Range{Start: sg.Range.Start + n, End: sg.Range.End + n}
		out.List[i] = sg
	}
	return out
}

func (r *reparse[O, F]) degrade(err error) *suggestion.Suggestions {
	m := r.mapper
	if errors.Is(err, dispatch.ErrIncompleteParse) || errors.Is(err, dispatch.ErrArgumentNotFound) {
		m.logger.Debug("suggestion input not parsable yet", "path", r.path, "err", err)
		m.metrics.ObserveSuggestion(observability.OutcomeIncomplete)
	} else {
		m.logger.Warn("origin suggestion provider failed", "path", r.path, "err", err)
		m.metrics.ObserveSuggestion(observability.OutcomeFailed)
	}
	return suggestion.Empty()
}

// qualifierLen returns the length of the "namespace:" prefix of the first word when the origin
// tree only knows the bare command name, and 0 otherwise.
func (m *Mapper[O, F]) qualifierLen(input string) int {
	root := m.origin.Root()
	head, _, _ := strings.Cut(input, " ")
	if root.Child(head) != nil {
		return 0
	}
	if ns, bare, ok := strings.Cut(head, ":"); ok && root.Child(bare) != nil {
		return len(ns) + 1
	}
	return 0
}
