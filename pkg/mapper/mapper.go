package mapper

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/graft/pkg/dispatch"
	"github.com/aretw0/graft/pkg/observability"
	"github.com/aretw0/graft/pkg/tree"
)

// ExecutionFunc chooses the foreign command for a mapped node.
// Returning nil leaves the mapped node non-executable.
type ExecutionFunc[O, F any] func(origin *tree.Node[O]) tree.Command[F]

// Inert is the command given to mapped nodes whose origin is executable. It does nothing.
func Inert[F any](tree.Context[F]) (int, error) { return 0, nil }

// Option configures a Mapper.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// WithLogger sets the logger. Mapping passes log at debug and info, degraded suggestions at warn.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics sets where pass and suggestion metrics are recorded.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Mapper maps origin trees to foreign trees.
// Share and WithExecution must be called before mapping; a Mapper is not safe for concurrent passes.
type Mapper[O, F any] struct {
	origin    *dispatch.Dispatcher[O]
	convert   func(F) O
	shared    map[string]tree.SuggestionProvider[F]
	execution ExecutionFunc[O, F]
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Mapper. origin is used to reparse input for suggestions, convert turns a foreign
// source into an origin source for requirements and suggestions.
func New[O, F any](origin *dispatch.Dispatcher[O], convert func(F) O, opts ...Option) *Mapper[O, F] {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	return &Mapper[O, F]{
		origin:  origin,
		convert: convert,
		shared:  make(map[string]tree.SuggestionProvider[F]),
		execution: func(n *tree.Node[O]) tree.Command[F] {
			if n.Command() == nil {
				return nil
			}
			return Inert[F]
		},
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Share maps origin providers keyed by key to a native foreign provider.
func (m *Mapper[O, F]) Share(key string, provider tree.SuggestionProvider[F]) *Mapper[O, F] {
	m.shared[key] = provider
	return m
}

// WithExecution replaces the default execution mapping.
func (m *Mapper[O, F]) WithExecution(fn ExecutionFunc[O, F]) *Mapper[O, F] {
	m.execution = fn
	return m
}

// Origin returns the origin dispatcher.
func (m *Mapper[O, F]) Origin() *dispatch.Dispatcher[O] { return m.origin }

// Map maps every child of root in one pass and returns them in order.
func (m *Mapper[O, F]) Map(root *tree.Node[O]) ([]*tree.Node[F], error) {
	p := m.newPass()
	out := make([]*tree.Node[F], 0, root.Len())
	for _, child := range root.Children() {
		mapped, err := p.node(child, []string{child.Name()})
		if err != nil {
			return nil, p.finish(err)
		}
		out = append(out, mapped)
	}
	if err := p.link(); err != nil {
		return nil, p.finish(err)
	}
	return out, p.finish(nil)
}

// MapNode maps the subtree below node in its own pass.
func (m *Mapper[O, F]) MapNode(node *tree.Node[O]) (*tree.Node[F], error) {
	if node.IsRoot() {
		return nil, &RootNotMappableError{}
	}
	path := m.origin.Path(node)
	if path == nil {
		path = []string{node.Name()}
	}
	p := m.newPass()
	mapped, err := p.node(node, path)
	if err == nil {
		err = p.link()
	}
	if err != nil {
		return nil, p.finish(err)
	}
	return mapped, p.finish(nil)
}

type deferredLink[O, F any] struct {
	from   *tree.Node[F]
	target *tree.Node[O]
	path   []string
}

// pass holds the state of one mapping run. It is discarded afterwards.
type pass[O, F any] struct {
	m        *Mapper[O, F]
	logger   *slog.Logger
	started  time.Time
	memo     map[*tree.Node[O]]*tree.Node[F]
	deferred []deferredLink[O, F]
}

func (m *Mapper[O, F]) newPass() *pass[O, F] {
	return &pass[O, F]{
		m:       m,
		logger:  m.logger.With("pass", uuid.NewString()),
		started: time.Now(),
		memo:    make(map[*tree.Node[O]]*tree.Node[F]),
	}
}

func (p *pass[O, F]) node(n *tree.Node[O], path []string) (*tree.Node[F], error) {
	if mapped, ok := p.memo[n]; ok {
		return mapped, nil
	}
	joined := strings.Join(path, " ")

	var out *tree.Node[F]
	switch n.Kind() {
	case tree.KindRoot:
		return nil, &RootNotMappableError{}
	case tree.KindLiteral:
		out = tree.NewLiteral[F](n.Name())
	case tree.KindArgument:
		typ, err := Translate(n.Type(), joined)
		if err != nil {
			return nil, err
		}
		if out, err = tree.NewArgument[F](n.Name(), typ); err != nil {
			return nil, err
		}
		provider, strategy := p.m.resolve(n, joined)
		out.SetSuggestions(provider)
		p.m.metrics.ObserveStrategy(strategy.String())
		p.logger.Debug("resolved suggestions", "path", joined, "strategy", strategy)
	}

	out.SetDescription(n.Description())
	out.SetRequirement(p.m.requirement(n.Requirement()))
	out.SetCommand(p.m.execution(n))
	p.memo[n] = out

	if target := n.Redirect(); target != nil {
		if target.IsRoot() {
			return nil, &RootNotMappableError{Path: joined}
		}
		if mapped, ok := p.memo[target]; ok {
			out.SetRedirect(mapped)
		} else {
			p.deferred = append(p.deferred, deferredLink[O, F]{from: out, target: target, path: path})
		}
	}

	for _, child := range n.Children() {
		childPath := append(path[:len(path):len(path)], child.Name())
		mapped, err := p.node(child, childPath)
		if err != nil {
			return nil, err
		}
		if err := out.AddChild(mapped); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// link resolves redirects whose targets were mapped after them.
func (p *pass[O, F]) link() error {
	for _, d := range p.deferred {
		mapped, ok := p.memo[d.target]
		if !ok {
			target := d.target.Name()
			if tp := p.m.origin.Path(d.target); tp != nil {
				target = strings.Join(tp, " ")
			}
			return &DanglingRedirectError{Path: strings.Join(d.path, " "), Target: target}
		}
		d.from.SetRedirect(mapped)
	}
	p.logger.Debug("linked deferred redirects", "count", len(p.deferred))
	return nil
}

func (p *pass[O, F]) finish(err error) error {
	elapsed := time.Since(p.started)
	p.m.metrics.ObservePass(len(p.memo), elapsed, err)
	if err != nil {
		p.logger.Error("mapping pass aborted", "err", err)
		return err
	}
	p.logger.Info("mapping pass complete", "nodes", len(p.memo), "duration", elapsed)
	return nil
}

func (m *Mapper[O, F]) requirement(req tree.Requirement[O]) tree.Requirement[F] {
	if req == nil {
		return nil
	}
	return func(source F) bool { return req(m.convert(source)) }
}
