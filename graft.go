package graft

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/graft/pkg/dispatch"
	"github.com/aretw0/graft/pkg/mapper"
	"github.com/aretw0/graft/pkg/observability"
	"github.com/aretw0/graft/pkg/ports"
	"github.com/aretw0/graft/pkg/registry"
	"github.com/aretw0/graft/pkg/suggestion"
	"github.com/aretw0/graft/pkg/tree"
)

// DefaultNamespace qualifies commands when WithNamespace is not given.
const DefaultNamespace = "graft"

// Synchronizer keeps a foreign command root in sync with an origin tree.
// It is the high-level entry point of the library: it maps the origin tree, registers every
// top-level command on the platform and answers suggestion requests from the foreign side.
type Synchronizer[O, F any] struct {
	mu        sync.Mutex
	origin    *tree.Node[O]
	convert   func(F) O
	mapper    *mapper.Mapper[O, F]
	registry  *registry.Root[F]
	shared    map[string]tree.SuggestionProvider[F]
	execution mapper.ExecutionFunc[O, F]
	namespace string
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// Option defines a functional option for configuring the Synchronizer.
type Option func(*settings)

type settings struct {
	logger    *slog.Logger
	namespace string
	metrics   *observability.Metrics
	execution any
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithNamespace sets the namespace commands are registered under.
func WithNamespace(namespace string) Option {
	return func(s *settings) {
		s.namespace = namespace
	}
}

// WithMetrics records mapping, suggestion and registration metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithExecution chooses the foreign command of every mapped node.
// Its type parameters must match the Synchronizer's.
func WithExecution[O, F any](fn mapper.ExecutionFunc[O, F]) Option {
	return func(s *settings) {
		s.execution = fn
	}
}

// New creates a Synchronizer for origin. Nothing is mapped until Synchronize is called.
func New[O, F any](origin *tree.Node[O], platform ports.Platform[F], convert func(F) O, opts ...Option) (*Synchronizer[O, F], error) {
	if origin == nil || !origin.IsRoot() {
		return nil, fmt.Errorf("origin must be a root node")
	}
	if platform == nil || convert == nil {
		return nil, fmt.Errorf("platform and converter are required")
	}

	s := settings{namespace: DefaultNamespace}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger := s.logger.With("namespace", s.namespace)

	g := &Synchronizer[O, F]{
		origin:    origin,
		convert:   convert,
		shared:    make(map[string]tree.SuggestionProvider[F]),
		namespace: s.namespace,
		logger:    logger,
		metrics:   s.metrics,
	}
	if s.execution != nil {
		fn, ok := s.execution.(mapper.ExecutionFunc[O, F])
		if !ok {
			return nil, fmt.Errorf("execution mapping %T does not match the synchronizer domains", s.execution)
		}
		g.execution = fn
	}
	g.registry = registry.New(platform, s.namespace,
		registry.WithLogger(logger),
		registry.WithMetrics(s.metrics),
	)
	g.mapper = g.newMapper(origin)
	return g, nil
}

func (s *Synchronizer[O, F]) newMapper(origin *tree.Node[O]) *mapper.Mapper[O, F] {
	m := mapper.New(dispatch.New(origin), s.convert,
		mapper.WithLogger(s.logger),
		mapper.WithMetrics(s.metrics),
	)
	for key, p := range s.shared {
		m.Share(key, p)
	}
	if s.execution != nil {
		m.WithExecution(s.execution)
	}
	return m
}

// Share maps origin providers keyed by key to a native foreign provider.
// It applies to the next Synchronize or Reload.
func (s *Synchronizer[O, F]) Share(key string, provider tree.SuggestionProvider[F]) *Synchronizer[O, F] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shared[key] = provider
	s.mapper.Share(key, provider)
	return s
}

// Synchronize maps the origin tree and registers every top-level command.
// Mapping errors abort before anything is registered. Commands the platform refuses are
// reported together; the others stay registered.
func (s *Synchronizer[O, F]) Synchronize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes, err := s.mapper.Map(s.origin)
	if err != nil {
		return fmt.Errorf("mapping commands: %w", err)
	}
	return s.register(nodes)
}

func (s *Synchronizer[O, F]) register(nodes []*tree.Node[F]) error {
	var errs []error
	for _, n := range nodes {
		if err := s.registry.AddChild(n); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	s.logger.Info("commands synchronized", "count", len(nodes))
	return nil
}

// Reload replaces the origin tree. The new tree is mapped first; on failure the current
// registrations are kept. Commands that disappeared are removed from the platform.
func (s *Synchronizer[O, F]) Reload(origin *tree.Node[O]) error {
	if origin == nil || !origin.IsRoot() {
		return fmt.Errorf("origin must be a root node")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.newMapper(origin)
	nodes, err := m.Map(origin)
	if err != nil {
		return fmt.Errorf("mapping reloaded commands: %w", err)
	}

	before := s.registry.Commands()
	keep := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		keep[n.Name()] = true
	}
	for _, h := range before {
		if h.Namespace == s.namespace && !keep[h.Name] {
			s.registry.Remove(h.Qualified())
			s.logger.Info("command removed", "command", h.Qualified())
		}
	}

	s.origin = origin
	s.mapper = m
	if err := s.register(nodes); err != nil {
		return err
	}
	if diff := registry.Compare(before, s.registry.Commands()); !diff.IsEmpty() {
		s.logger.Info("commands reloaded", "added", diff.Added, "removed", diff.Removed, "changed", diff.Changed)
	}
	return nil
}

// Suggest proposes completions for the end of input as seen by a foreign source.
func (s *Synchronizer[O, F]) Suggest(input string, source F) *suggestion.Suggestions {
	return s.SuggestAt(input, len(input), source)
}

// SuggestAt proposes completions for input truncated at cursor.
func (s *Synchronizer[O, F]) SuggestAt(input string, cursor int, source F) *suggestion.Suggestions {
	d := s.registry.Dispatcher()
	return d.CompletionSuggestionsAt(d.Parse(input, source), cursor)
}

// Usage lists the command lines of a registered command that source may use.
func (s *Synchronizer[O, F]) Usage(name string, source F) ([]string, error) {
	d := s.registry.Dispatcher()
	node := d.Find(name)
	if node == nil {
		if hint, ok := s.registry.Closest(name); ok {
			return nil, fmt.Errorf("%w: %q (did you mean %q?)", dispatch.ErrUnknownCommand, name, hint)
		}
		return nil, fmt.Errorf("%w: %q", dispatch.ErrUnknownCommand, name)
	}
	if target := node.Redirect(); target != nil && node.IsLeaf() {
		node = target
	}
	tmp := tree.NewRoot[F]()
	if err := tmp.AddChild(node); err != nil {
		return nil, err
	}
	return dispatch.New(tmp).Usage(tmp, source, true), nil
}

// Commands returns the registered commands in registration order.
func (s *Synchronizer[O, F]) Commands() []*ports.Handle[F] { return s.registry.Commands() }

// Registry returns the registration root.
func (s *Synchronizer[O, F]) Registry() *registry.Root[F] { return s.registry }

// Foreign returns a dispatcher over the current foreign root.
func (s *Synchronizer[O, F]) Foreign() *dispatch.Dispatcher[F] { return s.registry.Dispatcher() }

// Origin returns a dispatcher over the current origin tree.
func (s *Synchronizer[O, F]) Origin() *dispatch.Dispatcher[O] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapper.Origin()
}

// Mapper returns the mapper of the current origin tree.
func (s *Synchronizer[O, F]) Mapper() *mapper.Mapper[O, F] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapper
}
