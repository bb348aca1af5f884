package registry

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/agnivade/levenshtein"

	"github.com/aretw0/graft/pkg/dispatch"
	"github.com/aretw0/graft/pkg/observability"
	"github.com/aretw0/graft/pkg/ports"
	"github.com/aretw0/graft/pkg/tree"
)

// ErrInvalidCommand is returned for nodes that cannot be installed as top-level commands.
var ErrInvalidCommand = errors.New("invalid top-level command")

// RegistrationError is returned when the platform refuses a command.
type RegistrationError struct {
	Name string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("platform refused to register command %q", e.Name)
}

// Option configures a Root.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records the number of registered commands.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

type entry[F any] struct {
	handle *ports.Handle[F]
	owner  *tree.Node[F]
	seq    uint64
}

// Root mirrors registered commands and publishes the foreign root.
type Root[F any] struct {
	mu        sync.RWMutex
	platform  ports.Platform[F]
	namespace string
	entries   map[string]*entry[F]
	order     []string
	bare      map[string]string
	seq       uint64
	root      atomic.Pointer[tree.Node[F]]
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates an empty Root. Commands added with AddChild use namespace.
func New[F any](platform ports.Platform[F], namespace string, opts ...Option) *Root[F] {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	r := &Root[F]{
		platform:  platform,
		namespace: namespace,
		entries:   make(map[string]*entry[F]),
		bare:      make(map[string]string),
		logger:    o.logger,
		metrics:   o.metrics,
	}
	r.root.Store(tree.NewRoot[F]())
	return r
}

// Namespace returns the default namespace.
func (r *Root[F]) Namespace() string { return r.namespace }

// AddChild installs node under the default namespace.
func (r *Root[F]) AddChild(node *tree.Node[F]) error {
	return r.Add(r.namespace, node)
}

// Add installs node under namespace. The platform is asked first; when it refuses,
// the mirror is left unchanged.
func (r *Root[F]) Add(namespace string, node *tree.Node[F]) error {
	if node.Kind() != tree.KindLiteral {
		return fmt.Errorf("%w: %q is a %s node", ErrInvalidCommand, node.Name(), node.Kind())
	}
	if strings.Contains(node.Name(), ":") || namespace == "" || strings.Contains(namespace, ":") {
		return fmt.Errorf("%w: cannot qualify %q with namespace %q", ErrInvalidCommand, node.Name(), namespace)
	}
	qualified := ports.Qualify(namespace, node.Name())

	owner, err := own(qualified, node)
	if err != nil {
		return err
	}
	handle := &ports.Handle[F]{
		Name:      node.Name(),
		Namespace: namespace,
		Usage:     usage(owner),
		Node:      owner,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.platform.Register(qualified, handle) {
		r.logger.Warn("platform refused command", "command", qualified)
		return &RegistrationError{Name: qualified}
	}

	r.seq++
	if _, exists := r.entries[qualified]; !exists {
		r.order = append(r.order, qualified)
	}
	r.entries[qualified] = &entry[F]{handle: handle, owner: owner, seq: r.seq}
	r.bare[node.Name()] = qualified
	r.publish()
	r.logger.Debug("registered command", "command", qualified)
	return nil
}

// Remove uninstalls a command by qualified name, reporting whether it was registered.
// The bare name falls back to the latest remaining registration of the same name.
func (r *Root[F]) Remove(qualified string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[qualified]
	if !ok {
		return false
	}
	r.platform.Unregister(qualified)
	delete(r.entries, qualified)
	for i, q := range r.order {
		if q == qualified {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}

	name := e.handle.Name
	if r.bare[name] == qualified {
		delete(r.bare, name)
		var latest *entry[F]
		for _, other := range r.entries {
			if other.handle.Name == name && (latest == nil || other.seq > latest.seq) {
				latest = other
			}
		}
		if latest != nil {
			r.bare[name] = latest.handle.Qualified()
		}
	}
	r.publish()
	r.logger.Debug("removed command", "command", qualified)
	return true
}

// publish rebuilds the root from the mirror. The caller holds the write lock.
func (r *Root[F]) publish() {
	root := tree.NewRoot[F]()
	for _, qualified := range r.order {
		e := r.entries[qualified]
		// Names are unique by construction: qualified names hold a colon, bare names never do.
		_ = root.AddChild(e.owner)
		if r.bare[e.handle.Name] == qualified {
			_ = root.AddChild(alias(e.handle.Name, e.owner))
		}
	}
	r.root.Store(root)
	r.metrics.SetRegistered(len(r.entries))
}

// own creates the qualified owning literal over the children of node.
func own[F any](qualified string, node *tree.Node[F]) (*tree.Node[F], error) {
	owner := tree.NewLiteral[F](qualified)
	owner.SetDescription(node.Description())
	owner.SetRequirement(node.Requirement())
	owner.SetCommand(node.Command())
	owner.SetRedirect(node.Redirect())
	for _, child := range node.Children() {
		if err := owner.AddChild(child); err != nil {
			return nil, err
		}
	}
	return owner, nil
}

// alias creates the bare literal. An owner that is itself only a redirect is skipped over,
// since parsing continues at the children of a redirect target.
func alias[F any](name string, owner *tree.Node[F]) *tree.Node[F] {
	target := owner
	if owner.Redirect() != nil && owner.IsLeaf() {
		target = owner.Redirect()
	}
	a := tree.NewLiteral[F](name)
	a.SetDescription(owner.Description())
	a.SetRequirement(owner.Requirement())
	a.SetCommand(owner.Command())
	a.SetRedirect(target)
	return a
}

func usage[F any](owner *tree.Node[F]) []string {
	tmp := tree.NewRoot[F]()
	_ = tmp.AddChild(owner)
	var zero F
	return dispatch.New(tmp).Usage(tmp, zero, false)
}

// Root returns the current foreign root. It must not be modified.
func (r *Root[F]) Root() *tree.Node[F] { return r.root.Load() }

// Dispatcher returns a dispatcher over the current foreign root.
func (r *Root[F]) Dispatcher() *dispatch.Dispatcher[F] {
	return dispatch.New(r.root.Load())
}

// Find returns the installed node for a bare or qualified name, or nil.
func (r *Root[F]) Find(name string) *tree.Node[F] {
	return r.root.Load().Child(name)
}

// Lookup returns the handle registered under a qualified name, or under the latest
// registration of a bare name.
func (r *Root[F]) Lookup(name string) (*ports.Handle[F], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if q, ok := r.bare[name]; ok {
		name = q
	}
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.handle, true
}

// Commands returns the registered handles in registration order.
func (r *Root[F]) Commands() []*ports.Handle[F] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ports.Handle[F], 0, len(r.order))
	for _, q := range r.order {
		out = append(out, r.entries[q].handle)
	}
	return out
}

// Closest returns the registered name nearest to name by edit distance, for "did you mean" hints.
// It reports false when nothing is close enough.
func (r *Root[F]) Closest(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best, bestDist := "", -1
	consider := func(candidate string) {
		d := levenshtein.ComputeDistance(name, candidate)
		if bestDist < 0 || d < bestDist || (d == bestDist && candidate < best) {
			best, bestDist = candidate, d
		}
	}
	for bare := range r.bare {
		consider(bare)
	}
	for _, q := range r.order {
		consider(q)
	}
	if bestDist < 0 || bestDist > max(2, len(name)/3) {
		return "", false
	}
	return best, true
}
