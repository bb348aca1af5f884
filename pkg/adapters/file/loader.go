package file

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/graft/pkg/dsl"
	"github.com/aretw0/graft/pkg/tree"
	"github.com/aretw0/graft/pkg/types"
	"github.com/fsnotify/fsnotify"
)

// Loader implements ports.DefinitionLoader and ports.Watchable for a single definition file.
type Loader[S any] struct {
	path       string
	types      map[string]types.Type
	providers  map[string]tree.SuggestionProvider[S]
	actions    map[string]tree.Command[S]
	permission func(name string) tree.Requirement[S]
	debounce   time.Duration
	logger     *slog.Logger
}

// Option configures a Loader.
type Option[S any] func(*Loader[S])

// WithTypes registers argument types by name. They take precedence over the built-in names.
func WithTypes[S any](t map[string]types.Type) Option[S] {
	return func(l *Loader[S]) { l.types = t }
}

// WithProviders registers the providers a "suggests" entry may name.
func WithProviders[S any](p map[string]tree.SuggestionProvider[S]) Option[S] {
	return func(l *Loader[S]) { l.providers = p }
}

// WithActions registers the commands an "executes" entry may name.
func WithActions[S any](a map[string]tree.Command[S]) Option[S] {
	return func(l *Loader[S]) { l.actions = a }
}

// WithPermission sets how a "requires" entry becomes a requirement.
func WithPermission[S any](fn func(name string) tree.Requirement[S]) Option[S] {
	return func(l *Loader[S]) { l.permission = fn }
}

// WithDebounce sets how long Watch waits for writes to settle.
func WithDebounce[S any](d time.Duration) Option[S] {
	return func(l *Loader[S]) { l.debounce = d }
}

// WithLogger sets the logger.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(l *Loader[S]) { l.logger = logger }
}

// New creates a loader for the definition file at path.
func New[S any](path string, opts ...Option[S]) *Loader[S] {
	l := &Loader[S]{
		path:     path,
		debounce: 100 * time.Millisecond,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the definition file path.
func (l *Loader[S]) Path() string { return l.path }

// Load reads and builds the definition file.
func (l *Loader[S]) Load() (*tree.Node[S], error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	doc, err := Decode(data, Format(l.path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	return l.Build(doc)
}

// Build turns a decoded document into a tree.
func (l *Loader[S]) Build(doc *Document) (*tree.Node[S], error) {
	commands := make([]*dsl.NodeBuilder[S], 0, len(doc.Commands))
	for _, spec := range doc.Commands {
		b, err := l.builder(spec, nil)
		if err != nil {
			return nil, err
		}
		commands = append(commands, b)
	}
	return dsl.Tree(commands...)
}

func (l *Loader[S]) builder(spec NodeSpec, parent []string) (*dsl.NodeBuilder[S], error) {
	path := strings.Join(append(parent[:len(parent):len(parent)], spec.Name), " ")
	if spec.Name == "" {
		return nil, fmt.Errorf("node under %q has no name", strings.Join(parent, " "))
	}

	var b *dsl.NodeBuilder[S]
	if spec.Type == "" {
		if spec.Suggests != "" {
			return nil, fmt.Errorf("%q: only arguments take suggestions", path)
		}
		b = dsl.Literal[S](spec.Name)
	} else {
		typ, err := l.resolveType(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}
		b = dsl.Argument[S](spec.Name, typ)
		if len(spec.Aliases) > 0 {
			return nil, fmt.Errorf("%q: only literals take aliases", path)
		}
	}

	if spec.Description != "" {
		b.Describe(spec.Description)
	}
	if spec.Requires != "" {
		if l.permission == nil {
			return nil, fmt.Errorf("%q: requires %q but no permission resolver is configured", path, spec.Requires)
		}
		b.Requires(l.permission(spec.Requires))
	}
	if spec.Executes != "" {
		cmd, ok := l.actions[spec.Executes]
		if !ok {
			return nil, fmt.Errorf("%q: unknown action %q", path, spec.Executes)
		}
		b.Executes(cmd)
	}
	if spec.Suggests != "" {
		p, ok := l.providers[spec.Suggests]
		if !ok {
			return nil, fmt.Errorf("%q: unknown provider %q", path, spec.Suggests)
		}
		b.Suggests(p)
	}
	if spec.Redirect != nil {
		b.RedirectTo(*spec.Redirect)
	}
	if len(spec.Aliases) > 0 {
		b.Aliases(spec.Aliases...)
	}

	for _, child := range spec.Children {
		cb, err := l.builder(child, append(parent[:len(parent):len(parent)], spec.Name))
		if err != nil {
			return nil, err
		}
		b.Then(cb)
	}
	return b, nil
}

func (l *Loader[S]) resolveType(name string) (types.Type, error) {
	if t, ok := l.types[name]; ok {
		return t, nil
	}
	return types.ParseType(name)
}

// Watch signals on the returned channel whenever the definition file changes.
// The parent directory is watched so editors that replace the file are noticed.
func (l *Loader[S]) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	abs, err := filepath.Abs(l.path)
	if err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer w.Close()

		var timer <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				l.logger.Debug("definition change", "path", l.path, "op", ev.Op.String())
				timer = time.After(l.debounce)
			case <-timer:
				timer = nil
				select {
				case ch <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.logger.Warn("watcher error", "path", l.path, "err", err)
			}
		}
	}()
	return ch, nil
}
