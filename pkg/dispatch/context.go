package dispatch

import (
	"fmt"

	"github.com/aretw0/graft/pkg/suggestion"
	"github.com/aretw0/graft/pkg/tree"
	"github.com/aretw0/graft/pkg/types"
)

// ParsedArgument is an argument value with the input range it was read from.
type ParsedArgument struct {
	Range  suggestion.Range
	Result any
}

// ParsedNode records a matched node, the node whose children it was chosen from and its range.
type ParsedNode[S any] struct {
	Node   *tree.Node[S]
	Parent *tree.Node[S]
	Range  suggestion.Range
}

// Context is the result of parsing one command line for one source.
// It is immutable once built.
type Context[S any] struct {
	source    S
	input     string
	root      *tree.Node[S]
	arguments map[string]ParsedArgument
	names     []string
	failures  map[string]error
	nodes     []ParsedNode[S]
	command   tree.Command[S]
	rng       suggestion.Range
}

var _ tree.Context[struct{}] = (*Context[struct{}])(nil)

func (c *Context[S]) Source() S { return c.source }

func (c *Context[S]) Input() string { return c.input }

// Root returns the node parsing started from.
func (c *Context[S]) Root() *tree.Node[S] { return c.root }

// Command returns the action of the last matched executable node, or nil.
func (c *Context[S]) Command() tree.Command[S] { return c.command }

// Nodes returns the matched nodes in input order.
func (c *Context[S]) Nodes() []ParsedNode[S] { return c.nodes }

// Range returns the input range covered by the matched nodes.
func (c *Context[S]) Range() suggestion.Range { return c.rng }

// Argument returns the parsed value of a named argument.
func (c *Context[S]) Argument(name string) (any, error) {
	arg, ok := c.arguments[name]
	if !ok {
		return nil, argumentNotFound(name)
	}
	return arg.Result, nil
}

// ParsedArgument returns the named argument with its input range.
func (c *Context[S]) ParsedArgument(name string) (ParsedArgument, bool) {
	arg, ok := c.arguments[name]
	return arg, ok
}

// IsPresent reports whether the named argument was parsed.
func (c *Context[S]) IsPresent(name string) bool {
	_, ok := c.arguments[name]
	return ok
}

// ArgumentNames returns the parsed argument names in input order.
func (c *Context[S]) ArgumentNames() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// ArgumentError returns the parse error of an argument the user supplied but that failed
// to parse, or nil.
func (c *Context[S]) ArgumentError(name string) error {
	return c.failures[name]
}

// Get returns the named argument converted to V.
func Get[V any](args types.Arguments, name string) (V, error) {
	var zero V
	raw, err := args.Argument(name)
	if err != nil {
		return zero, err
	}
	v, ok := raw.(V)
	if !ok {
		return zero, &ArgumentTypeError{Name: name, Want: fmt.Sprintf("%T", zero), Got: raw}
	}
	return v, nil
}

// builder accumulates a context while parsing. Copies share nothing mutable.
type builder[S any] struct {
	source    S
	root      *tree.Node[S]
	start     int
	arguments map[string]ParsedArgument
	names     []string
	nodes     []ParsedNode[S]
	command   tree.Command[S]
	rng       suggestion.Range
}

func newBuilder[S any](source S, root *tree.Node[S], start int) *builder[S] {
	return &builder[S]{
		source:    source,
		root:      root,
		start:     start,
		arguments: make(map[string]ParsedArgument),
		rng:       suggestion.At(start),
	}
}

func (b *builder[S]) copy() *builder[S] {
	c := *b
	c.arguments = make(map[string]ParsedArgument, len(b.arguments))
	for k, v := range b.arguments {
		c.arguments[k] = v
	}
	c.names = append([]string(nil), b.names...)
	c.nodes = append([]ParsedNode[S](nil), b.nodes...)
	return &c
}

func (b *builder[S]) withArgument(name string, arg ParsedArgument) {
	if _, exists := b.arguments[name]; !exists {
		b.names = append(b.names, name)
	}
	b.arguments[name] = arg
}

func (b *builder[S]) withNode(node, parent *tree.Node[S], r suggestion.Range) {
	b.nodes = append(b.nodes, ParsedNode[S]{Node: node, Parent: parent, Range: r})
	b.rng = suggestion.Encompass(b.rng, r)
}

func (b *builder[S]) build(input string, failures map[string]error) *Context[S] {
	return &Context[S]{
		source:    b.source,
		input:     input,
		root:      b.root,
		arguments: b.arguments,
		names:     b.names,
		failures:  failures,
		nodes:     b.nodes,
		command:   b.command,
		rng:       b.rng,
	}
}

// suggestionContext finds the node whose children complete the input at cursor,
// and the offset completion starts from.
func (b *builder[S]) suggestionContext(cursor int) (*tree.Node[S], int) {
	if b.rng.Start > cursor {
		return b.root, b.start
	}
	for _, pn := range b.nodes {
		if pn.Range.Start <= cursor && cursor <= pn.Range.End {
			return pn.Parent, pn.Range.Start
		}
	}
	if len(b.nodes) == 0 {
		return b.root, b.rng.Start
	}
	last := b.nodes[len(b.nodes)-1]
	next := last.Node
	if next.Redirect() != nil {
		next = next.Redirect()
	}
	return next, last.Range.End + 1
}
