package dispatch

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/graft/pkg/suggestion"
	"github.com/aretw0/graft/pkg/tree"
	"github.com/aretw0/graft/pkg/types"
)

const (
	argumentSeparator = ' '
	redirectMarker    = "->"
	recursionMarker   = "..."
)

// Dispatcher parses input against a command tree and proposes completions.
type Dispatcher[S any] struct {
	root *tree.Node[S]
}

// New creates a dispatcher over root.
func New[S any](root *tree.Node[S]) *Dispatcher[S] {
	return &Dispatcher[S]{root: root}
}

// Root returns the tree the dispatcher reads from.
func (d *Dispatcher[S]) Root() *tree.Node[S] { return d.root }

// ParseResults is the best interpretation of an input found by Parse.
type ParseResults[S any] struct {
	input   string
	context *builder[S]
	reader  *types.Reader
	errors  map[*tree.Node[S]]error
}

// Input returns the raw input that was parsed.
func (p *ParseResults[S]) Input() string { return p.input }

// Reader returns the reader positioned after the last matched node.
func (p *ParseResults[S]) Reader() *types.Reader { return p.reader }

// Errors returns the errors of the nodes that were tried at the point parsing stopped.
func (p *ParseResults[S]) Errors() map[*tree.Node[S]]error { return p.errors }

// Consumed reports whether the whole input was matched.
func (p *ParseResults[S]) Consumed() bool { return !p.reader.CanRead() }

// Context builds the execution context of the parse.
// It returns ErrIncompleteParse when no node matched at all.
func (p *ParseResults[S]) Context() (*Context[S], error) {
	if len(p.context.nodes) == 0 {
		return nil, ErrIncompleteParse
	}
	return p.context.build(p.input, p.failures()), nil
}

func (p *ParseResults[S]) failures() map[string]error {
	if len(p.errors) == 0 {
		return nil
	}
	out := make(map[string]error, len(p.errors))
	for node, err := range p.errors {
		if node.Kind() == tree.KindArgument {
			out[node.Name()] = err
		}
	}
	return out
}

// Parse reads input for source, following redirects and skipping nodes source cannot use.
// Parse never fails; inspect the results to learn how far the input matched.
func (d *Dispatcher[S]) Parse(input string, source S) *ParseResults[S] {
	reader := types.NewReader(input)
	res := d.parseNodes(d.root, reader, newBuilder(source, d.root, 0))
	res.input = input
	return res
}

func (d *Dispatcher[S]) parseNodes(node *tree.Node[S], original *types.Reader, ctx *builder[S]) *ParseResults[S] {
	var (
		errs       map[*tree.Node[S]]error
		potentials []*ParseResults[S]
	)
	cursor := original.Cursor()

	for _, child := range relevantNodes(node, original) {
		if !child.CanUse(ctx.source) {
			continue
		}
		c := ctx.copy()
		reader := original.Clone()
		if err := parseNode(child, node, reader, c); err != nil {
			if errs == nil {
				errs = make(map[*tree.Node[S]]error)
			}
			errs[child] = err
			reader.SetCursor(cursor)
			continue
		}
		if child.Command() != nil {
			c.command = child.Command()
		}

		redirect := child.Redirect()
		need := 2
		if redirect != nil {
			need = 1
		}
		if !reader.CanReadN(need) {
			potentials = append(potentials, &ParseResults[S]{context: c, reader: reader})
			continue
		}
		reader.Skip()
		next := child
		if redirect != nil {
			next = redirect
		}
		res := d.parseNodes(next, reader, c)
		if redirect != nil {
			// A redirect continues in the target unconditionally.
			return res
		}
		potentials = append(potentials, res)
	}

	if len(potentials) > 0 {
		slices.SortStableFunc(potentials, compareResults[S])
		return potentials[0]
	}
	return &ParseResults[S]{context: ctx, reader: original, errors: errs}
}

func compareResults[S any](a, b *ParseResults[S]) int {
	if !a.reader.CanRead() && b.reader.CanRead() {
		return -1
	}
	if a.reader.CanRead() && !b.reader.CanRead() {
		return 1
	}
	if len(a.errors) == 0 && len(b.errors) > 0 {
		return -1
	}
	if len(a.errors) > 0 && len(b.errors) == 0 {
		return 1
	}
	return 0
}

// relevantNodes returns the literal child matching the next token when there is one,
// and the argument children otherwise.
func relevantNodes[S any](node *tree.Node[S], r *types.Reader) []*tree.Node[S] {
	children := node.Children()
	var args []*tree.Node[S]
	hasLiteral := false
	for _, c := range children {
		switch c.Kind() {
		case tree.KindLiteral:
			hasLiteral = true
		case tree.KindArgument:
			args = append(args, c)
		}
	}
	if !hasLiteral {
		return args
	}
	token := nextToken(r)
	if lit := node.Child(token); lit != nil && lit.Kind() == tree.KindLiteral {
		return []*tree.Node[S]{lit}
	}
	return args
}

func nextToken(r *types.Reader) string {
	rest := r.Remaining()
	if i := strings.IndexByte(rest, argumentSeparator); i >= 0 {
		return rest[:i]
	}
	return rest
}

func parseNode[S any](child, parent *tree.Node[S], r *types.Reader, c *builder[S]) error {
	start := r.Cursor()
	switch child.Kind() {
	case tree.KindLiteral:
		token := nextToken(r)
		if token != child.Name() {
			return types.Errorf(r, "expected literal %s", child.Name())
		}
		r.SetCursor(start + len(token))
	case tree.KindArgument:
		v, err := child.Type().Parse(r)
		if err != nil {
			return err
		}
		c.withArgument(child.Name(), ParsedArgument{Range: suggestion.Range{Start: start, End: r.Cursor()}, Result: v})
	default:
		return fmt.Errorf("cannot parse %s node", child.Kind())
	}
	if r.CanRead() && r.Peek() != argumentSeparator {
		return fmt.Errorf("%w at position %d", ErrExpectedSeparator, r.Cursor())
	}
	c.withNode(child, parent, suggestion.Range{Start: start, End: r.Cursor()})
	return nil
}

// Execute runs the command matched by a complete parse.
func (d *Dispatcher[S]) Execute(parse *ParseResults[S]) (int, error) {
	if parse.reader.CanRead() {
		if len(parse.errors) == 1 {
			for _, err := range parse.errors {
				return 0, err
			}
		}
		if len(parse.context.nodes) == 0 {
			return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, parse.input)
		}
		return 0, types.Errorf(parse.reader, "incorrect argument for command")
	}
	ctx, err := parse.Context()
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, parse.input)
	}
	if ctx.command == nil {
		return 0, fmt.Errorf("%w: %q is incomplete", ErrUnknownCommand, parse.input)
	}
	return ctx.command(ctx)
}

// CompletionSuggestions proposes completions at the end of the parsed input.
func (d *Dispatcher[S]) CompletionSuggestions(parse *ParseResults[S]) *suggestion.Suggestions {
	return d.CompletionSuggestionsAt(parse, len(parse.input))
}

// CompletionSuggestionsAt proposes completions for the input truncated at cursor.
// Children whose requirement rejects the source are not offered. Provider failures
// are dropped from the merged result.
func (d *Dispatcher[S]) CompletionSuggestionsAt(parse *ParseResults[S], cursor int) *suggestion.Suggestions {
	cursor = min(max(cursor, 0), len(parse.input))
	parent, start := parse.context.suggestionContext(cursor)
	start = min(start, cursor)

	truncated := parse.input[:cursor]
	ctx := parse.context.build(truncated, parse.failures())

	var results []*suggestion.Suggestions
	for _, child := range parent.Children() {
		if !child.CanUse(parse.context.source) {
			continue
		}
		s, err := child.ListSuggestions(ctx, suggestion.NewBuilder(truncated, start))
		if err != nil || s == nil {
			continue
		}
		results = append(results, s)
	}
	return suggestion.Merge(parse.input, results...)
}

// Usage returns every command line reachable below node that source may use,
// prefixed with the node's own usage.
func (d *Dispatcher[S]) Usage(node *tree.Node[S], source S, restricted bool) []string {
	var out []string
	for _, child := range node.Children() {
		d.usage(child, source, &out, child.UsageText(), restricted)
	}
	return out
}

func (d *Dispatcher[S]) usage(node *tree.Node[S], source S, out *[]string, prefix string, restricted bool) {
	if restricted && !node.CanUse(source) {
		return
	}
	if node.Command() != nil {
		*out = append(*out, prefix)
	}
	if target := node.Redirect(); target != nil {
		marker := recursionMarker
		if target != d.root {
			marker = redirectMarker + " " + target.UsageText()
		}
		*out = append(*out, prefix+" "+marker)
		return
	}
	for _, child := range node.Children() {
		d.usage(child, source, out, prefix+" "+child.UsageText(), restricted)
	}
}

// Path returns the names leading from the root to target, or nil when target is not in the tree.
func (d *Dispatcher[S]) Path(target *tree.Node[S]) []string {
	var found []string
	_ = tree.Walk(d.root, func(path []string, n *tree.Node[S]) error {
		if n == target {
			found = append([]string(nil), path...)
			return errStop
		}
		return nil
	})
	return found
}

var errStop = errors.New("stop")

// Find follows path from the root, returning nil when a segment is missing.
func (d *Dispatcher[S]) Find(path ...string) *tree.Node[S] {
	n := d.root
	for _, name := range path {
		if n = n.Child(name); n == nil {
			return nil
		}
	}
	return n
}
