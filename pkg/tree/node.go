package tree

import (
	"github.com/aretw0/graft/pkg/suggestion"
	"github.com/aretw0/graft/pkg/types"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind distinguishes the node variants.
type Kind int

const (
	KindRoot Kind = iota
	KindLiteral
	KindArgument
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindLiteral:
		return "literal"
	case KindArgument:
		return "argument"
	default:
		return "unknown"
	}
}

// Requirement decides whether a source may use a node. A nil Requirement always passes.
type Requirement[S any] func(source S) bool

// Context is the view of a parsed command line handed to commands and suggestion providers.
type Context[S any] interface {
	types.Arguments
	// Source returns the execution source the input was parsed for.
	Source() S
}

// Command is the action attached to an executable node.
type Command[S any] func(ctx Context[S]) (int, error)

// Node is a command tree node.
type Node[S any] struct {
	kind        Kind
	name        string
	description string
	children    *orderedmap.OrderedMap[string, *Node[S]]
	requirement Requirement[S]
	redirect    *Node[S]
	command     Command[S]

	// Argument only
	typ         types.Type
	suggestions SuggestionProvider[S]
}

// NewRoot creates the entry point of a tree.
func NewRoot[S any]() *Node[S] {
	return &Node[S]{kind: KindRoot, children: orderedmap.New[string, *Node[S]]()}
}

// NewLiteral creates a keyword node.
func NewLiteral[S any](name string) *Node[S] {
	return &Node[S]{kind: KindLiteral, name: name, children: orderedmap.New[string, *Node[S]]()}
}

// NewArgument creates a typed argument node.
func NewArgument[S any](name string, typ types.Type) (*Node[S], error) {
	if typ == nil {
		return nil, ErrMissingType
	}
	return &Node[S]{kind: KindArgument, name: name, typ: typ, children: orderedmap.New[string, *Node[S]]()}, nil
}

func (n *Node[S]) Kind() Kind { return n.kind }

func (n *Node[S]) Name() string { return n.name }

func (n *Node[S]) IsRoot() bool { return n.kind == KindRoot }

func (n *Node[S]) Description() string { return n.description }

func (n *Node[S]) SetDescription(description string) { n.description = description }

// Requirement returns the node's predicate, nil when unrestricted.
func (n *Node[S]) Requirement() Requirement[S] { return n.requirement }

func (n *Node[S]) SetRequirement(req Requirement[S]) { n.requirement = req }

// CanUse reports whether source satisfies the node's requirement.
func (n *Node[S]) CanUse(source S) bool {
	return n.requirement == nil || n.requirement(source)
}

// Redirect returns the node this one aliases, or nil.
func (n *Node[S]) Redirect() *Node[S] { return n.redirect }

func (n *Node[S]) SetRedirect(target *Node[S]) { n.redirect = target }

// Command returns the attached action, nil when the node is not executable.
func (n *Node[S]) Command() Command[S] { return n.command }

func (n *Node[S]) SetCommand(cmd Command[S]) { n.command = cmd }

// Type returns the argument type; nil for literals and the root.
func (n *Node[S]) Type() types.Type { return n.typ }

// Suggestions returns the custom suggestion provider of an argument, or nil.
func (n *Node[S]) Suggestions() SuggestionProvider[S] { return n.suggestions }

func (n *Node[S]) SetSuggestions(p SuggestionProvider[S]) { n.suggestions = p }

// AddChild attaches child under its name.
func (n *Node[S]) AddChild(child *Node[S]) error {
	if child.IsRoot() {
		return ErrRootChild
	}
	if _, exists := n.children.Get(child.name); exists {
		return &DuplicateNameError{Parent: n.name, Name: child.name}
	}
	n.children.Set(child.name, child)
	return nil
}

// RemoveChild detaches the named child, reporting whether it existed.
func (n *Node[S]) RemoveChild(name string) bool {
	_, existed := n.children.Delete(name)
	return existed
}

// Child returns the direct child with the given name, or nil.
func (n *Node[S]) Child(name string) *Node[S] {
	child, _ := n.children.Get(name)
	return child
}

// Children returns the direct children in insertion order.
func (n *Node[S]) Children() []*Node[S] {
	out := make([]*Node[S], 0, n.children.Len())
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Len returns the number of direct children.
func (n *Node[S]) Len() int { return n.children.Len() }

// IsLeaf reports whether the node has no children.
func (n *Node[S]) IsLeaf() bool { return n.children.Len() == 0 }

// UsageText is how the node appears in usage strings.
func (n *Node[S]) UsageText() string {
	if n.kind == KindArgument {
		return "<" + n.name + ">"
	}
	return n.name
}

// ListSuggestions proposes completions for this node at the builder's position.
// Literals suggest their own name; arguments use their provider, then their type.
func (n *Node[S]) ListSuggestions(ctx Context[S], b *suggestion.Builder) (*suggestion.Suggestions, error) {
	switch n.kind {
	case KindLiteral:
		return b.SuggestMatching(n.name).Build(), nil
	case KindArgument:
		if n.suggestions != nil {
			return n.suggestions.Suggestions(ctx, b)
		}
		if s, ok := types.SuggesterOf(n.typ); ok {
			return s.Suggest(ctx, b)
		}
		return suggestion.Empty(), nil
	default:
		return suggestion.Empty(), nil
	}
}
