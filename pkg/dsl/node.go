package dsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/graft/pkg/tree"
	"github.com/aretw0/graft/pkg/types"
)

// ErrUnknownPath is returned when a redirect path does not name a node of the tree.
var ErrUnknownPath = errors.New("unknown redirect path")

// NodeBuilder configures one literal or argument node and its subtree.
type NodeBuilder[S any] struct {
	kind        tree.Kind
	name        string
	typ         types.Type
	description string
	requirement tree.Requirement[S]
	command     tree.Command[S]
	provider    tree.SuggestionProvider[S]
	children    []*NodeBuilder[S]
	aliases     []string

	redirect     *tree.Node[S]
	redirectPath *string
}

// Literal starts a keyword node.
func Literal[S any](name string) *NodeBuilder[S] {
	return &NodeBuilder[S]{kind: tree.KindLiteral, name: name}
}

// Argument starts a typed argument node.
func Argument[S any](name string, typ types.Type) *NodeBuilder[S] {
	return &NodeBuilder[S]{kind: tree.KindArgument, name: name, typ: typ}
}

// Requires sets the predicate a source must satisfy to use the node.
func (n *NodeBuilder[S]) Requires(req tree.Requirement[S]) *NodeBuilder[S] {
	n.requirement = req
	return n
}

// Executes marks the node as executable.
func (n *NodeBuilder[S]) Executes(cmd tree.Command[S]) *NodeBuilder[S] {
	n.command = cmd
	return n
}

// Suggests attaches a custom suggestion provider. Only argument nodes use it.
func (n *NodeBuilder[S]) Suggests(p tree.SuggestionProvider[S]) *NodeBuilder[S] {
	n.provider = p
	return n
}

// Describe sets the help text.
func (n *NodeBuilder[S]) Describe(description string) *NodeBuilder[S] {
	n.description = description
	return n
}

// Then appends children in order.
func (n *NodeBuilder[S]) Then(children ...*NodeBuilder[S]) *NodeBuilder[S] {
	n.children = append(n.children, children...)
	return n
}

// Redirect makes the node continue parsing at target.
func (n *NodeBuilder[S]) Redirect(target *tree.Node[S]) *NodeBuilder[S] {
	n.redirect = target
	n.redirectPath = nil
	return n
}

// RedirectTo makes the node continue parsing at the node named by a space-separated path.
// The path is resolved by Tree.
func (n *NodeBuilder[S]) RedirectTo(path string) *NodeBuilder[S] {
	n.redirect = nil
	n.redirectPath = &path
	return n
}

// Aliases adds sibling literals that redirect to this node with the same requirement and command.
func (n *NodeBuilder[S]) Aliases(names ...string) *NodeBuilder[S] {
	n.aliases = append(n.aliases, names...)
	return n
}

// Build creates the node and its subtree. Aliases of the node itself are attached by its parent,
// and path redirects need Tree.
func (n *NodeBuilder[S]) Build() (*tree.Node[S], error) {
	var pending []pendingRedirect[S]
	node, err := n.build(&pending)
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("%w: %q needs a tree to resolve", ErrUnknownPath, *pending[0].path)
	}
	return node, nil
}

type pendingRedirect[S any] struct {
	node *tree.Node[S]
	path *string
}

func (n *NodeBuilder[S]) build(pending *[]pendingRedirect[S]) (*tree.Node[S], error) {
	var node *tree.Node[S]
	switch n.kind {
	case tree.KindArgument:
		var err error
		if node, err = tree.NewArgument[S](n.name, n.typ); err != nil {
			return nil, fmt.Errorf("argument %q: %w", n.name, err)
		}
		node.SetSuggestions(n.provider)
	default:
		node = tree.NewLiteral[S](n.name)
	}
	node.SetDescription(n.description)
	node.SetRequirement(n.requirement)
	node.SetCommand(n.command)
	node.SetRedirect(n.redirect)
	if n.redirectPath != nil {
		*pending = append(*pending, pendingRedirect[S]{node: node, path: n.redirectPath})
	}

	if err := attach(node, n.children, pending); err != nil {
		return nil, fmt.Errorf("%s: %w", n.name, err)
	}
	return node, nil
}

// attach builds children into parent, followed by the alias literals of each child.
func attach[S any](parent *tree.Node[S], children []*NodeBuilder[S], pending *[]pendingRedirect[S]) error {
	for _, cb := range children {
		child, err := cb.build(pending)
		if err != nil {
			return err
		}
		if err := parent.AddChild(child); err != nil {
			return err
		}
		for _, alias := range cb.aliases {
			a := tree.NewLiteral[S](alias)
			a.SetDescription(child.Description())
			a.SetRequirement(child.Requirement())
			a.SetCommand(child.Command())
			a.SetRedirect(child)
			if err := parent.AddChild(a); err != nil {
				return err
			}
		}
	}
	return nil
}

// Tree builds a root holding the given commands and resolves path redirects against it.
func Tree[S any](commands ...*NodeBuilder[S]) (*tree.Node[S], error) {
	root := tree.NewRoot[S]()
	var pending []pendingRedirect[S]
	if err := attach(root, commands, &pending); err != nil {
		return nil, err
	}
	for _, p := range pending {
		target := Resolve(root, *p.path)
		if target == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPath, *p.path)
		}
		p.node.SetRedirect(target)
	}
	return root, nil
}

// Resolve follows a space-separated path of child names from root.
// The empty path resolves to root; nil is returned when a name is missing.
func Resolve[S any](root *tree.Node[S], path string) *tree.Node[S] {
	n := root
	for _, name := range strings.Fields(path) {
		if n = n.Child(name); n == nil {
			return nil
		}
	}
	return n
}
