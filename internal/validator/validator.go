// Package validator checks an origin command tree before it is mapped.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/graft/pkg/mapper"
	"github.com/aretw0/graft/pkg/tree"
)

// ValidateTree checks for redirects leaving the tree, redirects to the root, argument types
// without a foreign equivalent and leaves that can never execute.
func ValidateTree[S any](root *tree.Node[S]) error {
	if !root.IsRoot() {
		return fmt.Errorf("expected a root node, got %s %q", root.Kind(), root.Name())
	}

	type item struct {
		node *tree.Node[S]
		path []string
	}

	// 1. Crawl owned nodes breadth-first, remembering where each one lives
	owned := map[*tree.Node[S]]bool{root: true}
	var order []item
	queue := []item{{node: root}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, child := range current.node.Children() {
			if owned[child] {
				continue
			}
			owned[child] = true
			queue = append(queue, item{node: child, path: append(current.path[:len(current.path):len(current.path)], child.Name())})
		}
	}

	// 2. Inspect each node
	var errors []string
	for _, it := range order[1:] {
		n, path := it.node, strings.Join(it.path, " ")

		if target := n.Redirect(); target != nil {
			switch {
			case target == root:
				errors = append(errors, fmt.Sprintf("Redirect to root: '%s'", path))
			case !owned[target]:
				errors = append(errors, fmt.Sprintf("Redirect outside the tree: '%s' -> '%s'", path, target.Name()))
			}
		}

		if n.Kind() == tree.KindArgument {
			if _, err := mapper.Translate(n.Type(), path); err != nil {
				errors = append(errors, fmt.Sprintf("Unmappable type: %v", err))
			}
		}

		if n.IsLeaf() && n.Command() == nil && n.Redirect() == nil {
			errors = append(errors, fmt.Sprintf("Dead end: '%s' neither executes nor redirects", path))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}
