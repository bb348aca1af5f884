package tree

import "errors"

// SkipChildren may be returned by a WalkFunc to skip the children of the current node.
var SkipChildren = errors.New("skip children")

// WalkFunc visits a node with the names leading to it from the walk's start.
type WalkFunc[S any] func(path []string, n *Node[S]) error

// Walk visits every node owned by root depth-first in insertion order.
// Redirects are not followed. The root itself is visited with an empty path.
func Walk[S any](root *Node[S], fn WalkFunc[S]) error {
	return walk(root, nil, fn)
}

func walk[S any](n *Node[S], path []string, fn WalkFunc[S]) error {
	if err := fn(path, n); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, child := range n.Children() {
		childPath := append(path[:len(path):len(path)], child.Name())
		if err := walk(child, childPath, fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes owned by root, root excluded.
func Count[S any](root *Node[S]) int {
	count := 0
	_ = Walk(root, func(path []string, n *Node[S]) error {
		if n != root {
			count++
		}
		return nil
	})
	return count
}
