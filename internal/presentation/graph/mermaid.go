package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/graft/pkg/tree"
)

// GraphOverlay contains matched nodes to highlight on the graph, by path.
type GraphOverlay struct {
	Matched []string
	Cursor  string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a command tree.
// It applies semantic styling:
// - Root: ((Circle))
// - Argument: [/Parallelogram/]
// - Executable: [[Subroutine]]
// - Default: [Rectangle]
// Ownership edges are solid, redirects are dotted.
// It also applies overlay styles (Matched/Cursor) if provided.
func GenerateMermaid[S any](root *tree.Node[S], overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[*tree.Node[S]]string)
	_ = tree.Walk(root, func(path []string, n *tree.Node[S]) error {
		ids[n] = nodeID(path)
		return nil
	})

	_ = tree.Walk(root, func(path []string, n *tree.Node[S]) error {
		safeID := ids[n]

		opener, closer := "[", "]"
		switch {
		case n.IsRoot():
			opener, closer = "((", "))" // Circle
		case n.Kind() == tree.KindArgument:
			opener, closer = "[/", "/]" // Parallelogram (Input)
		case n.Command() != nil:
			opener, closer = "[[", "]]" // Subroutine
		}

		label := n.UsageText()
		if n.IsRoot() {
			label = "root"
		}
		if n.Kind() == tree.KindArgument {
			label = fmt.Sprintf("%s: %s", label, n.Type().Name())
		}
		label = strings.ReplaceAll(label, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for _, child := range n.Children() {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, ids[child]))
		}

		if target := n.Redirect(); target != nil {
			targetID, ok := ids[target]
			if !ok {
				targetID = "missing_" + sanitizeMermaidID(target.Name())
				sb.WriteString(fmt.Sprintf("    %s[\"%s ?\"]\n", targetID, target.Name()))
			}
			sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", safeID, targetID))
		}
		return nil
	})

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef matched fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef cursor fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, p := range overlay.Matched {
			safeID := nodeID(strings.Fields(p))
			if !seen[safeID] {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s matched;\n", safeID))
			}
		}

		if overlay.Cursor != "" {
			sb.WriteString(fmt.Sprintf("    class %s cursor;\n", nodeID(strings.Fields(overlay.Cursor))))
		}
	}

	return sb.String()
}

func nodeID(path []string) string {
	if len(path) == 0 {
		return "root"
	}
	return "n_" + sanitizeMermaidID(strings.Join(path, "__"))
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
