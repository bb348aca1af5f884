package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without a terminal the markdown is returned as-is.
func NewRenderer(tty bool) func(string) (string, error) {
	if !tty {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Entry is one command line shown by UsageMarkdown.
type Entry struct {
	Command     string
	Description string
	Usage       []string
}

// UsageMarkdown formats command usage as a markdown document.
func UsageMarkdown(title string, entries []Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if len(entries) == 0 {
		sb.WriteString("_No commands._\n")
		return sb.String()
	}
	for _, e := range entries {
		fmt.Fprintf(&sb, "## `%s`\n\n", e.Command)
		if e.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", e.Description)
		}
		if len(e.Usage) > 0 {
			sb.WriteString("```\n")
			for _, u := range e.Usage {
				fmt.Fprintf(&sb, "%s %s\n", e.Command, u)
			}
			sb.WriteString("```\n\n")
		}
	}
	return sb.String()
}
