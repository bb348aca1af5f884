package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/graft/internal/host"
	"github.com/aretw0/graft/internal/presentation/graph"
	"github.com/aretw0/graft/pkg/dispatch"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the command tree visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the command tree. Redirects are drawn as dotted edges.
With --highlight, the nodes matched by parsing the given input are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, _, err := setup(cmd)
		if err != nil {
			return err
		}
		defer engine.Close()

		foreign, _ := cmd.Flags().GetBool("foreign")
		highlight, _ := cmd.Flags().GetString("highlight")
		as, _ := cmd.Flags().GetString("as")

		var output string
		if foreign {
			d := engine.Foreign()
			output = graph.GenerateMermaid(d.Root(), overlay(d, highlight, host.ParseListener(as)))
		} else {
			d := engine.Origin()
			output = graph.GenerateMermaid(d.Root(), overlay(d, highlight, host.ToSender(host.ParseListener(as))))
		}
		fmt.Print(output)
		return nil
	},
}

func overlay[S any](d *dispatch.Dispatcher[S], input string, source S) *graph.GraphOverlay {
	if input == "" {
		return nil
	}
	ctx, err := d.Parse(input, source).Context()
	if err != nil {
		return &graph.GraphOverlay{}
	}
	o := &graph.GraphOverlay{}
	for _, pn := range ctx.Nodes() {
		if path := d.Path(pn.Node); path != nil {
			o.Matched = append(o.Matched, strings.Join(path, " "))
		}
	}
	if len(o.Matched) > 0 {
		o.Cursor = o.Matched[len(o.Matched)-1]
	}
	return o
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().Bool("foreign", false, "Draw the registered foreign tree instead of the origin tree")
	graphCmd.Flags().String("highlight", "", "Highlight the nodes matched by this input")
	graphCmd.Flags().String("as", "console:*", "Source used to parse --highlight, as name or name:perm1,perm2")
}
