package main

import (
	"fmt"

	"github.com/aretw0/graft/internal/host"
	"github.com/aretw0/graft/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage [command]",
	Short: "Show the command lines a source may use",
	Long:  `Without arguments, renders the usage of every registered command. With a command name, lists its command lines.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, _, err := setup(cmd)
		if err != nil {
			return err
		}
		defer engine.Close()

		as, _ := cmd.Flags().GetString("as")
		source := host.ParseListener(as)

		if len(args) == 1 {
			lines, err := engine.Usage(args[0], source)
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Println(l)
			}
			return nil
		}

		var entries []tui.Entry
		for _, h := range engine.Commands() {
			lines, err := engine.Usage(h.Qualified(), source)
			if err != nil || len(lines) == 0 {
				continue
			}
			entry := tui.Entry{Command: h.Qualified(), Usage: lines}
			if h.Node != nil {
				entry.Description = h.Node.Description()
			}
			entries = append(entries, entry)
		}

		tty := isTerminal()
		if tty {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		out, err := tui.NewRenderer(tty)(tui.UsageMarkdown("Commands", entries))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
	usageCmd.Flags().String("as", "console:*", "Source asking, as name or name:perm1,perm2")
}
