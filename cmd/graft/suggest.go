package main

import (
	"fmt"
	"os"

	"github.com/aretw0/graft/internal/host"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <input>",
	Short: "Complete a command line through the foreign tree",
	Long: `Parses the input with the registered foreign tree and prints the completions
a remote listener would see. Quote the input to keep trailing spaces.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, _, err := setup(cmd)
		if err != nil {
			return err
		}
		defer engine.Close()

		input := args[0]
		as, _ := cmd.Flags().GetString("as")
		cursor, _ := cmd.Flags().GetInt("cursor")
		jsonMode, _ := cmd.Flags().GetBool("json")

		if cursor < 0 || cursor > len(input) {
			cursor = len(input)
		}
		result := engine.SuggestAt(input, cursor, host.ParseListener(as))

		if jsonMode {
			return json.NewEncoder(os.Stdout).Encode(result)
		}
		for _, s := range result.List {
			if s.Tooltip != "" {
				fmt.Printf("%s\t%s\n", s.Text, s.Tooltip)
				continue
			}
			fmt.Println(s.Text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().String("as", "console:*", "Listener typing, as name or name:perm1,perm2")
	suggestCmd.Flags().Int("cursor", -1, "Offset to complete at (defaults to the end of input)")
	suggestCmd.Flags().Bool("json", false, "Print the suggestions as JSON")
}
