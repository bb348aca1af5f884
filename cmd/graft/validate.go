package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the command definitions for consistency",
	Long: `Loads the definitions, reports redirects that leave the tree or target the root,
argument types without a foreign equivalent and leaves that can never execute,
then maps the tree to make sure every command can be registered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, _, err := setup(cmd)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		defer engine.Close()

		fmt.Printf("Definitions are valid! ✅ (%d commands)\n", len(engine.Commands()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
