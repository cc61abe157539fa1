package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rootPathCmd prints the resolved project root
var rootPathCmd = &cobra.Command{
	Use:   "root",
	Short: "Print the resolved project root",
	Long: `Walks upward from the working directory looking for a root marker
(.codecompanion, .git, or go.mod by default; configurable via
.codecompanion/config.yaml) and prints the first directory that matches.
Falls back to the working directory itself.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, root, err := resolveDirs()
		if err != nil {
			return err
		}
		fmt.Println(root)
		return nil
	},
}
