package main

import (
	"fmt"
	"strings"

	"companion/internal/fname"
	"companion/internal/prompts"

	"github.com/spf13/cobra"
)

// nameCmd groups the filename codec helpers
var nameCmd = &cobra.Command{
	Use:   "name",
	Short: "Encode or decode prompt filenames",
	Long: `The filename codec flattens an adapter's logical name into a
filesystem-safe prompt filename: literal underscores are doubled, then
separators become single underscores, and the result is prefixed with the
sanitized separator plus the .prompt suffix.`,
}

var nameEncodeCmd = &cobra.Command{
	Use:   "encode [adapter]",
	Short: "Print the prompt filename for an adapter name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(prompts.NewResolver().FileName(args[0]))
		return nil
	},
}

var nameDecodeCmd = &cobra.Command{
	Use:   "decode [filename]",
	Short: "Recover the adapter name from a prompt filename",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(decodeFileName(args[0]))
		return nil
	},
}

func init() {
	nameCmd.AddCommand(nameEncodeCmd)
	nameCmd.AddCommand(nameDecodeCmd)
}

// decodeFileName strips the suffix and leading separator, then runs the
// legacy codec. Accepts bare encoded tokens too.
func decodeFileName(filename string) string {
	name := strings.TrimSuffix(filename, prompts.Suffix)
	name = strings.TrimPrefix(name, "_")
	return fname.Desanitize(name)
}
