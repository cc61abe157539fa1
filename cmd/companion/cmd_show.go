package main

import (
	"fmt"
	"strings"

	"companion/internal/prompts"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var renderMarkdown bool

// showCmd prints a single resolved prompt
var showCmd = &cobra.Command{
	Use:   "show [adapter]",
	Short: "Print one resolved prompt",
	Long: `Prints the default prompt, or the prompt for the named adapter.

Use --render to display markdown prompts styled for the terminal.

Example:
  companion show
  companion show my_adapter --render`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&renderMarkdown, "render", false, "Render the prompt as markdown")
}

func runShow(cmd *cobra.Command, args []string) error {
	cwd, root, err := resolveDirs()
	if err != nil {
		return err
	}

	bundle := prompts.NewResolver(prompts.WithLogger(logger)).Resolve(cwd, root)

	var text string
	if len(args) == 0 {
		text = bundle.Default
		if text == "" {
			return fmt.Errorf("no default prompt found")
		}
	} else {
		var ok bool
		text, ok = bundle.Adapters[args[0]]
		if !ok {
			return fmt.Errorf("no prompt for adapter %q", args[0])
		}
	}

	if renderMarkdown {
		settings := loadSettings(cwd)
		out, err := glamour.Render(text, settings.RenderStyle)
		if err != nil {
			return fmt.Errorf("failed to render prompt: %w", err)
		}
		fmt.Print(out)
		return nil
	}

	fmt.Print(text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}
	return nil
}
