package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"companion/internal/prompts"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var resolveFormat string

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	adapterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// resolveCmd resolves and prints the full prompt bundle
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the prompt bundle for the current project",
	Long: `Scans the project's .codecompanion directory (working directory
first, then the project root) and prints the resolved prompt bundle.

A missing directory is not an error: the bundle is simply empty.

Example:
  companion resolve
  companion resolve --format json`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveFormat, "format", "f", "text", "Output format: text, json, or yaml")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cwd, root, err := resolveDirs()
	if err != nil {
		return err
	}

	resolver := prompts.NewResolver(prompts.WithLogger(logger))
	bundle := resolver.Resolve(cwd, root)

	switch resolveFormat {
	case "json":
		data, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode bundle: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(bundle)
		if err != nil {
			return fmt.Errorf("failed to encode bundle: %w", err)
		}
		fmt.Print(string(data))
	case "text":
		printBundle(bundle)
	default:
		return fmt.Errorf("unknown format: %s", resolveFormat)
	}
	return nil
}

func printBundle(bundle *prompts.Bundle) {
	if bundle.Default == "" && len(bundle.Adapters) == 0 {
		fmt.Println(dimStyle.Render("No prompt overrides found."))
		return
	}

	if bundle.Default != "" {
		fmt.Println(headerStyle.Render("Default prompt"))
		fmt.Println(indent(bundle.Default, "  "))
	}

	if len(bundle.Adapters) > 0 {
		fmt.Println(headerStyle.Render("Adapter prompts"))
		names := make([]string, 0, len(bundle.Adapters))
		for name := range bundle.Adapters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s %s\n",
				adapterStyle.Render(capitalize(name)),
				dimStyle.Render(fmt.Sprintf("(%d bytes)", len(bundle.Adapters[name]))))
		}
	}
}

// capitalize upper-cases the first rune for display.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
