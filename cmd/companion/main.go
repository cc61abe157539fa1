package main

import (
	"fmt"
	"os"
	"path/filepath"

	"companion/internal/config"
	"companion/internal/prompts"
	"companion/internal/workspace"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool
	workDir string
	rootDir string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "companion",
	Short: "companion - prompt override tooling for editor AI assistants",
	Long: `companion resolves per-adapter prompt overrides from a project's
.codecompanion directory, the same layout editor assistant plugins read.

Prompt files end in .prompt: the bare dotfile carries the default prompt,
and _<encoded>.prompt files carry per-adapter overrides, where <encoded>
is the sanitized form of the adapter's logical name (underscores doubled,
separators flattened to single underscores).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workDir, "cwd", "C", "", "Working directory (defaults to the current directory)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Project root (defaults to marker-based discovery)")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(rootPathCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveDirs returns the effective working directory and project root for
// a command run, honoring the --cwd and --root overrides.
func resolveDirs() (cwd string, root string, err error) {
	cwd = workDir
	if cwd == "" {
		cwd, err = os.Getwd()
		if err != nil {
			return "", "", err
		}
	}

	root = rootDir
	if root == "" {
		settings := loadSettings(cwd)
		root, err = workspace.FindRoot(cwd, settings.RootMarkers...)
		if err != nil {
			return "", "", err
		}
	}
	return cwd, root, nil
}

// loadSettings reads optional tool settings from the cwd's config directory.
// Unreadable settings are ignored in favor of defaults.
func loadSettings(cwd string) *config.Settings {
	settings, err := config.Load(config.Path(filepath.Join(cwd, prompts.DirName)))
	if err != nil {
		logger.Warn("ignoring unreadable settings", zap.Error(err))
		return config.Default()
	}
	return settings
}
