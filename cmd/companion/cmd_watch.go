package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"companion/internal/host"
	"companion/internal/prompts"

	"github.com/spf13/cobra"
)

// watchCmd watches the prompt directory and re-resolves on change
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the prompt directory and re-resolve on change",
	Long: `Watches the project's .codecompanion directory and re-resolves the
prompt bundle whenever a .prompt file is created, modified, or removed.
Each reload emits a host event and a notification.

Runs until interrupted.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cwd, root, err := resolveDirs()
	if err != nil {
		return err
	}

	env := host.NewLogEnvironment(logger)
	env.Emitter().Subscribe(host.EventPromptsChanged, func(ev host.Event) {
		fmt.Printf("[%s] %s adapters=%v default=%v\n",
			ev.Time.Format("15:04:05"), ev.Name,
			ev.Payload["adapters"], ev.Payload["default"])
	})

	resolver := prompts.NewResolver(prompts.WithLogger(logger))
	watcher, err := prompts.NewWatcher(resolver, cwd, root, func(bundle *prompts.Bundle) {
		env.EmitEvent(host.EventPromptsChanged, map[string]any{
			"adapters": len(bundle.Adapters),
			"default":  bundle.Default != "",
		})
		env.Notify(fmt.Sprintf("prompts reloaded: %d adapter override(s)", len(bundle.Adapters)), host.LevelInfo)
	}, logger)
	if err != nil {
		return err
	}

	baseCtx := cmd.Context()
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(baseCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Println("Watching for prompt changes. Press Ctrl+C to stop.")
	<-ctx.Done()
	return nil
}
