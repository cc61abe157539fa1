package prompts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-resolves the prompt bundle when files in the config directory
// change. Rapid saves are debounced so one editor write burst produces one
// callback.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	resolver    *Resolver
	cwd         string
	projectRoot string
	onUpdate    func(*Bundle)
	logger      *zap.Logger

	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewWatcher creates a watcher that calls onUpdate with a freshly resolved
// bundle after the config directory settles.
func NewWatcher(resolver *Resolver, cwd, projectRoot string, onUpdate func(*Bundle), logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		watcher:     fw,
		resolver:    resolver,
		cwd:         cwd,
		projectRoot: projectRoot,
		onUpdate:    onUpdate,
		logger:      logger,
		debounceMap: make(map[string]time.Time),
		debounceDur: 200 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching the resolved config directory. Non-blocking; the
// event loop runs in its own goroutine until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	dir := w.resolver.Dir(w.cwd, w.projectRoot)
	if dir == "" {
		return fmt.Errorf("no %s directory to watch under %s", w.resolver.dir, w.cwd)
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.mu.Lock()
	w.running = true
	w.mu.Unlock()

	w.logger.Info("watching prompt directory", zap.String("dir", dir))
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("error closing watcher", zap.Error(err))
	}
	w.logger.Info("prompt watcher stopped")
}

// IsWatching reports whether the event loop is running.
func (w *Watcher) IsWatching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("prompt watcher context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("prompt watcher error", zap.Error(err))

		case <-ticker.C:
			w.flushSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, w.resolver.suffix) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return // Ignore chmod etc.
	}

	w.logger.Debug("prompt file event",
		zap.String("file", event.Name),
		zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

// flushSettled re-resolves once when every pending event has aged past the
// debounce window.
func (w *Watcher) flushSettled() {
	w.mu.Lock()
	if len(w.debounceMap) == 0 {
		w.mu.Unlock()
		return
	}
	now := time.Now()
	for _, eventTime := range w.debounceMap {
		if now.Sub(eventTime) < w.debounceDur {
			w.mu.Unlock()
			return
		}
	}
	w.debounceMap = make(map[string]time.Time)
	w.mu.Unlock()

	bundle := w.resolver.Resolve(w.cwd, w.projectRoot)
	if w.onUpdate != nil {
		w.onUpdate(bundle)
	}
}
