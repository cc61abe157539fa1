// Package host abstracts the editor-side APIs an assistant plugin leans on:
// notifications, user autocommand events, OS detection, and buffer options.
// Callers inject a concrete Environment for their platform; headless tools
// use LogEnvironment.
package host

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Level classifies notifications.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// EventPrefix namespaces emitted events the way editor user-autocommands do.
const EventPrefix = "CodeCompanion"

// Event names emitted by this module.
const (
	EventPromptsChanged = "PromptsChanged"
)

// Event is one emitted host event.
type Event struct {
	ID      string
	Name    string
	Payload map[string]any
	Time    time.Time
}

// Environment is the editor capability surface consumed by the rest of the
// module. Implementations adapt a concrete host platform.
type Environment interface {
	Notify(msg string, level Level)
	EmitEvent(name string, payload map[string]any)
	OperatingSystem() string
	SetBufferOption(buffer int, name string, value any) error
}

// Emitter fans events out to subscribers. Safe for concurrent use.
type Emitter struct {
	mu   sync.RWMutex
	subs map[string][]func(Event)
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{subs: make(map[string][]func(Event))}
}

// Subscribe registers fn for the given bare event name (without the
// EventPrefix). The empty name subscribes to every event.
func (e *Emitter) Subscribe(name string, fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs[name] = append(e.subs[name], fn)
}

// Emit builds the event, stamps it with a fresh ID, and delivers it
// synchronously to matching subscribers.
func (e *Emitter) Emit(name string, payload map[string]any) Event {
	ev := Event{
		ID:      uuid.NewString(),
		Name:    EventPrefix + name,
		Payload: payload,
		Time:    time.Now(),
	}

	e.mu.RLock()
	handlers := make([]func(Event), 0, len(e.subs[name])+len(e.subs[""]))
	handlers = append(handlers, e.subs[name]...)
	handlers = append(handlers, e.subs[""]...)
	e.mu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
	return ev
}

// LogEnvironment is a headless Environment writing notifications and events
// to a zap logger. Buffer options have no meaning outside an editor, so
// setting one fails.
type LogEnvironment struct {
	logger  *zap.Logger
	emitter *Emitter
}

// NewLogEnvironment creates a headless environment. A nil logger disables
// output without disabling event dispatch.
func NewLogEnvironment(logger *zap.Logger) *LogEnvironment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogEnvironment{logger: logger, emitter: NewEmitter()}
}

// Emitter exposes the event emitter for subscriptions.
func (e *LogEnvironment) Emitter() *Emitter { return e.emitter }

func (e *LogEnvironment) Notify(msg string, level Level) {
	switch level {
	case LevelError:
		e.logger.Error(msg)
	case LevelWarn:
		e.logger.Warn(msg)
	case LevelTrace, LevelDebug:
		e.logger.Debug(msg)
	default:
		e.logger.Info(msg)
	}
}

func (e *LogEnvironment) EmitEvent(name string, payload map[string]any) {
	ev := e.emitter.Emit(name, payload)
	e.logger.Debug("event emitted",
		zap.String("event", ev.Name),
		zap.String("id", ev.ID))
}

func (e *LogEnvironment) OperatingSystem() string { return DetectOS() }

func (e *LogEnvironment) SetBufferOption(buffer int, name string, value any) error {
	return fmt.Errorf("no buffer %d in a headless environment", buffer)
}

// DetectOS maps the Go runtime to the names editor plugins use.
func DetectOS() string {
	switch runtime.GOOS {
	case "darwin":
		return "mac"
	case "windows":
		return "windows"
	case "linux":
		if os.Getenv("WSL_DISTRO_NAME") != "" {
			return "wsl"
		}
		return "linux"
	default:
		return runtime.GOOS
	}
}
