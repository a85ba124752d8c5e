package logging

import (
	"log/slog"
	"strings"
	"sync"
)

// Logger is a duck-typed interface satisfied by *slog.Logger.
// Use this interface instead of *slog.Logger to decouple from the concrete type.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	moduleLoggers = make(map[string]*slog.Logger)
	mutex         sync.RWMutex
)

// moduleComponents maps the binary's own modules onto components.
var moduleComponents = map[string]Component{
	"main":    ComponentMain,
	"config":  ComponentConfig,
	"api":     ComponentDispatch,
	"http":    ComponentDispatch,
	"metrics": ComponentMain,
	"systemd": ComponentDBus,
	"init":    ComponentInit,
}

// ModuleComponent returns the component a module logs through. Modules that
// name a component directly (fsal, COMPONENT_NLM) use it; anything else logs
// on COMPONENT_MAIN.
func ModuleComponent(module string) Component {
	if c, ok := moduleComponents[strings.ToLower(module)]; ok {
		return c
	}
	if c, ok := ComponentByName(module); ok {
		return c
	}
	return ComponentMain
}

// GetLogger returns a logger for the specified module, creating it if needed.
// Records go through the default facility, gated by the module's component.
func GetLogger(module string) *slog.Logger {
	mutex.RLock()
	if logger, exists := moduleLoggers[module]; exists {
		mutex.RUnlock()
		return logger
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	// Double-check in case another goroutine created it
	if logger, exists := moduleLoggers[module]; exists {
		return logger
	}

	handler := &slogHandler{comp: ModuleComponent(module)}
	logger := slog.New(handler).With("module", module)
	moduleLoggers[module] = logger
	return logger
}
