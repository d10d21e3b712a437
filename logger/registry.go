package logger

import "sync"

// Component logger names.
const (
	ComponentRegistry  = "component"
	ComponentEngine    = "engine"
	ComponentBlueprint = "blueprint"
	ComponentHTTP      = "http"
)

// DefaultComponents are the loggers seeded by RegisterDefaults.
var DefaultComponents = []string{ComponentRegistry, ComponentEngine, ComponentBlueprint, ComponentHTTP}

var named sync.Map // name -> *Logger

// Register stores l under name, replacing any earlier registration.
func Register(name string, l *Logger) {
	named.Store(name, l)
}

// Get returns the logger registered under name. Unregistered names get
// the current global logger tagged with the component name.
func Get(name string) *Logger {
	if l, ok := named.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults tags the global logger once per component name and
// registers the results. With no names DefaultComponents are used. Call
// it after Init.
func RegisterDefaults(names ...string) {
	if len(names) == 0 {
		names = DefaultComponents
	}
	global := GetGlobalLogger()
	for _, name := range names {
		Register(name, global.WithComponent(name))
	}
}

// Reset drops every registration.
func Reset() {
	named.Clear()
}
