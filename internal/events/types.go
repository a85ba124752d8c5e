package events

// Event type constants for kelindar/event.
const (
	TypeLevelChanged uint32 = iota + 1
	TypeDestinationChanged
	TypeLogEntry
	TypeConfigReloaded
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// LevelChangedEvent is published whenever a component threshold changes.
type LevelChangedEvent struct {
	Component string `json:"component" example:"COMPONENT_FSAL" doc:"Component name"`
	From      string `json:"from" example:"NIV_EVENT" doc:"Previous level"`
	To        string `json:"to" example:"NIV_DEBUG" doc:"New level"`
	Source    string `json:"source" example:"config" doc:"What triggered the change: config, environment, api"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for LevelChangedEvent.
func (e LevelChangedEvent) Type() uint32 { return TypeLevelChanged }

// DestinationChangedEvent is published whenever a component is routed to a
// different sink.
type DestinationChangedEvent struct {
	Component string `json:"component" example:"COMPONENT_LOG" doc:"Component name"`
	From      string `json:"from" example:"SYSLOG" doc:"Previous destination"`
	To        string `json:"to" example:"/var/log/app.log" doc:"New destination"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for DestinationChangedEvent.
func (e DestinationChangedEvent) Type() uint32 { return TypeDestinationChanged }

// LogEntryEvent carries one dispatched record for SSE streaming.
type LogEntryEvent struct {
	Seq       uint64 `json:"seq" example:"42" doc:"Monotonic sequence number for deduplication"`
	Timestamp string `json:"timestamp" example:"2025-01-09T10:30:00.123Z" doc:"Record timestamp"`
	Component string `json:"component" example:"COMPONENT_FSAL" doc:"Source component"`
	Level     string `json:"level" example:"NIV_WARN" doc:"Record level"`
	Thread    string `json:"thread" example:"worker-1" doc:"Thread name"`
	Function  string `json:"function,omitempty" example:"main.run" doc:"Calling function"`
	Message   string `json:"message" doc:"Rendered message body"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }

// ConfigReloadedEvent is published after the configuration file watcher
// re-applies the [log] block.
type ConfigReloadedEvent struct {
	Path      string `json:"path" example:"/etc/complog/config.toml" doc:"Configuration file"`
	Applied   int    `json:"applied" example:"3" doc:"Number of component levels applied"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ConfigReloadedEvent.
func (e ConfigReloadedEvent) Type() uint32 { return TypeConfigReloaded }
