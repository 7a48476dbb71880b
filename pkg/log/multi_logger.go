package log

import "sync"

// MultiLogger sends events to multiple loggers.
// Nil entries are skipped.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger that sends events to all provided loggers.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	kept := make([]Logger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			kept = append(kept, l)
		}
	}
	return &MultiLogger{loggers: kept}
}

// Log sends the event to all configured loggers.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// MemoryLogger keeps events in memory. Used by tests and the simulator
// summary.
type MemoryLogger struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryLogger creates an empty MemoryLogger.
func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

// Log appends the event.
func (m *MemoryLogger) Log(event Event) {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (m *MemoryLogger) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Filter returns the recorded events matching f.
func (m *MemoryLogger) Filter(f Filter) []Event {
	var out []Event
	for _, e := range m.Events() {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

var (
	_ Logger = (*MultiLogger)(nil)
	_ Logger = (*MemoryLogger)(nil)
)
