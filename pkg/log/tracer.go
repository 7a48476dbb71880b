package log

import (
	"github.com/benbjohnson/clock"

	"github.com/geobridge/geobridge-go/pkg/envelope"
)

// Tracer stamps and emits capture events. A nil *Tracer discards everything.
type Tracer struct {
	logger Logger
	clock  clock.Clock
}

// NewTracer creates a Tracer writing to logger with timestamps from clk.
// A nil logger yields a nil Tracer; a nil clk uses the wall clock.
func NewTracer(logger Logger, clk clock.Clock) *Tracer {
	if logger == nil {
		return nil
	}
	if _, ok := logger.(NoopLogger); ok {
		return nil
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Tracer{logger: logger, clock: clk}
}

// Scope identifies the session an event belongs to.
type Scope struct {
	SessionID string
	Path      string
}

func (t *Tracer) emit(scope Scope, e Event) {
	e.Timestamp = t.clock.Now()
	e.SessionID = scope.SessionID
	e.Path = scope.Path
	t.logger.Log(e)
}

// Envelope records an envelope leaving an adapter.
func (t *Tracer) Envelope(scope Scope, kind string, env envelope.Envelope, delivered bool) {
	if t == nil {
		return
	}
	t.emit(scope, Event{
		Layer:    LayerStream,
		Category: CategoryEnvelope,
		Kind:     kind,
		Envelope: NewEnvelopeEvent(env, delivered),
	})
}

// State records a state transition.
func (t *Tracer) State(scope Scope, entity StateEntity, kind, oldState, newState, reason string) {
	if t == nil {
		return
	}
	t.emit(scope, Event{
		Layer:    LayerBridge,
		Category: CategoryState,
		Kind:     kind,
		StateChange: &StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

// Error records a failure observed at layer.
func (t *Tracer) Error(scope Scope, layer Layer, kind, code, message, context string) {
	if t == nil {
		return
	}
	t.emit(scope, Event{
		Layer:    layer,
		Category: CategoryError,
		Kind:     kind,
		Error: &ErrorEventData{
			Layer:   layer,
			Message: message,
			Code:    code,
			Context: context,
		},
	})
}
