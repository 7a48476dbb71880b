package log

import (
	"time"

	"github.com/geobridge/geobridge-go/pkg/envelope"
)

// Event represents a bridge activity event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the bridge session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Path is the backend path scope of the session.
	Path string `cbor:"5,keyasint,omitempty"`

	// Kind is the listener kind involved, if any.
	Kind string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Envelope    *EnvelopeEvent    `cbor:"10,keyasint,omitempty"` // Stream layer
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"` // Session/region/listener state
	Error       *ErrorEventData   `cbor:"12,keyasint,omitempty"` // Errors at any layer
}

// Layer indicates which part of the bridge captured the event.
type Layer uint8

const (
	// LayerBackend is the geo backend boundary.
	LayerBackend Layer = 0
	// LayerBridge is the subscription coordinator.
	LayerBridge Layer = 1
	// LayerStream is the outbound event stream.
	LayerStream Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerBackend:
		return "BACKEND"
	case LayerBridge:
		return "BRIDGE"
	case LayerStream:
		return "STREAM"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryEnvelope indicates a region event envelope.
	CategoryEnvelope Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryEnvelope:
		return "ENVELOPE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// EnvelopeEvent captures one region event as it passed the stream.
type EnvelopeEvent struct {
	// CallBack is the record discriminator (onKeyEntered, ...).
	CallBack string `cbor:"1,keyasint"`

	// Key is the affected point ID (empty for ready).
	Key string `cbor:"2,keyasint,omitempty"`

	// Latitude and Longitude are set for variants carrying a location.
	Latitude  *float64 `cbor:"3,keyasint,omitempty"`
	Longitude *float64 `cbor:"4,keyasint,omitempty"`

	// Data is the normalized payload of data variants.
	Data map[string]any `cbor:"5,keyasint,omitempty"`

	// Keys is the ready key list.
	Keys []string `cbor:"6,keyasint,omitempty"`

	// Delivered is false when no consumer was bound and the event was dropped.
	Delivered bool `cbor:"7,keyasint"`
}

// NewEnvelopeEvent builds the capture payload for env.
func NewEnvelopeEvent(env envelope.Envelope, delivered bool) *EnvelopeEvent {
	ev := &EnvelopeEvent{
		CallBack:  env.Type().CallBack(),
		Key:       env.Key(),
		Delivered: delivered,
	}
	if env.Type().HasLocation() {
		loc := env.Location()
		ev.Latitude = &loc.Latitude
		ev.Longitude = &loc.Longitude
	}
	if env.Type().HasData() {
		ev.Data = env.Data()
	}
	if env.Type() == envelope.TypeReady {
		ev.Keys = env.Keys()
	}
	return ev
}

// StateChangeEvent captures session and listener lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntitySession indicates a bridge session state change.
	StateEntitySession StateEntity = 0
	// StateEntityRegion indicates a region query state change.
	StateEntityRegion StateEntity = 1
	// StateEntityListener indicates a listener attachment state change.
	StateEntityListener StateEntity = 2
	// StateEntitySink indicates a consumer bind or unbind.
	StateEntitySink StateEntity = 3
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntitySession:
		return "SESSION"
	case StateEntityRegion:
		return "REGION"
	case StateEntityListener:
		return "LISTENER"
	case StateEntitySink:
		return "SINK"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the stream error code (if applicable).
	Code string `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
