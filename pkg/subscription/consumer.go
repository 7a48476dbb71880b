package subscription

import (
	"sync"
	"sync/atomic"

	"github.com/geobridge/geobridge-go/pkg/envelope"
)

// Stream error signal.
const (
	ErrorCode          = "Error"
	ErrorMessagePrefix = "GeoQueryError: "
)

// Consumer receives the outbound event stream.
// Calls are made while the bridge lock is held.
type Consumer interface {
	// OnEvent receives one region event.
	OnEvent(env envelope.Envelope)

	// OnError receives a region query failure.
	OnError(code, message string)
}

// ConsumerFunc adapts a pair of functions to the Consumer interface.
// Nil functions discard their signal.
type ConsumerFunc struct {
	Event func(env envelope.Envelope)
	Error func(code, message string)
}

// OnEvent calls f.Event.
func (f ConsumerFunc) OnEvent(env envelope.Envelope) {
	if f.Event != nil {
		f.Event(env)
	}
}

// OnError calls f.Error.
func (f ConsumerFunc) OnError(code, message string) {
	if f.Error != nil {
		f.Error(code, message)
	}
}

// StreamError is an error signal received by a ChannelConsumer.
type StreamError struct {
	Code    string
	Message string
}

func (e StreamError) Error() string {
	return e.Code + ": " + e.Message
}

// ChannelConsumer buffers the stream into channels. It never blocks the
// bridge: signals arriving on a full buffer are dropped and counted.
type ChannelConsumer struct {
	events  chan envelope.Envelope
	errors  chan StreamError
	dropped atomic.Uint64

	mu     sync.Mutex
	onDrop func(env envelope.Envelope)
}

// NewChannelConsumer creates a ChannelConsumer with buffer slots per channel.
func NewChannelConsumer(buffer int) *ChannelConsumer {
	if buffer < 0 {
		buffer = 0
	}
	return &ChannelConsumer{
		events: make(chan envelope.Envelope, buffer),
		errors: make(chan StreamError, buffer),
	}
}

// OnEvent queues env or drops it when the buffer is full.
func (c *ChannelConsumer) OnEvent(env envelope.Envelope) {
	select {
	case c.events <- env:
	default:
		c.drop(env)
	}
}

// OnError queues the error signal or drops it when the buffer is full.
func (c *ChannelConsumer) OnError(code, message string) {
	select {
	case c.errors <- StreamError{Code: code, Message: message}:
	default:
		c.drop(envelope.Error(message))
	}
}

func (c *ChannelConsumer) drop(env envelope.Envelope) {
	c.dropped.Add(1)
	c.mu.Lock()
	fn := c.onDrop
	c.mu.Unlock()
	if fn != nil {
		fn(env)
	}
}

// OnDrop registers fn to be called for every dropped signal.
func (c *ChannelConsumer) OnDrop(fn func(env envelope.Envelope)) {
	c.mu.Lock()
	c.onDrop = fn
	c.mu.Unlock()
}

// Events returns the envelope channel.
func (c *ChannelConsumer) Events() <-chan envelope.Envelope { return c.events }

// Errors returns the error channel.
func (c *ChannelConsumer) Errors() <-chan StreamError { return c.errors }

// Dropped returns the number of dropped signals.
func (c *ChannelConsumer) Dropped() uint64 { return c.dropped.Load() }

var (
	_ Consumer = ConsumerFunc{}
	_ Consumer = (*ChannelConsumer)(nil)
)
