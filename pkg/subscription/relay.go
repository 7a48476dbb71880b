package subscription

import (
	"reflect"
	"sync"

	"github.com/geobridge/geobridge-go/pkg/envelope"
)

// Relay holds the at most one consumer bound to the stream.
// When used by a Bridge the bridge lock is always taken before the relay lock.
type Relay struct {
	mu       sync.Mutex
	consumer Consumer
}

// NewRelay creates an unbound relay.
func NewRelay() *Relay {
	return &Relay{}
}

// Bind replaces any prior binding with c. A nil c, including a typed nil
// pointer, unbinds.
func (r *Relay) Bind(c Consumer) {
	c = boundConsumer(c)
	r.mu.Lock()
	r.consumer = c
	r.mu.Unlock()
}

// boundConsumer maps typed nil consumers to an untyped nil.
func boundConsumer(c Consumer) Consumer {
	if c == nil {
		return nil
	}
	switch v := reflect.ValueOf(c); v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return nil
		}
	}
	return c
}

// Unbind clears the binding.
func (r *Relay) Unbind() {
	r.Bind(nil)
}

// Bound reports whether a consumer is bound.
func (r *Relay) Bound() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.consumer != nil
}

// Forward delivers env to the bound consumer.
// Returns false when no consumer is bound.
func (r *Relay) Forward(env envelope.Envelope) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.consumer == nil {
		return false
	}
	r.consumer.OnEvent(env)
	return true
}

// ForwardError delivers a region failure to the bound consumer's error
// channel. Returns false when no consumer is bound.
func (r *Relay) ForwardError(message string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.consumer == nil {
		return false
	}
	r.consumer.OnError(ErrorCode, ErrorMessagePrefix+message)
	return true
}
