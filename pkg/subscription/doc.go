// Package subscription implements the live region subscription bridge.
//
// A Bridge owns one backend session, at most one live region query and the
// single outbound event stream. Callers create a region query with
// QueryRegion and receive membership changes of the points inside it as
// envelope.Envelope values on the bound Consumer.
//
// # Listener Kinds
//
// Two independent listener kinds can be attached to the same region query:
//   - KindKeyEvents: bare entered/exited/moved events
//   - KindDataEvents: the same events enriched with the point payload, plus changed
//
// At most one listener of each kind is attached at a time. Querying again for
// a kind replaces only that kind's listener and moves the shared region in
// place; the other kind keeps running against the moved region.
//
// # Readiness
//
// Each listener reports a ready envelope once the backend has enumerated the
// points initially inside the region. The ready key list is the set of keys
// that listener has reported as entered and not exited, in first-entry order.
//
// # Consumers
//
// The stream has at most one consumer. Listen binds it and Cancel unbinds it.
// Cancelling does not tear anything down: each listener detaches itself on
// its next backend callback when it finds no consumer bound.
//
// Consumers are invoked while the bridge lock is held. They must return
// quickly and must not call back into the Bridge.
//
// # Lifecycle
//
// Start opens a fresh session and discards any prior region query. Close
// ends the session; later operations fail with ErrNotInitialized until the
// next Start.
package subscription
