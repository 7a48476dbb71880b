// Package backend defines the contract between the subscription bridge and
// a geo point store.
//
// A Store keeps point locations keyed by ID and supports circular region
// queries. Point operations complete asynchronously through a callback that
// fires exactly once. A RegionHandle is a live query: listeners attached to
// it receive membership callbacks from the store.
//
// # Callback Contract
//
// Stores must deliver listener callbacks from their own goroutines and
// never synchronously from inside AddKeyListener, AddDataListener,
// RemoveListener, SetCenter or RemoveAllListeners. Callers are allowed to
// hold locks across those calls that the callbacks also take.
//
// For every listener OnReady fires after the initial enumeration of keys
// already inside the region, and before any event for keys outside that
// initial set. After RemoveListener returns, a store may still have one
// callback in flight for that listener; callers must tolerate it.
//
// RemoveListener returns ErrListenerNotRegistered for a listener that is not
// attached to the handle.
package backend
