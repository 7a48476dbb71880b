package backend

import (
	"context"
	"errors"

	"github.com/geobridge/geobridge-go/pkg/envelope"
)

// Backend errors.
var (
	// ErrListenerNotRegistered is returned when removing a listener that is
	// not attached to the region handle.
	ErrListenerNotRegistered = errors.New("listener not registered")

	// ErrListenerExists is returned when attaching a listener twice.
	ErrListenerExists = errors.New("listener already registered")

	// ErrClosed is returned for operations on a closed store or handle.
	ErrClosed = errors.New("backend closed")
)

// Location is the coordinate type used by stores.
type Location = envelope.Location

// Snapshot is the payload stored alongside a point.
type Snapshot struct {
	// Key is the point ID.
	Key string

	// Value is the raw payload; nil when the point has none.
	Value any
}

// Opener binds a store for a path scope.
type Opener interface {
	Open(path string) (Store, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (Store, error)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (Store, error) {
	return f(path)
}

// Store is a geo point store bound to one path scope.
type Store interface {
	// SetLocation writes a point. done receives nil or the write failure.
	SetLocation(ctx context.Context, key string, loc Location, done func(error))

	// RemoveLocation deletes a point. done receives nil or the failure.
	RemoveLocation(ctx context.Context, key string, done func(error))

	// GetLocation reads a point. found is false when the key has no
	// recorded location; err reports a read failure.
	GetLocation(ctx context.Context, key string, done func(loc Location, found bool, err error))

	// QueryAtLocation creates a live region query with no listeners.
	QueryAtLocation(center Location, radius float64) (RegionHandle, error)
}

// RegionHandle is a live circular region query.
type RegionHandle interface {
	// Center returns the current query center.
	Center() Location

	// Radius returns the current query radius in kilometers.
	Radius() float64

	// SetCenter moves the query in place. Attached listeners observe the
	// membership changes of the relocation and a fresh OnReady.
	SetCenter(center Location, radius float64) error

	// AddKeyListener attaches a key-only listener.
	AddKeyListener(l KeyListener) error

	// AddDataListener attaches a data-enriched listener.
	AddDataListener(l DataListener) error

	// RemoveListener detaches l. Returns ErrListenerNotRegistered if l is
	// not attached.
	RemoveListener(l Listener) error

	// RemoveAllListeners detaches every listener and releases the query.
	RemoveAllListeners()
}

// Listener is the capability shared by both listener kinds.
type Listener interface {
	// OnReady fires once the initial enumeration is complete.
	OnReady()

	// OnError fires when the query fails.
	OnError(err error)
}

// KeyListener receives bare key membership events.
type KeyListener interface {
	Listener
	OnKeyEntered(key string, loc Location)
	OnKeyExited(key string)
	OnKeyMoved(key string, loc Location)
}

// DataListener receives membership events with the point payload.
type DataListener interface {
	Listener
	OnDataEntered(snap Snapshot, loc Location)
	OnDataExited(snap Snapshot)
	OnDataMoved(snap Snapshot, loc Location)
	OnDataChanged(snap Snapshot, loc Location)
}
