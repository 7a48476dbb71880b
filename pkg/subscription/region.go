package subscription

import (
	"errors"

	"go.uber.org/multierr"

	"github.com/geobridge/geobridge-go/pkg/backend"
	"github.com/geobridge/geobridge-go/pkg/envelope"
	"github.com/geobridge/geobridge-go/pkg/log"
)

// RegionQuery owns the backend region handle of a session and the listener
// attached for each kind. All methods require the bridge lock.
type RegionQuery struct {
	bridge *Bridge
	handle backend.RegionHandle
	center envelope.Location
	radius float64
	slots  [numKinds]*adapter
}

func newRegionQuery(b *Bridge, handle backend.RegionHandle, center envelope.Location, radius float64) *RegionQuery {
	return &RegionQuery{
		bridge: b,
		handle: handle,
		center: center,
		radius: radius,
	}
}

// Center returns the region center.
func (r *RegionQuery) Center() envelope.Location { return r.center }

// Radius returns the region radius in kilometers.
func (r *RegionQuery) Radius() float64 { return r.radius }

// attached reports whether a registered listener of kind is recorded.
func (r *RegionQuery) attached(kind Kind) bool {
	a := r.slots[kind]
	return a != nil && a.state == stateRegistered
}

// relocate moves the backend query in place.
func (r *RegionQuery) relocate(center envelope.Location, radius float64) error {
	if err := r.handle.SetCenter(center, radius); err != nil {
		return err
	}
	r.center = center
	r.radius = radius
	return nil
}

// attach registers a with the backend and records it as its kind's listener.
// On failure a stays unregistered and the slot stays empty.
func (r *RegionQuery) attach(a *adapter) error {
	var err error
	switch l := a.listener.(type) {
	case *dataAdapter:
		err = r.handle.AddDataListener(l)
	case *keyAdapter:
		err = r.handle.AddKeyListener(l)
	}
	if err != nil {
		return err
	}

	a.state = stateRegistered
	r.slots[a.kind] = a
	r.bridge.listenerChanged(a, stateUnregistered, "query")
	return nil
}

// detach detaches the listener of kind, if any.
func (r *RegionQuery) detach(kind Kind, reason string) error {
	a := r.slots[kind]
	if a == nil {
		return nil
	}
	return r.detachAdapter(a, reason)
}

// detachAdapter moves a to the detached state. The backend is asked to remove
// the listener only if it is registered; a listener the backend no longer
// knows about counts as removed.
func (r *RegionQuery) detachAdapter(a *adapter, reason string) error {
	if r.slots[a.kind] == a {
		r.slots[a.kind] = nil
	}
	prev := a.state
	a.state = stateDetached
	if prev != stateRegistered {
		return nil
	}
	r.bridge.listenerChanged(a, prev, reason)

	err := r.handle.RemoveListener(a.listener)
	if errors.Is(err, backend.ErrListenerNotRegistered) {
		r.bridge.logger.Debug("listener already removed by backend",
			"kind", a.kind.String(),
			"listener_id", a.id)
		return nil
	}
	if err != nil {
		r.bridge.tracer.Error(r.bridge.scopeLocked(), log.LayerBackend, a.kind.String(), "", err.Error(), "remove listener")
		return wrapBackend(OpRemoveListener, err)
	}
	return nil
}

// release detaches both listeners and releases the backend handle.
func (r *RegionQuery) release(reason string) error {
	var err error
	for _, kind := range Kinds {
		err = multierr.Append(err, r.detach(kind, reason))
	}
	r.handle.RemoveAllListeners()
	return err
}
