package subscription

import (
	"github.com/google/uuid"

	"github.com/geobridge/geobridge-go/pkg/backend"
	"github.com/geobridge/geobridge-go/pkg/envelope"
	"github.com/geobridge/geobridge-go/pkg/log"
	"github.com/geobridge/geobridge-go/pkg/metrics"
)

// attachState is the attachment state of one listener.
type attachState uint8

const (
	stateUnregistered attachState = iota
	stateRegistered
	stateDetached
)

func (s attachState) String() string {
	switch s {
	case stateUnregistered:
		return "unregistered"
	case stateRegistered:
		return "registered"
	case stateDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// adapter is the state shared by both listener kinds. state is guarded by
// the bridge lock; keys has its own lock.
type adapter struct {
	id     string
	kind   Kind
	bridge *Bridge
	region *RegionQuery
	state  attachState
	keys   *envelope.KeySet

	// listener is the backend-facing value wrapping this adapter.
	listener backend.Listener
}

func newAdapter(b *Bridge, region *RegionQuery, kind Kind) *adapter {
	a := &adapter{
		id:     uuid.NewString(),
		kind:   kind,
		bridge: b,
		region: region,
		keys:   envelope.NewKeySet(),
	}
	switch kind {
	case KindDataEvents:
		a.listener = &dataAdapter{adapter: a}
	default:
		a.listener = &keyAdapter{adapter: a}
	}
	return a
}

// deliver forwards the envelope returned by build. build runs only when the
// envelope will actually be forwarded, so KeySet updates happen only for
// delivered events.
func (a *adapter) deliver(build func() envelope.Envelope) {
	b := a.bridge
	b.mu.Lock()
	defer b.mu.Unlock()

	if a.state != stateRegistered {
		b.metrics.EnvelopeDropped(a.kind.String(), metrics.ReasonDetached)
		return
	}
	if !b.relay.Bound() {
		b.metrics.EnvelopeDropped(a.kind.String(), metrics.ReasonNoConsumer)
		a.selfDetachLocked()
		return
	}

	env := build()
	b.relay.Forward(env)
	b.metrics.EnvelopeForwarded(a.kind.String(), env.Type().CallBack())
	b.tracer.Envelope(b.scopeLocked(), a.kind.String(), env, true)
}

// fail reports a region failure and detaches the adapter.
func (a *adapter) fail(err error) {
	b := a.bridge
	b.mu.Lock()
	defer b.mu.Unlock()

	if a.state != stateRegistered {
		b.metrics.EnvelopeDropped(a.kind.String(), metrics.ReasonDetached)
		return
	}

	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	b.tracer.Error(b.scopeLocked(), log.LayerBackend, a.kind.String(), ErrorCode, msg, "region query")

	if !b.relay.ForwardError(msg) {
		b.metrics.EnvelopeDropped(a.kind.String(), metrics.ReasonNoConsumer)
		a.selfDetachLocked()
		return
	}
	b.metrics.StreamError(a.kind.String())
	b.logger.Warn("region query failed",
		"session_id", b.sessionID,
		"kind", a.kind.String(),
		"error", msg)

	if err := a.region.detachAdapter(a, "query error"); err != nil {
		b.logger.Warn("detach after query error failed", "kind", a.kind.String(), "error", err)
	}
}

func (a *adapter) selfDetachLocked() {
	b := a.bridge
	b.metrics.SelfDetached(a.kind.String())
	b.logger.Debug("listener self-detach, no consumer bound",
		"session_id", b.sessionID,
		"kind", a.kind.String(),
		"listener_id", a.id)
	if err := a.region.detachAdapter(a, "no consumer"); err != nil {
		b.logger.Warn("self-detach failed", "kind", a.kind.String(), "error", err)
	}
}

func (a *adapter) ready() {
	a.deliver(func() envelope.Envelope {
		return envelope.Ready(a.keys.Keys())
	})
}

// keyAdapter is the KindKeyEvents listener.
type keyAdapter struct {
	*adapter
}

func (k *keyAdapter) OnKeyEntered(key string, loc backend.Location) {
	k.deliver(func() envelope.Envelope {
		k.keys.Add(key)
		return envelope.Entered(key, loc)
	})
}

func (k *keyAdapter) OnKeyExited(key string) {
	k.deliver(func() envelope.Envelope {
		k.keys.Remove(key)
		return envelope.Exited(key)
	})
}

func (k *keyAdapter) OnKeyMoved(key string, loc backend.Location) {
	k.deliver(func() envelope.Envelope {
		return envelope.Moved(key, loc)
	})
}

func (k *keyAdapter) OnReady() { k.ready() }

func (k *keyAdapter) OnError(err error) { k.fail(err) }

// dataAdapter is the KindDataEvents listener.
type dataAdapter struct {
	*adapter
}

func (d *dataAdapter) OnDataEntered(snap backend.Snapshot, loc backend.Location) {
	d.deliver(func() envelope.Envelope {
		d.keys.Add(snap.Key)
		return envelope.DataEntered(snap.Key, loc, envelope.NormalizeData(snap.Value))
	})
}

func (d *dataAdapter) OnDataExited(snap backend.Snapshot) {
	d.deliver(func() envelope.Envelope {
		d.keys.Remove(snap.Key)
		return envelope.DataExited(snap.Key, envelope.NormalizeData(snap.Value))
	})
}

func (d *dataAdapter) OnDataMoved(snap backend.Snapshot, loc backend.Location) {
	d.deliver(func() envelope.Envelope {
		return envelope.DataMoved(snap.Key, loc, envelope.NormalizeData(snap.Value))
	})
}

func (d *dataAdapter) OnDataChanged(snap backend.Snapshot, loc backend.Location) {
	d.deliver(func() envelope.Envelope {
		return envelope.DataChanged(snap.Key, loc, envelope.NormalizeData(snap.Value))
	})
}

func (d *dataAdapter) OnReady() { d.ready() }

func (d *dataAdapter) OnError(err error) { d.fail(err) }

var (
	_ backend.KeyListener  = (*keyAdapter)(nil)
	_ backend.DataListener = (*dataAdapter)(nil)
)
