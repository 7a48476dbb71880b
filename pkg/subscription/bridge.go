package subscription

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/geobridge/geobridge-go/pkg/backend"
	"github.com/geobridge/geobridge-go/pkg/envelope"
	"github.com/geobridge/geobridge-go/pkg/log"
	"github.com/geobridge/geobridge-go/pkg/metrics"
)

// Region query metric ops.
const (
	regionCreate   = "create"
	regionRelocate = "relocate"
	regionRelease  = "release"
)

// Bridge coordinates one backend session, its region query and the
// outbound stream. It is safe for concurrent use.
type Bridge struct {
	mu sync.Mutex

	opener  backend.Opener
	config  Config
	logger  *slog.Logger
	capture log.Logger
	tracer  *log.Tracer
	metrics *metrics.BridgeCollector
	clock   clock.Clock

	// Session state
	store     backend.Store
	path      string
	sessionID string
	region    *RegionQuery

	relay *Relay
}

// NewBridge creates a bridge opening stores through opener.
func NewBridge(opener backend.Opener, opts ...Option) *Bridge {
	b := &Bridge{
		opener: opener,
		config: DefaultConfig(),
		logger: slog.Default(),
		clock:  clock.New(),
		relay:  NewRelay(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.tracer = log.NewTracer(b.capture, b.clock)
	return b
}

// Start binds the backend at path and begins a fresh session. Any prior
// region query and listeners are discarded. On failure the prior session is
// left untouched.
func (b *Bridge) Start(path string) error {
	if path == "" {
		path = b.config.DefaultPath
	}
	if path == "" {
		return invalidArgument("path is required")
	}

	store, err := b.opener.Open(path)
	if err != nil {
		b.logger.Warn("open backend failed", "path", path, "error", err)
		return wrapBackend(OpStart, err)
	}
	if store == nil {
		return wrapBackend(OpStart, errors.New("opener returned no store"))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.region != nil {
		if err := b.releaseRegionLocked("restart"); err != nil {
			b.logger.Warn("release prior region failed", "session_id", b.sessionID, "error", err)
		}
	}

	oldState, reason := "", ""
	if b.sessionID != "" {
		oldState, reason = "started", "restart of "+b.sessionID
	}
	b.store = store
	b.path = path
	b.sessionID = uuid.NewString()

	b.logger.Info("session started", "session_id", b.sessionID, "path", path)
	b.tracer.State(b.scopeLocked(), log.StateEntitySession, "", oldState, "started", reason)
	return nil
}

// Close ends the session: listeners are detached, the region is released and
// the consumer is unbound. SessionID and Path are empty afterwards. Close is
// idempotent.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.region != nil {
		err = b.releaseRegionLocked("close")
	}
	if b.relay.Bound() {
		b.relay.Unbind()
		b.tracer.State(b.scopeLocked(), log.StateEntitySink, "", "bound", "unbound", "close")
	}
	if b.store != nil {
		b.logger.Info("session closed", "session_id", b.sessionID)
		b.tracer.State(b.scopeLocked(), log.StateEntitySession, "", "started", "closed", "")
	}
	b.store = nil
	b.path = ""
	b.sessionID = ""
	return err
}

// SessionID returns the current session ID, empty before Start and after
// Close.
func (b *Bridge) SessionID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessionID
}

// Path returns the backend path of the current session, empty when no
// session is open.
func (b *Bridge) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.path
}

// SetLocation writes a point. done is called exactly once with nil or a
// *BackendError.
func (b *Bridge) SetLocation(ctx context.Context, id string, lat, lng float64, done func(error)) error {
	store, err := b.pointStore(id)
	if err != nil {
		return err
	}
	loc := envelope.Location{Latitude: lat, Longitude: lng}
	if !loc.Valid() {
		return invalidArgument("location %s out of range", loc)
	}

	complete := b.pointCompletion(OpSetLocation, done)
	store.SetLocation(ctx, id, loc, func(err error) {
		complete(wrapBackend(OpSetLocation, err))
	})
	return nil
}

// RemoveLocation deletes a point. done is called exactly once with nil or a
// *BackendError.
func (b *Bridge) RemoveLocation(ctx context.Context, id string, done func(error)) error {
	store, err := b.pointStore(id)
	if err != nil {
		return err
	}

	complete := b.pointCompletion(OpRemoveLocation, done)
	store.RemoveLocation(ctx, id, func(err error) {
		complete(wrapBackend(OpRemoveLocation, err))
	})
	return nil
}

// GetLocation reads a point. done is called exactly once with the location,
// or with a *NotFoundError or *BackendError.
func (b *Bridge) GetLocation(ctx context.Context, id string, done func(envelope.Location, error)) error {
	store, err := b.pointStore(id)
	if err != nil {
		return err
	}

	var result envelope.Location
	complete := b.pointCompletion(OpGetLocation, func(err error) {
		if done != nil {
			done(result, err)
		}
	})
	store.GetLocation(ctx, id, func(loc backend.Location, found bool, err error) {
		switch {
		case err != nil:
			complete(wrapBackend(OpGetLocation, err))
		case !found:
			complete(&NotFoundError{Key: id})
		default:
			result = loc
			complete(nil)
		}
	})
	return nil
}

// pointStore checks the preconditions shared by point operations.
func (b *Bridge) pointStore(id string) (backend.Store, error) {
	b.mu.Lock()
	store := b.store
	b.mu.Unlock()

	if store == nil {
		return nil, ErrNotInitialized
	}
	if id == "" {
		return nil, invalidArgument("id is required")
	}
	return store, nil
}

// pointCompletion wraps done so it runs at most once and records the result.
func (b *Bridge) pointCompletion(op string, done func(error)) func(error) {
	started := b.clock.Now()
	var once sync.Once
	return func(err error) {
		once.Do(func() {
			result := metrics.ResultOK
			switch {
			case errors.Is(err, ErrNotFound):
				result = metrics.ResultNotFound
			case err != nil:
				result = metrics.ResultError
			}
			b.metrics.PointOp(op, result, b.clock.Since(started))
			if err != nil && result == metrics.ResultError {
				b.logger.Debug("point operation failed", "op", op, "error", err)
			}
			if done != nil {
				done(err)
			}
		})
	}
}

// QueryRegion attaches a fresh listener of kind to the region centered at
// (lat, lng) with radius in kilometers. The first call creates the region
// query; later calls replace only kind's listener and move the existing
// region in place.
func (b *Bridge) QueryRegion(lat, lng, radius float64, kind Kind) error {
	center := envelope.Location{Latitude: lat, Longitude: lng}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.store == nil {
		return ErrNotInitialized
	}
	if err := b.validateRegion(center, radius, kind); err != nil {
		return err
	}

	if b.region == nil {
		handle, err := b.store.QueryAtLocation(center, radius)
		if err != nil {
			b.tracer.Error(b.scopeLocked(), log.LayerBackend, kind.String(), "", err.Error(), "create region")
			return wrapBackend(OpQueryAtLocation, err)
		}
		b.region = newRegionQuery(b, handle, center, radius)
		b.metrics.RegionQuery(regionCreate)
		b.logger.Debug("region created",
			"session_id", b.sessionID,
			"center", center.String(),
			"radius_km", radius)
		b.tracer.State(b.scopeLocked(), log.StateEntityRegion, kind.String(), "", "created", center.String())
	} else {
		if err := b.region.detach(kind, "replaced"); err != nil {
			b.logger.Warn("detach replaced listener failed", "kind", kind.String(), "error", err)
		}
		if err := b.region.relocate(center, radius); err != nil {
			b.tracer.Error(b.scopeLocked(), log.LayerBackend, kind.String(), "", err.Error(), "relocate region")
			return wrapBackend(OpQueryAtLocation, err)
		}
		b.metrics.RegionQuery(regionRelocate)
		b.logger.Debug("region relocated",
			"session_id", b.sessionID,
			"center", center.String(),
			"radius_km", radius)
		b.tracer.State(b.scopeLocked(), log.StateEntityRegion, kind.String(), "live", "relocated", center.String())
	}

	a := newAdapter(b, b.region, kind)
	if err := b.region.attach(a); err != nil {
		b.tracer.Error(b.scopeLocked(), log.LayerBackend, kind.String(), "", err.Error(), "add listener")
		return wrapBackend(OpQueryAtLocation, err)
	}
	return nil
}

func (b *Bridge) validateRegion(center envelope.Location, radius float64, kind Kind) error {
	if !kind.Valid() {
		return invalidArgument("unknown listener kind %d", kind)
	}
	if !center.Valid() {
		return invalidArgument("center %s out of range", center)
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return invalidArgument("radius %g must be a non-negative number", radius)
	}
	if b.config.MaxRadius > 0 && radius > b.config.MaxRadius {
		return invalidArgument("radius %g exceeds maximum %g", radius, b.config.MaxRadius)
	}
	return nil
}

// StopListener detaches both listeners and releases the region query.
// Safe to call with no active query.
func (b *Bridge) StopListener() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.region == nil {
		return nil
	}
	return b.releaseRegionLocked("stop")
}

// DetachListener detaches the listener of kind, leaving the region query and
// the other kind untouched. Safe to call when nothing is attached.
func (b *Bridge) DetachListener(kind Kind) error {
	if !kind.Valid() {
		return invalidArgument("unknown listener kind %d", kind)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.region == nil {
		return nil
	}
	return b.region.detach(kind, "detach")
}

func (b *Bridge) releaseRegionLocked(reason string) error {
	region := b.region
	b.region = nil
	err := region.release(reason)
	b.metrics.RegionQuery(regionRelease)
	b.logger.Debug("region released", "session_id", b.sessionID, "reason", reason)
	b.tracer.State(b.scopeLocked(), log.StateEntityRegion, "", "live", "released", reason)
	if err != nil {
		b.logger.Warn("region release reported errors", "session_id", b.sessionID, "error", err)
	}
	return err
}

// Listen binds consumer to the stream, replacing any prior consumer.
// A nil consumer, including a typed nil pointer, unbinds.
func (b *Bridge) Listen(consumer Consumer) {
	consumer = boundConsumer(consumer)

	b.mu.Lock()
	defer b.mu.Unlock()

	old := "unbound"
	if b.relay.Bound() {
		old = "bound"
	}
	b.relay.Bind(consumer)
	if consumer == nil {
		b.tracer.State(b.scopeLocked(), log.StateEntitySink, "", old, "unbound", "listen nil")
		return
	}
	b.logger.Debug("consumer bound", "session_id", b.sessionID)
	b.tracer.State(b.scopeLocked(), log.StateEntitySink, "", old, "bound", "")
}

// Cancel unbinds the consumer. Attached listeners detach themselves on their
// next callback.
func (b *Bridge) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.relay.Bound() {
		return
	}
	b.relay.Unbind()
	b.logger.Debug("consumer unbound", "session_id", b.sessionID)
	b.tracer.State(b.scopeLocked(), log.StateEntitySink, "", "bound", "unbound", "cancel")
}

// Attached reports whether a listener of kind is attached.
func (b *Bridge) Attached(kind Kind) bool {
	if !kind.Valid() {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.region != nil && b.region.attached(kind)
}

// Region returns the live region query's center and radius.
func (b *Bridge) Region() (envelope.Location, float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.region == nil {
		return envelope.Location{}, 0, false
	}
	return b.region.center, b.region.radius, true
}

// listenerChanged records an attachment transition of a.
func (b *Bridge) listenerChanged(a *adapter, prev attachState, reason string) {
	b.metrics.SetAttached(a.kind.String(), a.state == stateRegistered)
	b.logger.Debug("listener state changed",
		"session_id", b.sessionID,
		"kind", a.kind.String(),
		"listener_id", a.id,
		"old_state", prev.String(),
		"new_state", a.state.String(),
		"reason", reason)
	b.tracer.State(b.scopeLocked(), log.StateEntityListener, a.kind.String(), prev.String(), a.state.String(), reason)
}

func (b *Bridge) scopeLocked() log.Scope {
	return log.Scope{SessionID: b.sessionID, Path: b.path}
}
