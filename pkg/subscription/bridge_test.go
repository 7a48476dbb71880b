package subscription_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/geobridge/geobridge-go/pkg/backend"
	"github.com/geobridge/geobridge-go/pkg/backend/mocks"
	"github.com/geobridge/geobridge-go/pkg/envelope"
	"github.com/geobridge/geobridge-go/pkg/subscription"
)

// harness drives a Bridge against mocked backend collaborators. Captured
// listeners are invoked synchronously from the test goroutine.
type harness struct {
	t      *testing.T
	opener *mocks.MockOpener
	store  *mocks.MockStore
	handle *mocks.MockRegionHandle
	bridge *subscription.Bridge

	mu            sync.Mutex
	keyListeners  []backend.KeyListener
	dataListeners []backend.DataListener
	events        []envelope.Envelope
	errs          []subscription.StreamError
}

func newHarness(t *testing.T, opts ...subscription.Option) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		opener: mocks.NewMockOpener(t),
		store:  mocks.NewMockStore(t),
		handle: mocks.NewMockRegionHandle(t),
	}
	h.bridge = subscription.NewBridge(h.opener, opts...)
	return h
}

func (h *harness) start() {
	h.t.Helper()
	h.opener.EXPECT().Open("paths").Return(h.store, nil).Once()
	require.NoError(h.t, h.bridge.Start("paths"))
}

func (h *harness) consumer() subscription.Consumer {
	return subscription.ConsumerFunc{
		Event: func(env envelope.Envelope) {
			h.mu.Lock()
			h.events = append(h.events, env)
			h.mu.Unlock()
		},
		Error: func(code, message string) {
			h.mu.Lock()
			h.errs = append(h.errs, subscription.StreamError{Code: code, Message: message})
			h.mu.Unlock()
		},
	}
}

func (h *harness) listen() {
	h.bridge.Listen(h.consumer())
}

func (h *harness) expectCreate(center envelope.Location, radius float64) {
	h.store.EXPECT().QueryAtLocation(center, radius).Return(h.handle, nil).Once()
}

func (h *harness) expectKeyAttach() {
	h.handle.EXPECT().AddKeyListener(mock.Anything).
		Run(func(l backend.KeyListener) {
			h.mu.Lock()
			h.keyListeners = append(h.keyListeners, l)
			h.mu.Unlock()
		}).
		Return(nil).Once()
}

func (h *harness) expectDataAttach() {
	h.handle.EXPECT().AddDataListener(mock.Anything).
		Run(func(l backend.DataListener) {
			h.mu.Lock()
			h.dataListeners = append(h.dataListeners, l)
			h.mu.Unlock()
		}).
		Return(nil).Once()
}

func (h *harness) keyListener(i int) backend.KeyListener {
	h.t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	require.Greater(h.t, len(h.keyListeners), i)
	return h.keyListeners[i]
}

func (h *harness) dataListener(i int) backend.DataListener {
	h.t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	require.Greater(h.t, len(h.dataListeners), i)
	return h.dataListeners[i]
}

func (h *harness) received() []envelope.Envelope {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]envelope.Envelope, len(h.events))
	copy(out, h.events)
	return out
}

func (h *harness) streamErrors() []subscription.StreamError {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]subscription.StreamError, len(h.errs))
	copy(out, h.errs)
	return out
}

var (
	origin    = envelope.Location{Latitude: 10, Longitude: 20}
	elsewhere = envelope.Location{Latitude: 11, Longitude: 21}
)

func TestEnteredScenario(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.store.EXPECT().SetLocation(mock.Anything, "a", origin, mock.Anything).
		Run(func(_ context.Context, _ string, _ backend.Location, done func(error)) {
			done(nil)
		}).Once()

	var setErr error
	called := 0
	require.NoError(t, h.bridge.SetLocation(context.Background(), "a", 10.0, 20.0, func(err error) {
		called++
		setErr = err
	}))
	assert.Equal(t, 1, called)
	assert.NoError(t, setErr)

	h.expectCreate(origin, 5.0)
	h.expectKeyAttach()
	h.listen()
	require.NoError(t, h.bridge.QueryRegion(10.0, 20.0, 5.0, subscription.KindKeyEvents))

	h.keyListener(0).OnKeyEntered("a", origin)

	events := h.received()
	require.Len(t, events, 1)
	rec, err := events[0].Record()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"callBack":  "onKeyEntered",
		"key":       "a",
		"latitude":  10.0,
		"longitude": 20.0,
	}, rec)
}

func TestRelocateKeepsOtherKind(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.listen()

	h.expectCreate(origin, 5)
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))

	// No RemoveListener expectation: detaching the key listener fails the test.
	h.handle.EXPECT().SetCenter(elsewhere, 8.0).Return(nil).Once()
	h.expectDataAttach()
	require.NoError(t, h.bridge.QueryRegion(elsewhere.Latitude, elsewhere.Longitude, 8, subscription.KindDataEvents))

	assert.True(t, h.bridge.Attached(subscription.KindKeyEvents))
	assert.True(t, h.bridge.Attached(subscription.KindDataEvents))

	center, radius, ok := h.bridge.Region()
	require.True(t, ok)
	assert.Equal(t, elsewhere, center)
	assert.Equal(t, 8.0, radius)

	// The key listener keeps delivering after a consumer re-binds.
	h.bridge.Cancel()
	h.listen()
	h.keyListener(0).OnKeyEntered("a", elsewhere)
	h.dataListener(0).OnDataEntered(backend.Snapshot{Key: "a", Value: map[string]any{"n": 1}}, elsewhere)

	events := h.received()
	require.Len(t, events, 2)
	assert.Equal(t, envelope.TypeEntered, events[0].Type())
	assert.Equal(t, envelope.TypeDataEntered, events[1].Type())
}

func TestRequeryReplacesSameKindOnly(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.listen()

	h.expectCreate(origin, 5)
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))

	first := h.keyListener(0)
	h.handle.EXPECT().RemoveListener(first).Return(nil).Once()
	h.handle.EXPECT().SetCenter(elsewhere, 5.0).Return(nil).Once()
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(elsewhere.Latitude, elsewhere.Longitude, 5, subscription.KindKeyEvents))

	// The replaced listener is silent, the new one delivers.
	first.OnKeyEntered("old", origin)
	h.keyListener(1).OnKeyEntered("new", elsewhere)

	events := h.received()
	require.Len(t, events, 1)
	assert.Equal(t, "new", events[0].Key())
}

func TestStopListenerSuppressesLateCallbacks(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.listen()

	h.expectCreate(origin, 5)
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))
	h.handle.EXPECT().SetCenter(origin, 5.0).Return(nil).Once()
	h.expectDataAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindDataEvents))

	h.handle.EXPECT().RemoveListener(mock.Anything).Return(nil).Twice()
	h.handle.EXPECT().RemoveAllListeners().Return().Once()
	require.NoError(t, h.bridge.StopListener())

	h.keyListener(0).OnKeyEntered("a", origin)
	h.keyListener(0).OnReady()
	h.dataListener(0).OnDataChanged(backend.Snapshot{Key: "a"}, origin)
	h.dataListener(0).OnError(errors.New("late"))

	assert.Empty(t, h.received())
	assert.Empty(t, h.streamErrors())
	assert.False(t, h.bridge.Attached(subscription.KindKeyEvents))
	assert.False(t, h.bridge.Attached(subscription.KindDataEvents))

	_, _, ok := h.bridge.Region()
	assert.False(t, ok)

	// Idempotent with no region.
	require.NoError(t, h.bridge.StopListener())
}

func TestDetachListenerIdempotent(t *testing.T) {
	h := newHarness(t)
	h.start()

	// Nothing attached yet.
	require.NoError(t, h.bridge.DetachListener(subscription.KindKeyEvents))

	h.expectCreate(origin, 5)
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))

	h.handle.EXPECT().RemoveListener(mock.Anything).Return(nil).Once()
	require.NoError(t, h.bridge.DetachListener(subscription.KindKeyEvents))
	require.NoError(t, h.bridge.DetachListener(subscription.KindKeyEvents))

	// The region survives a detach.
	_, _, ok := h.bridge.Region()
	assert.True(t, ok)
}

func TestDetachListenerSwallowsNotRegistered(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.expectCreate(origin, 5)
	h.expectDataAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindDataEvents))

	h.handle.EXPECT().RemoveListener(mock.Anything).Return(backend.ErrListenerNotRegistered).Once()
	assert.NoError(t, h.bridge.DetachListener(subscription.KindDataEvents))
	assert.False(t, h.bridge.Attached(subscription.KindDataEvents))
}

func TestDetachListenerBackendFailure(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.expectCreate(origin, 5)
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))

	h.handle.EXPECT().RemoveListener(mock.Anything).Return(errors.New("socket closed")).Once()
	err := h.bridge.DetachListener(subscription.KindKeyEvents)
	require.ErrorIs(t, err, subscription.ErrBackend)
	assert.Equal(t, "socket closed", err.Error())

	// The listener is detached regardless; a retry does not reach the backend.
	assert.False(t, h.bridge.Attached(subscription.KindKeyEvents))
	assert.NoError(t, h.bridge.DetachListener(subscription.KindKeyEvents))
}

func TestReadyReportsKeySet(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.listen()

	h.expectCreate(origin, 5)
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))

	l := h.keyListener(0)
	l.OnKeyEntered("c", origin)
	l.OnKeyEntered("a", origin)
	l.OnKeyEntered("b", origin)
	l.OnKeyExited("a")
	l.OnKeyExited("zzz")
	l.OnKeyEntered("c", origin)
	l.OnKeyMoved("b", elsewhere)
	l.OnReady()

	events := h.received()
	require.Len(t, events, 8)
	ready := events[len(events)-1]
	require.Equal(t, envelope.TypeReady, ready.Type())
	assert.Equal(t, []string{"c", "b"}, ready.Keys())
}

func TestDataReadyReportsKeySet(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.listen()

	h.expectCreate(origin, 5)
	h.expectDataAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindDataEvents))

	l := h.dataListener(0)
	l.OnDataEntered(backend.Snapshot{Key: "x"}, origin)
	l.OnDataEntered(backend.Snapshot{Key: "y"}, origin)
	l.OnDataExited(backend.Snapshot{Key: "x"})
	l.OnReady()

	events := h.received()
	require.Len(t, events, 4)
	assert.Equal(t, []string{"y"}, events[3].Keys())
}

func TestCancelSelfDetach(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.listen()

	h.expectCreate(origin, 5)
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))
	h.keyListener(0).OnKeyEntered("a", origin)
	require.Len(t, h.received(), 1)

	h.bridge.Cancel()

	// Cancel alone leaves the listener attached.
	assert.True(t, h.bridge.Attached(subscription.KindKeyEvents))

	first := h.keyListener(0)
	h.handle.EXPECT().RemoveListener(first).Return(nil).Once()
	first.OnKeyExited("a")

	assert.Len(t, h.received(), 1)
	assert.False(t, h.bridge.Attached(subscription.KindKeyEvents))

	// Further callbacks on the detached listener do not reach the backend.
	first.OnKeyEntered("b", origin)

	h.listen()
	h.handle.EXPECT().SetCenter(origin, 5.0).Return(nil).Once()
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))
	h.keyListener(1).OnReady()

	events := h.received()
	require.Len(t, events, 2)
	assert.Equal(t, envelope.TypeReady, events[1].Type())
	assert.Empty(t, events[1].Keys())
}

func TestQueryErrorDetachesListener(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.listen()

	h.expectCreate(origin, 5)
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))

	h.handle.EXPECT().RemoveListener(mock.Anything).Return(nil).Once()
	l := h.keyListener(0)
	l.OnError(errors.New("permission denied"))
	l.OnKeyEntered("a", origin)

	assert.Empty(t, h.received())
	assert.Equal(t, []subscription.StreamError{{
		Code:    "Error",
		Message: "GeoQueryError: permission denied",
	}}, h.streamErrors())
	assert.False(t, h.bridge.Attached(subscription.KindKeyEvents))
}

func TestDataPayloadNormalization(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.listen()

	h.expectCreate(origin, 5)
	h.expectDataAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindDataEvents))

	payload := map[string]any{"line": "M10"}
	l := h.dataListener(0)
	l.OnDataEntered(backend.Snapshot{Key: "a", Value: payload}, origin)
	l.OnDataMoved(backend.Snapshot{Key: "a", Value: 42}, elsewhere)
	l.OnDataChanged(backend.Snapshot{Key: "a", Value: nil}, elsewhere)
	l.OnDataExited(backend.Snapshot{Key: "a", Value: "gone"})

	events := h.received()
	require.Len(t, events, 4)
	assert.Equal(t, map[string]any{"line": "M10"}, events[0].Data())
	assert.Equal(t, map[string]any{"value": 42}, events[1].Data())
	assert.Equal(t, elsewhere, events[1].Location())
	assert.Equal(t, map[string]any{}, events[2].Data())
	assert.Equal(t, envelope.TypeDataChanged, events[2].Type())
	assert.Equal(t, map[string]any{"value": "gone"}, events[3].Data())

	// The envelope does not alias the backend payload.
	payload["line"] = "M5"
	assert.Equal(t, "M10", events[0].Data()["line"])
}

func TestGetLocation(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.store.EXPECT().GetLocation(mock.Anything, "missing-id", mock.Anything).
		Run(func(_ context.Context, _ string, done func(backend.Location, bool, error)) {
			done(backend.Location{}, false, nil)
		}).Once()
	h.store.EXPECT().GetLocation(mock.Anything, "flaky", mock.Anything).
		Run(func(_ context.Context, _ string, done func(backend.Location, bool, error)) {
			done(backend.Location{}, false, errors.New("timeout"))
		}).Once()
	h.store.EXPECT().GetLocation(mock.Anything, "a", mock.Anything).
		Run(func(_ context.Context, _ string, done func(backend.Location, bool, error)) {
			done(origin, true, nil)
		}).Once()

	results := map[string]map[string]any{}
	var errs []error
	for _, id := range []string{"missing-id", "flaky", "a"} {
		id := id
		require.NoError(t, h.bridge.GetLocation(context.Background(), id, func(loc envelope.Location, err error) {
			results[id] = subscription.LocationResult(loc, err)
			errs = append(errs, err)
		}))
	}

	assert.Equal(t, map[string]any{"error": "There is no location for key missing-id in GeoFire"}, results["missing-id"])
	assert.Equal(t, map[string]any{"error": "There was an error getting the GeoFire location: timeout"}, results["flaky"])
	assert.Equal(t, map[string]any{"lat": 10.0, "lng": 20.0}, results["a"])

	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], subscription.ErrNotFound)
	var nf *subscription.NotFoundError
	require.ErrorAs(t, errs[0], &nf)
	assert.Equal(t, "missing-id", nf.Key)
	assert.ErrorIs(t, errs[1], subscription.ErrBackend)
	assert.NoError(t, errs[2])
}

func TestPointCompletionFiresOnce(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.store.EXPECT().RemoveLocation(mock.Anything, "a", mock.Anything).
		Run(func(_ context.Context, _ string, done func(error)) {
			done(errors.New("first"))
			done(nil)
		}).Once()

	var got []error
	require.NoError(t, h.bridge.RemoveLocation(context.Background(), "a", func(err error) {
		got = append(got, err)
	}))

	require.Len(t, got, 1)
	var be *subscription.BackendError
	require.ErrorAs(t, got[0], &be)
	assert.Equal(t, subscription.OpRemoveLocation, be.Op)
	assert.Equal(t, "first", be.Error())
}

func TestNotInitialized(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assert.ErrorIs(t, h.bridge.SetLocation(ctx, "a", 1, 2, nil), subscription.ErrNotInitialized)
	assert.ErrorIs(t, h.bridge.RemoveLocation(ctx, "a", nil), subscription.ErrNotInitialized)
	assert.ErrorIs(t, h.bridge.GetLocation(ctx, "a", nil), subscription.ErrNotInitialized)
	assert.ErrorIs(t, h.bridge.QueryRegion(1, 2, 3, subscription.KindKeyEvents), subscription.ErrNotInitialized)
	assert.NoError(t, h.bridge.StopListener())
	assert.NoError(t, h.bridge.DetachListener(subscription.KindDataEvents))
	assert.Empty(t, h.bridge.SessionID())
}

func TestInvalidArguments(t *testing.T) {
	h := newHarness(t, subscription.WithConfig(subscription.Config{MaxRadius: 100}))
	h.start()
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
	}{
		{"empty id", h.bridge.SetLocation(ctx, "", 1, 2, nil)},
		{"latitude out of range", h.bridge.SetLocation(ctx, "a", 91, 2, nil)},
		{"longitude out of range", h.bridge.SetLocation(ctx, "a", 1, 181, nil)},
		{"empty remove id", h.bridge.RemoveLocation(ctx, "", nil)},
		{"empty get id", h.bridge.GetLocation(ctx, "", nil)},
		{"negative radius", h.bridge.QueryRegion(1, 2, -1, subscription.KindKeyEvents)},
		{"nan radius", h.bridge.QueryRegion(1, 2, math.NaN(), subscription.KindKeyEvents)},
		{"radius above max", h.bridge.QueryRegion(1, 2, 101, subscription.KindKeyEvents)},
		{"bad center", h.bridge.QueryRegion(-91, 2, 1, subscription.KindKeyEvents)},
		{"unknown kind", h.bridge.QueryRegion(1, 2, 1, subscription.Kind(7))},
		{"detach unknown kind", h.bridge.DetachListener(subscription.Kind(7))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, subscription.ErrInvalidArgument)
		})
	}
}

func TestStart(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		h := newHarness(t)
		assert.ErrorIs(t, h.bridge.Start(""), subscription.ErrInvalidArgument)
	})

	t.Run("default path", func(t *testing.T) {
		h := newHarness(t, subscription.WithConfig(subscription.Config{DefaultPath: "paths"}))
		h.opener.EXPECT().Open("paths").Return(h.store, nil).Once()
		require.NoError(t, h.bridge.Start(""))
		assert.Equal(t, "paths", h.bridge.Path())
	})

	t.Run("failure keeps prior session", func(t *testing.T) {
		h := newHarness(t)
		h.start()
		h.expectCreate(origin, 5)
		h.expectKeyAttach()
		require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))
		session := h.bridge.SessionID()

		h.opener.EXPECT().Open("other").Return(nil, errors.New("unreachable")).Once()
		err := h.bridge.Start("other")
		require.ErrorIs(t, err, subscription.ErrBackend)

		assert.Equal(t, session, h.bridge.SessionID())
		assert.Equal(t, "paths", h.bridge.Path())
		assert.True(t, h.bridge.Attached(subscription.KindKeyEvents))
	})

	t.Run("restart discards region", func(t *testing.T) {
		h := newHarness(t)
		h.start()
		h.listen()
		h.expectCreate(origin, 5)
		h.expectKeyAttach()
		require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))
		session := h.bridge.SessionID()

		h.handle.EXPECT().RemoveListener(mock.Anything).Return(nil).Once()
		h.handle.EXPECT().RemoveAllListeners().Return().Once()
		h.start()

		assert.NotEqual(t, session, h.bridge.SessionID())
		assert.False(t, h.bridge.Attached(subscription.KindKeyEvents))
		_, _, ok := h.bridge.Region()
		assert.False(t, ok)

		h.keyListener(0).OnKeyEntered("a", origin)
		assert.Empty(t, h.received())
	})
}

func TestQueryRegionBackendFailure(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.store.EXPECT().QueryAtLocation(origin, 5.0).Return(nil, errors.New("quota exceeded")).Once()
	err := h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents)
	require.ErrorIs(t, err, subscription.ErrBackend)
	assert.Contains(t, err.Error(), "quota exceeded")

	_, _, ok := h.bridge.Region()
	assert.False(t, ok)
}

func TestAttachFailureLeavesSlotEmpty(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.expectCreate(origin, 5)
	h.handle.EXPECT().AddKeyListener(mock.Anything).Return(backend.ErrClosed).Once()
	err := h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents)
	require.ErrorIs(t, err, backend.ErrClosed)
	assert.False(t, h.bridge.Attached(subscription.KindKeyEvents))

	// Stopping never removes a listener that was never registered.
	h.handle.EXPECT().RemoveAllListeners().Return().Once()
	require.NoError(t, h.bridge.StopListener())
}

func TestClose(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.listen()
	h.expectCreate(origin, 5)
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))

	h.handle.EXPECT().RemoveListener(mock.Anything).Return(nil).Once()
	h.handle.EXPECT().RemoveAllListeners().Return().Once()
	require.NotEmpty(t, h.bridge.SessionID())
	require.NoError(t, h.bridge.Close())
	require.NoError(t, h.bridge.Close())

	assert.Empty(t, h.bridge.SessionID())
	assert.Empty(t, h.bridge.Path())
	assert.ErrorIs(t, h.bridge.SetLocation(context.Background(), "a", 1, 2, nil), subscription.ErrNotInitialized)
	assert.ErrorIs(t, h.bridge.QueryRegion(1, 2, 3, subscription.KindKeyEvents), subscription.ErrNotInitialized)

	h.keyListener(0).OnKeyEntered("a", origin)
	assert.Empty(t, h.received())
}

func TestListenReplacesConsumer(t *testing.T) {
	h := newHarness(t)
	h.start()

	var firstGot []envelope.Envelope
	h.bridge.Listen(subscription.ConsumerFunc{Event: func(env envelope.Envelope) {
		firstGot = append(firstGot, env)
	}})
	h.listen()

	h.expectCreate(origin, 5)
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))
	h.keyListener(0).OnKeyEntered("a", origin)

	assert.Empty(t, firstGot)
	assert.Len(t, h.received(), 1)
}

func TestListenTypedNilConsumer(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.listen()

	var c *subscription.ChannelConsumer
	h.bridge.Listen(c)

	h.expectCreate(origin, 5)
	h.expectKeyAttach()
	require.NoError(t, h.bridge.QueryRegion(origin.Latitude, origin.Longitude, 5, subscription.KindKeyEvents))

	// No consumer is bound, so the first callback detaches the listener.
	h.handle.EXPECT().RemoveListener(mock.Anything).Return(nil).Once()
	assert.NotPanics(t, func() { h.keyListener(0).OnKeyEntered("a", origin) })
	assert.False(t, h.bridge.Attached(subscription.KindKeyEvents))
	assert.Empty(t, h.received())
}
