package memory

import (
	"github.com/geobridge/geobridge-go/pkg/backend"
)

// Query is a live region query on a Store. All fields are guarded by the
// owning store's mutex.
type Query struct {
	store *Store

	center backend.Location
	radius float64

	// inside holds the keys currently in the region.
	inside map[string]struct{}

	subscribers []*subscriber
	released    bool
}

// subscriber is one attached listener and its delivery queue.
// Exactly one of keys and data is set.
type subscriber struct {
	listener backend.Listener
	keys     backend.KeyListener
	data     backend.DataListener
	queue    *queue
}

// Center returns the current center.
func (q *Query) Center() backend.Location {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	return q.center
}

// Radius returns the current radius in kilometers.
func (q *Query) Radius() float64 {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	return q.radius
}

// AddKeyListener attaches a key-only listener.
func (q *Query) AddKeyListener(l backend.KeyListener) error {
	return q.add(&subscriber{listener: l, keys: l})
}

// AddDataListener attaches a data-enriched listener.
func (q *Query) AddDataListener(l backend.DataListener) error {
	return q.add(&subscriber{listener: l, data: l})
}

func (q *Query) add(sub *subscriber) error {
	s := q.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.released || s.closed {
		return backend.ErrClosed
	}
	if q.find(sub.listener) >= 0 {
		return backend.ErrListenerExists
	}

	sub.queue = newQueue()
	q.subscribers = append(q.subscribers, sub)

	for _, key := range sortedKeys(q.inside) {
		q.emitEntered(sub, key, s.points[key])
	}
	sub.queue.push(sub.listener.OnReady)
	return nil
}

// RemoveListener detaches l and discards its pending callbacks.
func (q *Query) RemoveListener(l backend.Listener) error {
	s := q.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := q.find(l)
	if i < 0 {
		return backend.ErrListenerNotRegistered
	}
	q.subscribers[i].queue.stop()
	q.subscribers = append(q.subscribers[:i], q.subscribers[i+1:]...)
	return nil
}

// RemoveAllListeners detaches every listener and releases the query.
func (q *Query) RemoveAllListeners() {
	s := q.store
	s.mu.Lock()
	defer s.mu.Unlock()

	q.releaseLocked()
	delete(s.queries, q)
}

// SetCenter moves the region. Keys leaving the region produce exited
// callbacks, keys joining produce entered, then every listener gets OnReady.
func (q *Query) SetCenter(center backend.Location, radius float64) error {
	if err := validateRegion(center, radius); err != nil {
		return err
	}

	s := q.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.released || s.closed {
		return backend.ErrClosed
	}

	q.center = center
	q.radius = radius

	for _, key := range sortedKeys(q.inside) {
		if !withinRadius(center, radius, s.points[key]) {
			delete(q.inside, key)
			q.broadcastExited(key, s.data[key])
		}
	}

	entering := make(map[string]struct{})
	for key, loc := range s.points {
		if _, in := q.inside[key]; !in && withinRadius(center, radius, loc) {
			entering[key] = struct{}{}
		}
	}
	for _, key := range sortedKeys(entering) {
		q.inside[key] = struct{}{}
		for _, sub := range q.subscribers {
			q.emitEntered(sub, key, s.points[key])
		}
	}

	for _, sub := range q.subscribers {
		sub.queue.push(sub.listener.OnReady)
	}

	s.logger.Debug("region query moved", "path", s.path, "center", center.String(), "radius", radius)
	return nil
}

// Fail delivers err to every attached listener's OnError.
func (q *Query) Fail(err error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()

	for _, sub := range q.subscribers {
		l := sub.listener
		sub.queue.push(func() { l.OnError(err) })
	}
}

// pointWritten updates membership after a write. Called with the store lock held.
func (q *Query) pointWritten(key string, prev backend.Location, had bool, loc backend.Location) {
	_, was := q.inside[key]
	now := withinRadius(q.center, q.radius, loc)

	switch {
	case !was && now:
		q.inside[key] = struct{}{}
		for _, sub := range q.subscribers {
			q.emitEntered(sub, key, loc)
		}
	case was && !now:
		delete(q.inside, key)
		q.broadcastExited(key, q.store.data[key])
	case was && now && (!had || prev != loc):
		value := q.store.data[key]
		for _, sub := range q.subscribers {
			if sub.keys != nil {
				l := sub.keys
				sub.queue.push(func() { l.OnKeyMoved(key, loc) })
			} else {
				l := sub.data
				snap := backend.Snapshot{Key: key, Value: value}
				sub.queue.push(func() { l.OnDataMoved(snap, loc) })
			}
		}
	}
}

// pointRemoved emits exited if the point was inside. Called with the store lock held.
func (q *Query) pointRemoved(key string, value any) {
	if _, was := q.inside[key]; !was {
		return
	}
	delete(q.inside, key)
	q.broadcastExited(key, value)
}

// dataChanged notifies data listeners of a payload update. Called with the store lock held.
func (q *Query) dataChanged(key string, loc backend.Location, value any) {
	if _, in := q.inside[key]; !in {
		return
	}
	snap := backend.Snapshot{Key: key, Value: value}
	for _, sub := range q.subscribers {
		if sub.data == nil {
			continue
		}
		l := sub.data
		sub.queue.push(func() { l.OnDataChanged(snap, loc) })
	}
}

func (q *Query) emitEntered(sub *subscriber, key string, loc backend.Location) {
	if sub.keys != nil {
		l := sub.keys
		sub.queue.push(func() { l.OnKeyEntered(key, loc) })
		return
	}
	l := sub.data
	snap := backend.Snapshot{Key: key, Value: q.store.data[key]}
	sub.queue.push(func() { l.OnDataEntered(snap, loc) })
}

func (q *Query) broadcastExited(key string, value any) {
	for _, sub := range q.subscribers {
		if sub.keys != nil {
			l := sub.keys
			sub.queue.push(func() { l.OnKeyExited(key) })
			continue
		}
		l := sub.data
		snap := backend.Snapshot{Key: key, Value: value}
		sub.queue.push(func() { l.OnDataExited(snap) })
	}
}

func (q *Query) find(l backend.Listener) int {
	for i, sub := range q.subscribers {
		if sub.listener == l {
			return i
		}
	}
	return -1
}

// releaseLocked stops all delivery. Called with the store lock held.
func (q *Query) releaseLocked() {
	for _, sub := range q.subscribers {
		sub.queue.stop()
	}
	q.subscribers = nil
	q.released = true
}

// Compile-time interface satisfaction check.
var _ backend.RegionHandle = (*Query)(nil)
