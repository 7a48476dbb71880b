package memory

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/geobridge/geobridge-go/pkg/backend"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is an in-memory backend.Store. It is safe for concurrent use.
type Store struct {
	mu sync.Mutex

	path    string
	points  map[string]backend.Location
	data    map[string]any
	queries map[*Query]struct{}
	closed  bool

	logger *slog.Logger
}

// NewStore creates an empty store for path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:    path,
		points:  make(map[string]backend.Location),
		data:    make(map[string]any),
		queries: make(map[*Query]struct{}),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the path scope of the store.
func (s *Store) Path() string {
	return s.path
}

// SetLocation writes a point and notifies affected queries.
func (s *Store) SetLocation(ctx context.Context, key string, loc backend.Location, done func(error)) {
	if err := ctx.Err(); err != nil {
		complete(done, err)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		complete(done, backend.ErrClosed)
		return
	}
	prev, had := s.points[key]
	s.points[key] = loc
	for q := range s.queries {
		q.pointWritten(key, prev, had, loc)
	}
	s.mu.Unlock()

	s.logger.Debug("point written", "path", s.path, "key", key, "latitude", loc.Latitude, "longitude", loc.Longitude)
	complete(done, nil)
}

// RemoveLocation deletes a point and its payload.
func (s *Store) RemoveLocation(ctx context.Context, key string, done func(error)) {
	if err := ctx.Err(); err != nil {
		complete(done, err)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		complete(done, backend.ErrClosed)
		return
	}
	value := s.data[key]
	if _, had := s.points[key]; had {
		delete(s.points, key)
		for q := range s.queries {
			q.pointRemoved(key, value)
		}
	}
	delete(s.data, key)
	s.mu.Unlock()

	s.logger.Debug("point removed", "path", s.path, "key", key)
	complete(done, nil)
}

// GetLocation reads a point.
func (s *Store) GetLocation(ctx context.Context, key string, done func(backend.Location, bool, error)) {
	if err := ctx.Err(); err != nil {
		go done(backend.Location{}, false, err)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		go done(backend.Location{}, false, backend.ErrClosed)
		return
	}
	loc, found := s.points[key]
	s.mu.Unlock()

	go done(loc, found, nil)
}

// SetData stores the payload for key. Data listeners of queries that
// contain the point receive a changed callback.
func (s *Store) SetData(ctx context.Context, key string, value any, done func(error)) {
	if err := ctx.Err(); err != nil {
		complete(done, err)
		return
	}

	value = cloneValue(value)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		complete(done, backend.ErrClosed)
		return
	}
	s.data[key] = value
	if loc, has := s.points[key]; has {
		for q := range s.queries {
			q.dataChanged(key, loc, value)
		}
	}
	s.mu.Unlock()

	complete(done, nil)
}

// QueryAtLocation creates a live region query.
func (s *Store) QueryAtLocation(center backend.Location, radius float64) (backend.RegionHandle, error) {
	if err := validateRegion(center, radius); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, backend.ErrClosed
	}

	q := &Query{
		store:  s,
		center: center,
		radius: radius,
		inside: make(map[string]struct{}),
	}
	for key, loc := range s.points {
		if withinRadius(center, radius, loc) {
			q.inside[key] = struct{}{}
		}
	}
	s.queries[q] = struct{}{}

	s.logger.Debug("region query created", "path", s.path, "center", center.String(), "radius", radius)
	return q, nil
}

// Len returns the number of stored points.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

// Close stops all queries. Later operations fail with backend.ErrClosed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for q := range s.queries {
		q.releaseLocked()
	}
	s.queries = make(map[*Query]struct{})
}

// sortedKeys returns the members of set in key order.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func validateRegion(center backend.Location, radius float64) error {
	if !center.Valid() {
		return fmt.Errorf("invalid center %s", center)
	}
	if math.IsNaN(radius) || radius < 0 {
		return fmt.Errorf("invalid radius %g", radius)
	}
	return nil
}

// complete runs done on its own goroutine.
func complete(done func(error), err error) {
	if done == nil {
		return
	}
	go done(err)
}

// cloneValue shallow-copies map payloads so later caller mutations are not
// observed by queued callbacks.
func cloneValue(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for k, val := range m {
		out[k] = val
	}
	return out
}

// Compile-time interface satisfaction check.
var _ backend.Store = (*Store)(nil)
