package memory

import (
	"log/slog"
	"sync"

	"github.com/geobridge/geobridge-go/pkg/backend"
)

// Opener hands out one Store per path. It is safe for concurrent use.
type Opener struct {
	mu     sync.Mutex
	stores map[string]*Store
	opts   []Option
}

// NewOpener creates an Opener. opts apply to every store it creates.
func NewOpener(opts ...Option) *Opener {
	return &Opener{
		stores: make(map[string]*Store),
		opts:   opts,
	}
}

// Open returns the store for path, creating it on first use.
func (o *Opener) Open(path string) (backend.Store, error) {
	return o.Store(path), nil
}

// Store returns the concrete store for path, creating it on first use.
func (o *Opener) Store(path string) *Store {
	o.mu.Lock()
	defer o.mu.Unlock()

	s, ok := o.stores[path]
	if !ok {
		s = NewStore(path, o.opts...)
		o.stores[path] = s
		slog.Debug("memory store opened", "path", path)
	}
	return s
}

// Close closes every store handed out so far.
func (o *Opener) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, s := range o.stores {
		s.Close()
	}
	o.stores = make(map[string]*Store)
}

// Compile-time interface satisfaction check.
var _ backend.Opener = (*Opener)(nil)
