package envelope

import "sync"

// KeySet is an ordered set of keys kept in first-entry order.
// It is safe for concurrent use.
type KeySet struct {
	mu    sync.Mutex
	keys  []string
	index map[string]struct{}
}

// NewKeySet creates an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{index: make(map[string]struct{})}
}

// Add appends key if it is not already present.
// Returns false if the key was already in the set.
func (s *KeySet) Add(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[key]; exists {
		return false
	}
	s.index[key] = struct{}{}
	s.keys = append(s.keys, key)
	return true
}

// Remove deletes key from the set. Removing an absent key is a no-op
// and returns false.
func (s *KeySet) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[key]; !exists {
		return false
	}
	delete(s.index, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether key is in the set.
func (s *KeySet) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.index[key]
	return exists
}

// Len returns the number of keys.
func (s *KeySet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// Keys returns a copy of the keys in first-entry order.
func (s *KeySet) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}
