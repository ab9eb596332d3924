// Package store provides the shell-wide observable key/value state shared
// between the window manager and shell widgets like the dock and topbar.
package store

import "sync"

// Listener receives every Set call. Listeners run synchronously on the
// goroutine that called Set, in subscription order.
type Listener func(key string, value any)

// Store is a mutex-guarded key/value map with change notification.
type Store struct {
	mu        sync.RWMutex
	values    map[string]any
	listeners []Listener
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string]any)}
}

// Set stores a value and notifies all listeners.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	s.values[key] = value
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	// Notify outside the lock so listeners can read the store.
	for _, fn := range listeners {
		fn(key, value)
	}
}

// Get returns the raw value for a key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetStrings returns the value for a key as a string slice, or nil if the
// key is absent or holds another type.
func (s *Store) GetStrings(key string) []string {
	v, ok := s.Get(key)
	if !ok {
		return nil
	}
	ss, _ := v.([]string)
	return ss
}

// GetBool returns the value for a key as a bool, false if absent or not a bool.
func (s *Store) GetBool(key string) bool {
	v, ok := s.Get(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Subscribe registers a listener for all future Set calls.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
