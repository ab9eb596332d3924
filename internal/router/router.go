// Package router provides the in-process route history the shell and
// window manager synchronize against. A route is a path string, optionally
// with a query ("/blog/edit?id=3"). The router only tracks history; it
// never interprets routes beyond passing them to change listeners.
package router

import "sync"

// Listener is notified after the current route changes. Listeners run
// synchronously on the navigating goroutine, in registration order.
type Listener func(route string)

// Router is a minimal history stack with change notification.
type Router struct {
	mu        sync.Mutex
	history   []string
	listeners []Listener
}

// New returns a router positioned at the initial route.
func New(initial string) *Router {
	return &Router{history: []string{initial}}
}

// Current returns the current route.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[len(r.history)-1]
}

// Replace swaps the current history entry for route without growing the
// stack. Listeners are notified only when the route actually changes.
func (r *Router) Replace(route string) {
	r.mu.Lock()
	changed := r.history[len(r.history)-1] != route
	r.history[len(r.history)-1] = route
	listeners := r.snapshotListeners()
	r.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(route)
		}
	}
}

// Push appends route to the history and notifies listeners.
func (r *Router) Push(route string) {
	r.mu.Lock()
	changed := r.history[len(r.history)-1] != route
	r.history = append(r.history, route)
	listeners := r.snapshotListeners()
	r.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(route)
		}
	}
}

// Back pops the current entry and returns the new current route. The
// initial entry is never popped.
func (r *Router) Back() string {
	r.mu.Lock()
	if len(r.history) > 1 {
		r.history = r.history[:len(r.history)-1]
	}
	route := r.history[len(r.history)-1]
	listeners := r.snapshotListeners()
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(route)
	}
	return route
}

// OnChange registers a listener for future navigations.
func (r *Router) OnChange(fn Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

func (r *Router) snapshotListeners() []Listener {
	listeners := make([]Listener, len(r.listeners))
	copy(listeners, r.listeners)
	return listeners
}
