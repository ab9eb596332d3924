// Package pages holds the route registry and the built-in page components
// that open as windows. Pages are singleton-per-route: the route path
// doubles as the window id, so navigating to an open page focuses its
// window instead of spawning a duplicate.
package pages

import (
	"sync"

	"github.com/webdesk/webdesk/internal/wm"
)

// Page describes one routable page.
type Page struct {
	Route string
	Title string

	// Width/Height are placement hints in logical px; zero uses the
	// default placement policy.
	Width  int
	Height int

	New wm.Factory
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Page)
	routes   []string
)

// Register adds a page. Later registrations for the same route win.
func Register(p Page) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[p.Route]; !exists {
		routes = append(routes, p.Route)
	}
	registry[p.Route] = p
}

// Lookup returns the page registered for a route.
func Lookup(route string) (Page, bool) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := registry[route]
	return p, ok
}

// Routes returns all registered routes in registration order.
func Routes() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(routes))
	copy(out, routes)
	return out
}
