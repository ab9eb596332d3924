// Package wm implements the window manager at the heart of webdesk:
// window lifecycle, z-order stacking, drag/resize geometry,
// minimize/maximize/restore state, and synchronization with the router
// and the shell store. Geometry is in logical px; the render layer
// projects frames onto terminal cells.
package wm

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/webdesk/webdesk/internal/config"
)

// Store keys the manager publishes on every lifecycle change.
const (
	// StoreKeyOpenWindows holds the []string of open window ids in
	// insertion order, minimized windows included.
	StoreKeyOpenWindows = "wm.openWindows"

	// StoreKeyHasVisibleWindow holds a bool: whether any non-minimized
	// window exists. Consumed by the topbar clock and desktop widgets.
	StoreKeyHasVisibleWindow = "wm.hasVisibleWindow"
)

// Router is the slice of the application router the manager consumes. The
// manager calls Replace only when a focused window's url actually differs
// from the current route; it never invents urls of its own.
type Router interface {
	Current() string
	Replace(url string)
}

// Store is the slice of the shell store the manager publishes into.
type Store interface {
	Set(key string, value any)
}

// Window is the manager's bookkeeping record for one open window.
type Window struct {
	ID        string
	Frame     *Frame
	Component Component

	// URL is the route associated with this window, kept in sync with
	// the router on focus. Empty for windows with no route.
	URL string
}

// OpenOptions tune a single Open call. A zero value is valid: the id is
// generated, the title defaults to the id, and geometry follows the
// placement policy.
type OpenOptions struct {
	// ID names the window. Passing a route path here is how callers get
	// singleton-per-route behavior: reopening the same id focuses the
	// existing window instead of creating a duplicate.
	ID     string
	Title  string
	URL    string
	Width  int
	Height int
}

// Options configure a Manager.
type Options struct {
	Router Router
	Store  Store

	// CloseTimeout bounds how long a closing frame may stay attached
	// waiting for its exit animation; zero detaches immediately.
	CloseTimeout time.Duration
}

// Manager owns all window state. Every mutation funnels through its
// methods; the windows map is never exposed for direct mutation.
type Manager struct {
	mu        sync.Mutex
	container *Container
	viewport  Size

	windows map[string]*Window
	order   []string
	active  string

	// zCounter only increases; each focus hands out a fresh value, so
	// the highest Z is always the most recently focused window.
	zCounter int

	router Router
	store  Store

	closeTimeout time.Duration
	closing      map[string]*closingFrame

	gesture gesture

	// Side effects collected while mu is held, drained by unlockAndEmit.
	pending sideEffects
}

// sideEffects are the router and store notifications a mutation produced.
// Their listeners run synchronously and may call back into the manager
// (the shell's route listener opens pages through Open), so they must
// never fire while mu is held.
type sideEffects struct {
	publish bool
	ids     []string
	visible bool

	replace    bool
	replaceURL string
}

type closingFrame struct {
	frame *Frame
	timer *time.Timer
}

// New returns a manager with no attached container. Init must be called
// before the first Open.
func New(opts Options) *Manager {
	return &Manager{
		windows:      make(map[string]*Window),
		closing:      make(map[string]*closingFrame),
		zCounter:     config.ZIndexBase,
		router:       opts.Router,
		store:        opts.Store,
		closeTimeout: opts.CloseTimeout,
	}
}

// Init attaches the desktop container and records the viewport size.
func (m *Manager) Init(container *Container, viewport Size) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.container = container
	m.viewport = viewport
}

// Resize updates the viewport. Fullscreen frames track the new size;
// floating frames keep their geometry.
func (m *Manager) Resize(viewport Size) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewport = viewport
	for _, w := range m.windows {
		if w.Frame.Fullscreen {
			w.Frame.Body.resize(viewport.Width, viewport.Height)
		}
	}
}

// Viewport returns the current viewport size in logical px.
func (m *Manager) Viewport() Size {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewport
}

func generateID() string {
	return fmt.Sprintf("win_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Open creates a window hosting the component the factory builds, or
// focuses the existing window when the id is already taken (updating its
// stored url). This id check is the sole de-duplication path. Returns the
// resolved id. A factory error aborts the open and propagates to the
// caller; the manager neither logs nor wraps it.
//
// Mount is issued after the frame is attached but Open does not wait for
// any asynchronous loading the component starts; callers must not assume
// the content is populated on return.
func (m *Manager) Open(factory Factory, args []any, opts OpenOptions) (string, error) {
	m.mu.Lock()
	defer m.unlockAndEmit()

	if m.container == nil {
		return "", errors.New("wm: Open before Init")
	}

	id := opts.ID
	if id == "" {
		id = generateID()
	}

	if w, ok := m.windows[id]; ok {
		if opts.URL != "" {
			w.URL = opts.URL
		}
		m.focusLocked(w)
		m.publishLocked()
		return id, nil
	}

	windowURL := opts.URL
	if windowURL == "" && strings.HasPrefix(id, "/") {
		windowURL = id
	}

	title := opts.Title
	if title == "" {
		title = id
	}

	f := &Frame{ID: id, Title: title, Body: NewSurface()}
	if rect, ok := initialPlacement(m.viewport, opts.Width, opts.Height); ok {
		f.setGeometry(rect)
	} else {
		f.Fullscreen = true
		f.Body.resize(m.viewport.Width, m.viewport.Height)
	}
	m.container.attach(f)

	comp, err := factory(f.Body, args...)
	if err != nil {
		m.container.detach(f)
		return "", err
	}

	w := &Window{ID: id, Frame: f, Component: comp, URL: windowURL}
	m.windows[id] = w
	m.order = append(m.order, id)

	comp.Mount()
	m.focusLocked(w)
	m.publishLocked()
	return id, nil
}

// Close destroys the window's component, removes the record immediately,
// and leaves the frame attached in Closing state for the exit animation.
// FinishClose (or the fallback timer) detaches it; with a zero timeout it
// detaches right away. Returns the closing frame, or nil for unknown ids.
func (m *Manager) Close(id string) *Frame {
	m.mu.Lock()
	defer m.unlockAndEmit()

	w, ok := m.windows[id]
	if !ok {
		return nil
	}

	// A window closed mid-gesture force-releases the gesture.
	if m.gesture.id == id {
		m.gesture = gesture{}
	}

	w.Component.Destroy()

	f := w.Frame
	f.Closing = true
	f.Active = false

	delete(m.windows, id)
	for i, other := range m.order {
		if other == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	if m.closeTimeout > 0 {
		timer := time.AfterFunc(m.closeTimeout, func() { m.FinishClose(id) })
		m.closing[id] = &closingFrame{frame: f, timer: timer}
	} else {
		m.container.detach(f)
	}

	if m.active == id {
		m.active = ""
		m.focusNextLocked()
	}

	m.publishLocked()
	return f
}

// FinishClose detaches a closing window's frame. Called by the shell when
// the exit animation completes; the fallback timer calls it too, and
// whichever fires first wins. Safe to call for unknown ids.
func (m *Manager) FinishClose(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cf, ok := m.closing[id]
	if !ok {
		return
	}
	cf.timer.Stop()
	delete(m.closing, id)
	m.container.detach(cf.frame)
}

// CloseAll closes every managed window.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	m.mu.Unlock()

	for _, id := range ids {
		m.Close(id)
	}
}

// Focus brings a window to the top of the stack, marks it active, restores
// it if minimized, and aligns the router with its url. No-op for unknown ids.
func (m *Manager) Focus(id string) {
	m.mu.Lock()
	defer m.unlockAndEmit()

	w, ok := m.windows[id]
	if !ok {
		return
	}
	m.focusLocked(w)
	m.publishLocked()
}

func (m *Manager) focusLocked(w *Window) {
	m.zCounter++
	w.Frame.Z = m.zCounter

	// Focusing a minimized window restores it first.
	w.Frame.Minimized = false

	for _, other := range m.windows {
		other.Frame.Active = false
	}
	w.Frame.Active = true
	m.active = w.ID

	// Align the address with the focused window. sameRoute keeps this
	// from re-replacing the route the window was opened from, which
	// would otherwise ping-pong between router listener and manager. The
	// replace itself is deferred to unlockAndEmit: the route listener
	// re-enters Open, which needs mu free.
	if m.router != nil && w.URL != "" {
		if current := m.router.Current(); !sameRoute(current, w.URL) {
			m.pending.replace = true
			m.pending.replaceURL = w.URL
		}
	}
}

// FocusLastActive focuses the non-minimized window with the highest Z, the
// most recently used one. No-op when every window is minimized or none exist.
func (m *Manager) FocusLastActive() {
	m.mu.Lock()
	defer m.unlockAndEmit()
	m.focusNextLocked()
	m.publishLocked()
}

func (m *Manager) focusNextLocked() {
	var next *Window
	for _, w := range m.windows {
		if w.Frame.Minimized {
			continue
		}
		if next == nil || w.Frame.Z > next.Frame.Z {
			next = w
		}
	}
	if next != nil {
		m.focusLocked(next)
	} else {
		m.active = ""
	}
}

// Minimize hides a window without closing it. If it was active, the next
// most recently used window takes over; with none left the active id
// clears and the shell's desktop widgets un-blur.
func (m *Manager) Minimize(id string) {
	m.mu.Lock()
	defer m.unlockAndEmit()

	w, ok := m.windows[id]
	if !ok || w.Frame.Minimized {
		return
	}

	if m.gesture.id == id {
		m.gesture = gesture{}
	}

	w.Frame.Minimized = true
	w.Frame.Active = false

	if m.active == id {
		m.active = ""
		m.focusNextLocked()
	}

	m.publishLocked()
}

// Maximize toggles the maximized flag. Pure visual state: geometry fields,
// Z and the active marker are untouched.
func (m *Manager) Maximize(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[id]
	if !ok {
		return
	}
	w.Frame.Maximized = !w.Frame.Maximized
}

// Restore clears the minimized flag and re-applies the active marker.
// Unlike Focus it does not bump the z-order.
func (m *Manager) Restore(id string) {
	m.mu.Lock()
	defer m.unlockAndEmit()

	w, ok := m.windows[id]
	if !ok {
		return
	}

	w.Frame.Minimized = false
	for _, other := range m.windows {
		other.Frame.Active = false
	}
	w.Frame.Active = true
	m.active = id

	m.publishLocked()
}

// RestoreAll un-minimizes every window and focuses the most recent one.
func (m *Manager) RestoreAll() {
	m.mu.Lock()
	defer m.unlockAndEmit()

	for _, w := range m.windows {
		w.Frame.Minimized = false
	}
	m.focusNextLocked()
	m.publishLocked()
}

// CycleFocus focuses the window step positions away from the active one in
// insertion order, wrapping around. Minimized windows are restored when
// the cycle lands on them.
func (m *Manager) CycleFocus(step int) {
	m.mu.Lock()
	defer m.unlockAndEmit()

	if len(m.order) == 0 {
		return
	}

	idx := 0
	if m.active != "" {
		for i, id := range m.order {
			if id == m.active {
				idx = i + step
				break
			}
		}
	}
	idx = ((idx % len(m.order)) + len(m.order)) % len(m.order)

	if w, ok := m.windows[m.order[idx]]; ok {
		m.focusLocked(w)
		m.publishLocked()
	}
}

// ActiveID returns the focused window id, or "" when no non-minimized
// window exists.
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Get returns the record for an id.
func (m *Manager) Get(id string) (*Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.windows[id]
	return w, ok
}

// Len returns the number of open windows.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

// Empty reports whether no windows remain open.
func (m *Manager) Empty() bool {
	return m.Len() == 0
}

// OpenIDs returns the open window ids in insertion order.
func (m *Manager) OpenIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids
}

// publishLocked marks the store publication pending; unlockAndEmit
// snapshots the window list and issues the Set calls once mu is released.
func (m *Manager) publishLocked() {
	if m.store == nil {
		return
	}
	m.pending.publish = true
}

// unlockAndEmit drains the pending side effects, releases mu, and then
// issues them. The replace goes out first, matching the in-focus ordering
// callers observed before publication. Deferred in place of mu.Unlock by
// every mutating method; with nothing pending it degrades to a plain
// unlock.
func (m *Manager) unlockAndEmit() {
	se := m.pending
	m.pending = sideEffects{}
	if se.publish {
		se.ids = make([]string, len(m.order))
		copy(se.ids, m.order)
		for _, w := range m.windows {
			if !w.Frame.Minimized {
				se.visible = true
				break
			}
		}
	}
	m.mu.Unlock()

	if se.replace && m.router != nil {
		m.router.Replace(se.replaceURL)
	}
	if se.publish && m.store != nil {
		m.store.Set(StoreKeyOpenWindows, se.ids)
		m.store.Set(StoreKeyHasVisibleWindow, se.visible)
	}
}

// sameRoute reports whether two route strings point at the same location.
// Raw equality first, then equality after query-unescaping either side, so
// "/files?dir=a%2Fb" matches "/files?dir=a/b". Query parameter order is
// not normalized: reordered queries compare as different routes and may
// cause a redundant replace. Known limitation, kept as observed behavior.
func sameRoute(a, b string) bool {
	if a == b {
		return true
	}
	if ua, err := url.QueryUnescape(a); err == nil && ua == b {
		return true
	}
	if ub, err := url.QueryUnescape(b); err == nil && a == ub {
		return true
	}
	return false
}
