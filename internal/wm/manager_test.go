package wm

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/webdesk/webdesk/internal/config"
)

type fakeRouter struct {
	current  string
	replaced []string
}

func (r *fakeRouter) Current() string { return r.current }

func (r *fakeRouter) Replace(u string) {
	r.current = u
	r.replaced = append(r.replaced, u)
}

type fakeStore struct {
	values map[string]any
}

func newFakeStore() *fakeStore { return &fakeStore{values: make(map[string]any)} }

func (s *fakeStore) Set(key string, value any) { s.values[key] = value }

func (s *fakeStore) openWindows() []string {
	ids, _ := s.values[StoreKeyOpenWindows].([]string)
	return ids
}

func (s *fakeStore) hasVisible() bool {
	b, _ := s.values[StoreKeyHasVisibleWindow].(bool)
	return b
}

type testComponent struct {
	BaseComponent
	mounted   int
	destroyed int
}

func (c *testComponent) Mount()   { c.mounted++ }
func (c *testComponent) Destroy() { c.destroyed++ }

func newTestManager(closeTimeout time.Duration) (*Manager, *fakeRouter, *fakeStore) {
	router := &fakeRouter{current: "/desktop"}
	store := newFakeStore()
	m := New(Options{Router: router, Store: store, CloseTimeout: closeTimeout})
	m.Init(NewContainer(), Size{Width: 1920, Height: 1080})
	return m, router, store
}

func mustOpen(t *testing.T, m *Manager, opts OpenOptions) (string, *testComponent) {
	t.Helper()
	comp := &testComponent{}
	id, err := m.Open(func(body *Surface, args ...any) (Component, error) {
		return comp, nil
	}, nil, opts)
	if err != nil {
		t.Fatalf("Open(%q) failed: %v", opts.ID, err)
	}
	return id, comp
}

func TestOpenGeneratesID(t *testing.T) {
	m, _, _ := newTestManager(0)

	id, comp := mustOpen(t, m, OpenOptions{})
	if !strings.HasPrefix(id, "win_") {
		t.Errorf("generated id should start with win_, got %q", id)
	}
	if comp.mounted != 1 {
		t.Errorf("component should be mounted exactly once, got %d", comp.mounted)
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 window, got %d", m.Len())
	}
}

func TestOpenBeforeInit(t *testing.T) {
	m := New(Options{})
	_, err := m.Open(func(body *Surface, args ...any) (Component, error) {
		return &testComponent{}, nil
	}, nil, OpenOptions{})
	if err == nil {
		t.Fatal("Open before Init should fail")
	}
}

// Reopening the same id reuses the window, updates its url, and replaces
// the route.
func TestOpenDedupByID(t *testing.T) {
	m, router, _ := newTestManager(0)

	first, _ := mustOpen(t, m, OpenOptions{ID: "/blog", URL: "/blog/list"})
	second, _ := mustOpen(t, m, OpenOptions{ID: "/blog", URL: "/blog/edit"})

	if first != second {
		t.Errorf("dedup should return the same id, got %q and %q", first, second)
	}
	if m.Len() != 1 {
		t.Fatalf("expected exactly one window, got %d", m.Len())
	}

	w, _ := m.Get("/blog")
	if w.URL != "/blog/edit" {
		t.Errorf("url should be updated to /blog/edit, got %q", w.URL)
	}

	found := false
	for _, u := range router.replaced {
		if u == "/blog/edit" {
			found = true
		}
	}
	if !found {
		t.Errorf("router.Replace(/blog/edit) expected, got %v", router.replaced)
	}
}

func TestOpenInfersURLFromPathID(t *testing.T) {
	m, router, _ := newTestManager(0)

	mustOpen(t, m, OpenOptions{ID: "/monitor"})

	w, _ := m.Get("/monitor")
	if w.URL != "/monitor" {
		t.Errorf("url should be inferred from path-shaped id, got %q", w.URL)
	}
	if router.current != "/monitor" {
		t.Errorf("focus should have replaced the route, got %q", router.current)
	}
}

func TestOpenFactoryError(t *testing.T) {
	m, _, _ := newTestManager(0)
	container := NewContainer()
	m.Init(container, Size{Width: 1920, Height: 1080})

	boom := errors.New("page exploded")
	_, err := m.Open(func(body *Surface, args ...any) (Component, error) {
		return nil, boom
	}, nil, OpenOptions{ID: "/broken"})

	if !errors.Is(err, boom) {
		t.Fatalf("factory error should propagate untouched, got %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("no window record should remain, got %d", m.Len())
	}
	if container.Len() != 0 {
		t.Errorf("frame should be detached after factory failure, got %d attached", container.Len())
	}
}

func TestOpenForwardsArgs(t *testing.T) {
	m, _, _ := newTestManager(0)

	var got []any
	_, err := m.Open(func(body *Surface, args ...any) (Component, error) {
		got = args
		return &testComponent{}, nil
	}, []any{"a", 2}, OpenOptions{ID: "/args"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != 2 {
		t.Errorf("args should be forwarded verbatim, got %v", got)
	}
}

func TestFocusStacking(t *testing.T) {
	m, _, _ := newTestManager(0)

	x, _ := mustOpen(t, m, OpenOptions{ID: "x"})
	y, _ := mustOpen(t, m, OpenOptions{ID: "y"})

	m.Focus(x)

	wx, _ := m.Get(x)
	wy, _ := m.Get(y)
	if wx.Frame.Z <= wy.Frame.Z {
		t.Errorf("focused window must have the strictly highest Z: x=%d y=%d", wx.Frame.Z, wy.Frame.Z)
	}
	if m.ActiveID() != x {
		t.Errorf("expected active %q, got %q", x, m.ActiveID())
	}
	if !wx.Frame.Active || wy.Frame.Active {
		t.Error("exactly one window may carry the active marker")
	}
	if wx.Frame.Z <= config.ZIndexBase {
		t.Errorf("window Z must stay above the chrome seed, got %d", wx.Frame.Z)
	}
}

func TestFocusRestoresMinimized(t *testing.T) {
	m, _, _ := newTestManager(0)

	id, _ := mustOpen(t, m, OpenOptions{ID: "a"})
	m.Minimize(id)

	w, _ := m.Get(id)
	if !w.Frame.Minimized {
		t.Fatal("window should be minimized")
	}

	m.Focus(id)
	if w.Frame.Minimized {
		t.Error("focus should clear the minimized flag")
	}
	if m.ActiveID() != id {
		t.Errorf("expected active %q, got %q", id, m.ActiveID())
	}
}

func TestFocusUnknownIsNoop(t *testing.T) {
	m, router, _ := newTestManager(0)
	mustOpen(t, m, OpenOptions{ID: "a"})

	before := m.ActiveID()
	replacedBefore := len(router.replaced)
	m.Focus("ghost")

	if m.ActiveID() != before {
		t.Error("focus on unknown id must not change the active window")
	}
	if len(router.replaced) != replacedBefore {
		t.Error("focus on unknown id must not touch the router")
	}
}

func TestFocusSkipsRedundantReplace(t *testing.T) {
	m, router, _ := newTestManager(0)

	id, _ := mustOpen(t, m, OpenOptions{ID: "/blog", URL: "/blog/list"})
	replaced := len(router.replaced)

	// Route already matches the window url; focusing again must not
	// issue another replace.
	m.Focus(id)
	if len(router.replaced) != replaced {
		t.Errorf("redundant replace issued: %v", router.replaced)
	}
}

// Closing the top window hands focus to the next-highest Z.
func TestCloseFocusesNextByZ(t *testing.T) {
	m, _, _ := newTestManager(0)

	mustOpen(t, m, OpenOptions{ID: "x"})
	y, _ := mustOpen(t, m, OpenOptions{ID: "y"})
	z, _ := mustOpen(t, m, OpenOptions{ID: "z"})

	m.Close(z)

	if m.ActiveID() != y {
		t.Errorf("expected %q active after closing top window, got %q", y, m.ActiveID())
	}
}

func TestCloseRemovesSynchronously(t *testing.T) {
	m, _, _ := newTestManager(50 * time.Millisecond)
	container := NewContainer()
	m.Init(container, Size{Width: 1920, Height: 1080})

	id, comp := mustOpen(t, m, OpenOptions{ID: "a"})
	f := m.Close(id)

	if f == nil {
		t.Fatal("Close should return the closing frame")
	}
	if _, ok := m.Get(id); ok {
		t.Error("record must be gone immediately, before the exit animation")
	}
	if comp.destroyed != 1 {
		t.Errorf("component should be destroyed exactly once, got %d", comp.destroyed)
	}
	if !f.Closing {
		t.Error("frame should be in closing state")
	}
	if container.Len() != 1 {
		t.Error("frame should stay attached until the animation finishes")
	}

	m.FinishClose(id)
	if container.Len() != 0 {
		t.Error("FinishClose should detach the frame")
	}
	if !f.Detached {
		t.Error("frame should be marked detached")
	}

	// Double removal is harmless.
	m.FinishClose(id)
}

func TestCloseFallbackTimer(t *testing.T) {
	m, _, _ := newTestManager(10 * time.Millisecond)
	container := NewContainer()
	m.Init(container, Size{Width: 1920, Height: 1080})

	id, _ := mustOpen(t, m, OpenOptions{ID: "a"})
	m.Close(id)

	deadline := time.Now().Add(time.Second)
	for container.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("fallback timer never detached the frame")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCloseUnknownIsNoop(t *testing.T) {
	m, _, _ := newTestManager(0)
	if f := m.Close("ghost"); f != nil {
		t.Error("closing an unknown id should return nil")
	}
}

func TestCloseLastWindowClearsActive(t *testing.T) {
	m, _, store := newTestManager(0)

	id, _ := mustOpen(t, m, OpenOptions{ID: "a"})
	m.Close(id)

	if m.ActiveID() != "" {
		t.Errorf("no window left, active must be empty, got %q", m.ActiveID())
	}
	if len(store.openWindows()) != 0 {
		t.Errorf("openWindows should be empty, got %v", store.openWindows())
	}
	if store.hasVisible() {
		t.Error("hasVisibleWindow should be false")
	}
}

func TestCloseAll(t *testing.T) {
	m, _, _ := newTestManager(0)

	mustOpen(t, m, OpenOptions{ID: "a"})
	mustOpen(t, m, OpenOptions{ID: "b"})
	mustOpen(t, m, OpenOptions{ID: "c"})

	m.CloseAll()

	if m.Len() != 0 {
		t.Errorf("expected 0 windows, got %d", m.Len())
	}
	if m.ActiveID() != "" {
		t.Errorf("active must clear, got %q", m.ActiveID())
	}
}

// Minimizing the only window: no active window, the id stays in the open
// list, and the visible flag drops.
func TestMinimizeOnlyWindow(t *testing.T) {
	m, _, store := newTestManager(0)

	id, _ := mustOpen(t, m, OpenOptions{ID: "/notes"})
	m.Minimize(id)

	if m.ActiveID() != "" {
		t.Errorf("active should be empty, got %q", m.ActiveID())
	}
	ids := store.openWindows()
	if len(ids) != 1 || ids[0] != id {
		t.Errorf("minimized window must stay in openWindows, got %v", ids)
	}
	if store.hasVisible() {
		t.Error("hasVisibleWindow should be false with everything minimized")
	}
}

func TestMinimizeActivePicksNext(t *testing.T) {
	m, _, _ := newTestManager(0)

	a, _ := mustOpen(t, m, OpenOptions{ID: "a"})
	b, _ := mustOpen(t, m, OpenOptions{ID: "b"})

	m.Minimize(b)
	if m.ActiveID() != a {
		t.Errorf("expected %q active after minimizing %q, got %q", a, b, m.ActiveID())
	}
}

func TestMaximizeTogglesFlagOnly(t *testing.T) {
	m, _, _ := newTestManager(0)

	a, _ := mustOpen(t, m, OpenOptions{ID: "a"})
	b, _ := mustOpen(t, m, OpenOptions{ID: "b"})

	wa, _ := m.Get(a)
	x, y, width, height, z := wa.Frame.X, wa.Frame.Y, wa.Frame.Width, wa.Frame.Height, wa.Frame.Z

	m.Maximize(a)
	if !wa.Frame.Maximized {
		t.Error("maximize should set the flag")
	}
	if wa.Frame.X != x || wa.Frame.Y != y || wa.Frame.Width != width || wa.Frame.Height != height {
		t.Error("maximize must not touch geometry fields")
	}
	if wa.Frame.Z != z {
		t.Error("maximize must not touch the z-order")
	}
	if m.ActiveID() != b {
		t.Error("maximize must not steal focus")
	}

	m.Maximize(a)
	if wa.Frame.Maximized {
		t.Error("second maximize should clear the flag")
	}
}

func TestRestore(t *testing.T) {
	m, _, store := newTestManager(0)

	id, _ := mustOpen(t, m, OpenOptions{ID: "a"})
	m.Minimize(id)
	m.Restore(id)

	w, _ := m.Get(id)
	if w.Frame.Minimized {
		t.Error("restore should clear the minimized flag")
	}
	if !w.Frame.Active || m.ActiveID() != id {
		t.Error("restore should re-apply the active marker")
	}
	if !store.hasVisible() {
		t.Error("hasVisibleWindow should be true after restore")
	}
}

func TestFocusLastActiveSkipsMinimized(t *testing.T) {
	m, _, _ := newTestManager(0)

	a, _ := mustOpen(t, m, OpenOptions{ID: "a"})
	b, _ := mustOpen(t, m, OpenOptions{ID: "b"})
	c, _ := mustOpen(t, m, OpenOptions{ID: "c"})

	m.Minimize(c) // b takes over
	m.Minimize(b) // a takes over
	if m.ActiveID() != a {
		t.Fatalf("expected %q active, got %q", a, m.ActiveID())
	}

	m.Minimize(a)
	if m.ActiveID() != "" {
		t.Errorf("all minimized, active must be empty, got %q", m.ActiveID())
	}

	m.FocusLastActive()
	if m.ActiveID() != "" {
		t.Errorf("FocusLastActive with every window minimized stays empty, got %q", m.ActiveID())
	}
}

func TestWindowCountInvariant(t *testing.T) {
	m, _, _ := newTestManager(0)

	ids := []string{"a", "b", "c", "d"}
	for _, id := range ids {
		mustOpen(t, m, OpenOptions{ID: id})
	}
	m.Close("b")
	m.Close("d")

	if m.Len() != 2 {
		t.Errorf("4 opened - 2 closed = 2 windows, got %d", m.Len())
	}
	open := m.OpenIDs()
	if len(open) != 2 || open[0] != "a" || open[1] != "c" {
		t.Errorf("expected [a c] in insertion order, got %v", open)
	}
}

func TestCycleFocus(t *testing.T) {
	m, _, _ := newTestManager(0)

	a, _ := mustOpen(t, m, OpenOptions{ID: "a"})
	b, _ := mustOpen(t, m, OpenOptions{ID: "b"})
	c, _ := mustOpen(t, m, OpenOptions{ID: "c"})

	// c is active; forward wraps to a.
	m.CycleFocus(1)
	if m.ActiveID() != a {
		t.Errorf("expected %q, got %q", a, m.ActiveID())
	}
	m.CycleFocus(-1)
	if m.ActiveID() != c {
		t.Errorf("expected %q, got %q", c, m.ActiveID())
	}
	m.CycleFocus(-1)
	if m.ActiveID() != b {
		t.Errorf("expected %q, got %q", b, m.ActiveID())
	}
}

// reentrantRouter mimics the application router: Replace records the new
// route before notifying, and the listener calls back into the manager the
// way the shell's route listener does.
type reentrantRouter struct {
	current  string
	onChange func(route string)
}

func (r *reentrantRouter) Current() string { return r.current }

func (r *reentrantRouter) Replace(u string) {
	changed := r.current != u
	r.current = u
	if changed && r.onChange != nil {
		r.onChange(u)
	}
}

// Router and store listeners run synchronously and may call straight back
// into the manager, so no notification may go out while the manager lock
// is held. A listener that re-enters Open must land on the dedup path and
// return.
func TestReplaceListenerMayReenter(t *testing.T) {
	router := &reentrantRouter{current: "/desktop"}
	m := New(Options{Router: router, Store: newFakeStore()})
	m.Init(NewContainer(), Size{Width: 1920, Height: 1080})

	open := func(id string) {
		_, err := m.Open(func(body *Surface, args ...any) (Component, error) {
			return &testComponent{}, nil
		}, nil, OpenOptions{ID: id})
		if err != nil {
			t.Errorf("Open(%q) failed: %v", id, err)
		}
	}
	router.onChange = func(route string) { open(route) }

	done := make(chan struct{})
	go func() {
		defer close(done)
		open("/notes")
		open("/logs")
		m.Focus("/notes")
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("manager blocked while notifying the route listener")
	}

	if m.Len() != 2 {
		t.Errorf("listener re-entry must dedup, got %d windows", m.Len())
	}
	if router.current != "/notes" {
		t.Errorf("expected /notes current, got %q", router.current)
	}
	if m.ActiveID() != "/notes" {
		t.Errorf("expected /notes active, got %q", m.ActiveID())
	}
}

func TestSameRoute(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"identical", "/blog/list", "/blog/list", true},
		{"different paths", "/blog/list", "/blog/edit", false},
		{"escaped left", "/files?dir=a%2Fb", "/files?dir=a/b", true},
		{"escaped right", "/files?dir=a/b", "/files?dir=a%2Fb", true},
		{"both escaped equal", "/q?x=%20", "/q?x=%20", true},
		{"query order differs", "/q?a=1&b=2", "/q?b=2&a=1", false},
		{"empty both", "", "", true},
		{"one empty", "/x", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameRoute(tt.a, tt.b); got != tt.want {
				t.Errorf("sameRoute(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
