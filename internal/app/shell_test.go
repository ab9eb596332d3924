package app

import (
	"testing"
	"time"

	"github.com/webdesk/webdesk/internal/config"
	"github.com/webdesk/webdesk/internal/wm"
)

func newRoutedShell() *Shell {
	return NewShell(Options{
		Width:           192,
		Height:          54,
		KeybindRegistry: config.NewKeybindRegistry(nil),
	})
}

// within fails the test when fn blocks instead of returning. Navigation
// runs router and store listeners synchronously on the calling goroutine,
// so a lock held across a notification shows up here as a hang.
func within(t *testing.T, name string, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s did not return", name)
	}
}

// Opening a page route goes through the window manager, which replaces the
// route, which re-enters the shell's route listener. The whole chain must
// return with exactly one window open.
func TestOpenRouteOpensWindow(t *testing.T) {
	s := newRoutedShell()

	within(t, "OpenRoute(/notes)", func() { s.OpenRoute("/notes") })

	if s.WM.Len() != 1 {
		t.Fatalf("expected 1 window, got %d", s.WM.Len())
	}
	if s.WM.ActiveID() != "/notes" {
		t.Errorf("expected /notes active, got %q", s.WM.ActiveID())
	}
	if got := s.Router.Current(); got != "/notes" {
		t.Errorf("route should follow the opened page, got %q", got)
	}
	if !s.Store.GetBool(wm.StoreKeyHasVisibleWindow) {
		t.Error("hasVisibleWindow should be published")
	}
}

// Focusing a window whose route differs replaces the route; the listener
// re-enters through Open and must land on the dedup path instead of
// opening a second window.
func TestFocusSyncsRouteThroughListener(t *testing.T) {
	s := newRoutedShell()
	s.OpenRoute("/notes")
	s.OpenRoute("/logs")

	if got := s.Router.Current(); got != "/logs" {
		t.Fatalf("expected /logs current, got %q", got)
	}

	within(t, "Focus(/notes)", func() { s.WM.Focus("/notes") })

	if got := s.Router.Current(); got != "/notes" {
		t.Errorf("route should follow focus, got %q", got)
	}
	if s.WM.Len() != 2 {
		t.Errorf("focus must not open new windows, got %d", s.WM.Len())
	}
	if s.WM.ActiveID() != "/notes" {
		t.Errorf("expected /notes active, got %q", s.WM.ActiveID())
	}
}

func TestReopenRouteFocusesExisting(t *testing.T) {
	s := newRoutedShell()
	s.OpenRoute("/notes")
	s.OpenRoute("/logs")

	within(t, "OpenRoute(/notes) again", func() { s.OpenRoute("/notes") })

	if s.WM.Len() != 2 {
		t.Errorf("reopening a route must reuse its window, got %d", s.WM.Len())
	}
	if s.WM.ActiveID() != "/notes" {
		t.Errorf("expected /notes active, got %q", s.WM.ActiveID())
	}
}

// Closing the last window drops the route back to the bare desktop, and
// the default route opens nothing.
func TestCloseLastWindowRestoresDefaultRoute(t *testing.T) {
	s := newRoutedShell()
	s.OpenRoute("/notes")

	within(t, "CloseWindow(/notes)", func() { s.CloseWindow("/notes") })

	if s.WM.Len() != 0 {
		t.Fatalf("expected no windows, got %d", s.WM.Len())
	}
	if got := s.Router.Current(); got != config.DefaultRoute {
		t.Errorf("route should fall back to the desktop, got %q", got)
	}
}
