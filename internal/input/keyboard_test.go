package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/webdesk/webdesk/internal/app"
	"github.com/webdesk/webdesk/internal/config"
)

func newTestShell(t *testing.T) *app.Shell {
	t.Helper()
	return app.NewShell(app.Options{
		Width:           192,
		Height:          54,
		KeybindRegistry: config.NewKeybindRegistry(nil),
	})
}

func press(s *app.Shell, key tea.KeyPressMsg) tea.Cmd {
	_, cmd := HandleInput(key, s)
	return cmd
}

func TestQuitKey(t *testing.T) {
	s := newTestShell(t)

	cmd := press(s, tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("quit key produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key should produce tea.QuitMsg")
	}
}

func TestOpenPageKeys(t *testing.T) {
	s := newTestShell(t)

	press(s, tea.KeyPressMsg{Code: '3', Text: "3"})

	if s.WM.Len() != 1 {
		t.Fatalf("expected 1 window after open key, got %d", s.WM.Len())
	}
	if s.WM.ActiveID() != "/notes" {
		t.Errorf("active = %q, want /notes", s.WM.ActiveID())
	}
	if s.Router.Current() != "/notes" {
		t.Errorf("route = %q, want /notes", s.Router.Current())
	}
}

func TestCloseWindowKey(t *testing.T) {
	s := newTestShell(t)
	s.OpenRoute("/notes")

	press(s, tea.KeyPressMsg{Code: 'w', Text: "w"})

	if s.WM.Len() != 0 {
		t.Fatalf("close key left %d windows", s.WM.Len())
	}
	if s.Router.Current() != config.DefaultRoute {
		t.Errorf("route after last close = %q, want %q", s.Router.Current(), config.DefaultRoute)
	}
}

func TestMinimizeAndRestoreAllKeys(t *testing.T) {
	s := newTestShell(t)
	s.OpenRoute("/notes")

	press(s, tea.KeyPressMsg{Code: 'm', Text: "m"})

	w, _ := s.WM.Get("/notes")
	if !w.Frame.Minimized {
		t.Fatal("minimize key did not minimize the active window")
	}
	if s.WM.ActiveID() != "" {
		t.Error("minimizing the only window should clear focus")
	}

	press(s, tea.KeyPressMsg{Code: 'M', Text: "M"})

	if w.Frame.Minimized {
		t.Error("restore-all key did not restore the window")
	}
}

func TestMaximizeKeyToggles(t *testing.T) {
	s := newTestShell(t)
	s.OpenRoute("/notes")

	press(s, tea.KeyPressMsg{Code: 'f', Text: "f"})
	w, _ := s.WM.Get("/notes")
	if !w.Frame.Maximized {
		t.Fatal("maximize key did not set the flag")
	}

	press(s, tea.KeyPressMsg{Code: 'f', Text: "f"})
	if w.Frame.Maximized {
		t.Error("maximize key should toggle off")
	}
}

func TestCycleFocusKeys(t *testing.T) {
	s := newTestShell(t)
	s.OpenRoute("/notes")
	s.OpenRoute("/about")

	press(s, tea.KeyPressMsg{Code: tea.KeyTab})
	if s.WM.ActiveID() != "/notes" {
		t.Errorf("tab: active = %q, want /notes", s.WM.ActiveID())
	}

	press(s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.WM.ActiveID() != "/about" {
		t.Errorf("shift+tab: active = %q, want /about", s.WM.ActiveID())
	}
}

func TestHelpOverlaySwallowsKeys(t *testing.T) {
	s := newTestShell(t)
	s.OpenRoute("/notes")

	press(s, tea.KeyPressMsg{Code: '?', Text: "?"})
	if !s.ShowHelp {
		t.Fatal("help key did not open the overlay")
	}

	// A bound key is swallowed while help is up.
	press(s, tea.KeyPressMsg{Code: 'w', Text: "w"})
	if s.ShowHelp {
		t.Error("any key should dismiss the overlay")
	}
	if s.WM.Len() != 1 {
		t.Error("key pressed with help open must not reach the window manager")
	}

	// The toggle itself closes it too.
	press(s, tea.KeyPressMsg{Code: '?', Text: "?"})
	press(s, tea.KeyPressMsg{Code: '?', Text: "?"})
	if s.ShowHelp {
		t.Error("pressing the help key twice should close the overlay")
	}
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	s := newTestShell(t)
	s.OpenRoute("/notes")

	if cmd := press(s, tea.KeyPressMsg{Code: 'z', Text: "z"}); cmd != nil {
		t.Error("unbound key produced a command")
	}
	if s.WM.Len() != 1 || s.WM.ActiveID() != "/notes" {
		t.Error("unbound key changed window state")
	}
}
