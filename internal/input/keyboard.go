package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/webdesk/webdesk/internal/app"
)

// handleKeyPress resolves the pressed key through the keybind registry and
// dispatches the bound action.
func handleKeyPress(msg tea.KeyPressMsg, s *app.Shell) (tea.Model, tea.Cmd) {
	key := msg.String()

	// The help overlay swallows everything except its own toggle, which
	// falls through so pressing it twice closes the overlay.
	if s.ShowHelp {
		if s.KeybindRegistry == nil || s.KeybindRegistry.GetAction(key) != "toggle_help" {
			s.ShowHelp = false
			return s, nil
		}
	}

	if s.KeybindRegistry == nil {
		return s, nil
	}

	switch s.KeybindRegistry.GetAction(key) {
	case "quit":
		return s, tea.Quit
	case "close_window":
		if id := s.WM.ActiveID(); id != "" {
			s.CloseWindow(id)
		}
	case "minimize_window":
		if id := s.WM.ActiveID(); id != "" {
			s.WM.Minimize(id)
		}
	case "maximize_window":
		if id := s.WM.ActiveID(); id != "" {
			s.WM.Maximize(id)
		}
	case "restore_all":
		s.WM.RestoreAll()
	case "next_window":
		s.WM.CycleFocus(1)
	case "prev_window":
		s.WM.CycleFocus(-1)
	case "open_monitor":
		s.OpenRoute("/monitor")
	case "open_logs":
		s.OpenRoute("/logs")
	case "open_notes":
		s.OpenRoute("/notes")
	case "open_about":
		s.OpenRoute("/about")
	case "toggle_help":
		s.ShowHelp = !s.ShowHelp
	}
	return s, nil
}
