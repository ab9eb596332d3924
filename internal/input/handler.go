// Package input routes keyboard and mouse events to shell and window
// manager operations.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/webdesk/webdesk/internal/app"
)

// HandleInput is the input coordinator wired into the shell via
// SetInputHandler.
func HandleInput(msg tea.Msg, s *app.Shell) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return handleKeyPress(msg, s)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, s)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, s)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(s)
	}
	return s, nil
}
