package app

import (
	tea "charm.land/bubbletea/v2"
)

// FilterMouseMotion drops mouse motion events outside drag/resize
// gestures. AllMotion tracking floods Update otherwise.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}

	s, ok := model.(*Shell)
	if !ok {
		return msg
	}
	if s.WM.GestureActive() {
		return msg
	}
	return nil
}
