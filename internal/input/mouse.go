package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/webdesk/webdesk/internal/app"
	"github.com/webdesk/webdesk/internal/config"
	"github.com/webdesk/webdesk/internal/wm"
)

// cellToPx converts a terminal cell position to logical px at the cell's
// top-left corner.
func cellToPx(x, y int) (int, int) {
	return x * config.CellPixelWidth, y * config.CellPixelHeight
}

// topFrameAt returns the visible frame with the highest Z whose cell rect
// contains (x, y), or nil.
func topFrameAt(s *app.Shell, x, y int) *wm.Frame {
	var best *wm.Frame
	for _, f := range s.Container.Frames() {
		if f.Minimized || f.Closing {
			continue
		}
		fx, fy, fw, fh := s.FrameCellRect(f)
		if x < fx || x >= fx+fw || y < fy || y >= fy+fh {
			continue
		}
		if best == nil || f.Z > best.Z {
			best = f
		}
	}
	return best
}

// borderEdge maps a frame-relative cell on a side or bottom border to a
// resize edge. The top row is the titlebar and never reaches here.
func borderEdge(relX, relY, width, height int) wm.Edge {
	onW := relX == 0
	onE := relX == width-1
	onS := relY == height-1

	switch {
	case onS && onW:
		return wm.EdgeSW
	case onS && onE:
		return wm.EdgeSE
	case onS:
		return wm.EdgeS
	case onW:
		return wm.EdgeW
	case onE:
		return wm.EdgeE
	}
	return wm.EdgeNone
}

func handleMouseClick(msg tea.MouseClickMsg, s *app.Shell) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return s, nil
	}
	x, y := mouse.X, mouse.Y

	if s.ShowHelp {
		s.ShowHelp = false
		return s, nil
	}

	if config.DockbarPosition != "hidden" && y == s.DockRow() {
		handleDockClick(x, s)
		return s, nil
	}

	f := topFrameAt(s, x, y)
	if f == nil {
		return s, nil
	}

	fx, fy, fw, fh := s.FrameCellRect(f)
	relX := x - fx
	relY := y - fy

	if relY == 0 {
		// Corners of the titlebar row resize; the rest is buttons or
		// drag.
		switch relX {
		case 0:
			px, py := cellToPx(x, y)
			s.WM.StartResize(f.ID, wm.EdgeNW, px, py)
			return s, nil
		case fw - 1:
			px, py := cellToPx(x, y)
			s.WM.StartResize(f.ID, wm.EdgeNE, px, py)
			return s, nil
		}

		switch app.TitleBarButton(fw, relX) {
		case "close":
			s.CloseWindow(f.ID)
			return s, nil
		case "maximize":
			s.WM.Maximize(f.ID)
			return s, nil
		case "minimize":
			s.WM.Minimize(f.ID)
			return s, nil
		}

		s.WM.Focus(f.ID)
		px, py := cellToPx(x, y)
		s.WM.StartDrag(f.ID, px, py)
		return s, nil
	}

	if edge := borderEdge(relX, relY, fw, fh); edge != wm.EdgeNone {
		px, py := cellToPx(x, y)
		s.WM.StartResize(f.ID, edge, px, py)
		return s, nil
	}

	s.WM.Focus(f.ID)
	return s, nil
}

// handleDockClick toggles the clicked dock entry: restore if minimized,
// minimize if already focused, focus otherwise.
func handleDockClick(x int, s *app.Shell) {
	for _, item := range s.CalculateDockLayout() {
		if x < item.StartX || x > item.EndX {
			continue
		}
		switch {
		case item.Minimized:
			s.WM.Restore(item.ID)
		case item.Active:
			s.WM.Minimize(item.ID)
		default:
			s.WM.Focus(item.ID)
		}
		return
	}
}

func handleMouseMotion(msg tea.MouseMotionMsg, s *app.Shell) (tea.Model, tea.Cmd) {
	if !s.WM.GestureActive() {
		return s, nil
	}
	mouse := msg.Mouse()
	px, py := cellToPx(mouse.X, mouse.Y)
	s.WM.PointerMove(px, py)
	return s, nil
}

func handleMouseRelease(s *app.Shell) (tea.Model, tea.Cmd) {
	s.WM.PointerUp()
	return s, nil
}
