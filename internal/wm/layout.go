package wm

import "github.com/webdesk/webdesk/internal/config"

// Size is a viewport extent in logical px.
type Size struct {
	Width  int
	Height int
}

// Rect is a window geometry in logical px.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// initialPlacement computes the geometry for a newly opened window.
// Returns ok=false when the viewport is at or under the mobile breakpoint,
// in which case the window carries no inline geometry and renders
// fullscreen instead. Caller-supplied width/height override the defaults.
func initialPlacement(viewport Size, reqWidth, reqHeight int) (Rect, bool) {
	if viewport.Width <= config.MobileBreakpoint {
		return Rect{}, false
	}

	width := viewport.Width * config.DefaultWidthPercent / 100
	if width > config.MaxWindowWidth {
		width = config.MaxWindowWidth
	}
	height := viewport.Height * config.DefaultHeightPercent / 100

	if reqWidth > 0 {
		width = reqWidth
	}
	if reqHeight > 0 {
		height = reqHeight
	}

	left := (viewport.Width - width) / 2
	if left < 0 {
		left = 0
	}
	top := (viewport.Height - height) / 2
	if top < config.MinWindowTop {
		top = config.MinWindowTop
	}

	return Rect{X: left, Y: top, Width: width, Height: height}, true
}

// clampDrag bounds a candidate drag position. The top stays within
// [DragMinTop, vh-DragBottomMargin]; horizontally at least DragMinVisible
// px of the window must stay on screen on either side.
func clampDrag(x, y, width int, viewport Size) (int, int) {
	minX := -(width - config.DragMinVisible)
	maxX := viewport.Width - config.DragMinVisible
	if x < minX {
		x = minX
	}
	if x > maxX {
		x = maxX
	}

	minY := config.DragMinTop
	maxY := viewport.Height - config.DragBottomMargin
	if y < minY {
		y = minY
	}
	if y > maxY {
		y = maxY
	}

	return x, y
}

// resizeRect applies a pointer delta to a gesture's starting geometry for
// the given compass edge. East/south edges move directly; west/north edges
// keep the opposite edge anchored, moving the origin by exactly the
// accepted delta even when the minimum size clamps it.
func resizeRect(start Rect, edge Edge, dx, dy int) Rect {
	r := start

	switch edge {
	case EdgeE, EdgeNE, EdgeSE:
		r.Width = start.Width + dx
		if r.Width < config.MinWindowWidth {
			r.Width = config.MinWindowWidth
		}
	case EdgeW, EdgeNW, EdgeSW:
		r.Width = start.Width - dx
		if r.Width < config.MinWindowWidth {
			r.Width = config.MinWindowWidth
		}
		r.X = start.X + start.Width - r.Width
	}

	switch edge {
	case EdgeS, EdgeSE, EdgeSW:
		r.Height = start.Height + dy
		if r.Height < config.MinWindowHeight {
			r.Height = config.MinWindowHeight
		}
	case EdgeN, EdgeNE, EdgeNW:
		r.Height = start.Height - dy
		if r.Height < config.MinWindowHeight {
			r.Height = config.MinWindowHeight
		}
		r.Y = start.Y + start.Height - r.Height
	}

	return r
}
