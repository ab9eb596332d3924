package wm

// Edge identifies which window edge or corner a resize gesture grabbed,
// by compass direction.
type Edge int

// Resize edges.
const (
	EdgeNone Edge = iota
	EdgeN
	EdgeS
	EdgeE
	EdgeW
	EdgeNE
	EdgeNW
	EdgeSE
	EdgeSW
)

func (e Edge) String() string {
	switch e {
	case EdgeN:
		return "n"
	case EdgeS:
		return "s"
	case EdgeE:
		return "e"
	case EdgeW:
		return "w"
	case EdgeNE:
		return "ne"
	case EdgeNW:
		return "nw"
	case EdgeSE:
		return "se"
	case EdgeSW:
		return "sw"
	default:
		return "none"
	}
}

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureDrag
	gestureResize
)

// gesture is the transient Idle -> Dragging/Resizing -> Idle state. At
// most one gesture is active at a time; PointerUp zeroes the whole struct.
type gesture struct {
	kind   gestureKind
	id     string
	edge   Edge
	startX int
	startY int

	// Drag: pointer offset into the frame at press time.
	offsetX int
	offsetY int

	// Resize: geometry at press time.
	start Rect
}

// StartDrag begins dragging a window from a pointer press at (x, y) in
// logical px. Refused while the window is maximized or fullscreen, while
// another gesture is active, and for unknown ids.
func (m *Manager) StartDrag(id string, x, y int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.gesture.kind != gestureNone {
		return false
	}
	w, ok := m.windows[id]
	if !ok || w.Frame.Maximized || w.Frame.Fullscreen {
		return false
	}

	m.gesture = gesture{
		kind:    gestureDrag,
		id:      id,
		startX:  x,
		startY:  y,
		offsetX: x - w.Frame.X,
		offsetY: y - w.Frame.Y,
	}
	return true
}

// StartResize begins resizing a window from the given edge. The window is
// focused first, bringing it forward before any geometry changes. Refused
// under the same conditions as StartDrag.
func (m *Manager) StartResize(id string, edge Edge, x, y int) bool {
	m.mu.Lock()
	defer m.unlockAndEmit()

	if m.gesture.kind != gestureNone || edge == EdgeNone {
		return false
	}
	w, ok := m.windows[id]
	if !ok || w.Frame.Maximized || w.Frame.Fullscreen {
		return false
	}

	m.focusLocked(w)
	m.publishLocked()

	m.gesture = gesture{
		kind:   gestureResize,
		id:     id,
		edge:   edge,
		startX: x,
		startY: y,
		start:  Rect{X: w.Frame.X, Y: w.Frame.Y, Width: w.Frame.Width, Height: w.Frame.Height},
	}
	return true
}

// PointerMove advances the active gesture to the pointer position (x, y).
// No-op while idle.
func (m *Manager) PointerMove(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[m.gesture.id]
	if !ok {
		return
	}

	switch m.gesture.kind {
	case gestureDrag:
		newX := x - m.gesture.offsetX
		newY := y - m.gesture.offsetY
		newX, newY = clampDrag(newX, newY, w.Frame.Width, m.viewport)
		w.Frame.X = newX
		w.Frame.Y = newY
	case gestureResize:
		r := resizeRect(m.gesture.start, m.gesture.edge, x-m.gesture.startX, y-m.gesture.startY)
		w.Frame.setGeometry(r)
	}
}

// PointerUp ends the active gesture and zeroes all gesture state.
// Idempotent: a release without a gesture is a no-op.
func (m *Manager) PointerUp() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gesture = gesture{}
}

// GestureActive reports whether a drag or resize is in progress.
func (m *Manager) GestureActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gesture.kind != gestureNone
}

// Dragging reports whether a drag gesture is in progress.
func (m *Manager) Dragging() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gesture.kind == gestureDrag
}

// Resizing reports whether a resize gesture is in progress.
func (m *Manager) Resizing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gesture.kind == gestureResize
}
