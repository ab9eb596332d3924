package wm

import "sync"

// Surface is the content region of a window body. Components write into it
// with SetContent; the render layer reads it back each frame. Its size
// tracks the frame's body area in logical px.
type Surface struct {
	mu      sync.Mutex
	width   int
	height  int
	content string
}

// NewSurface returns an empty surface. The manager creates one per window;
// standalone construction is mainly useful for component tests.
func NewSurface() *Surface {
	return &Surface{}
}

// SetContent replaces the surface content.
func (s *Surface) SetContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = content
}

// Content returns the current surface content.
func (s *Surface) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// Size returns the surface dimensions in logical px.
func (s *Surface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *Surface) resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

// Frame is the visual window shell a record owns: geometry in logical px,
// stacking order, state flags, and the body surface the hosted component
// writes into. Only the manager mutates a frame; everything else treats it
// as read-only.
type Frame struct {
	ID    string
	Title string

	// Geometry in logical px. Meaningless while Fullscreen is set; the
	// render layer then fills the viewport instead.
	X      int
	Y      int
	Width  int
	Height int

	// Z is the stacking order, assigned from the manager's monotonic
	// counter on every focus.
	Z int

	Active     bool
	Minimized  bool
	Maximized  bool
	Fullscreen bool
	Closing    bool
	Detached   bool

	Body *Surface
}

func (f *Frame) setGeometry(r Rect) {
	f.X = r.X
	f.Y = r.Y
	f.Width = r.Width
	f.Height = r.Height
	f.Body.resize(r.Width, r.Height)
}

// Container holds the frames attached to the desktop. It is the render
// layer's view of window existence; the manager's windows map stays the
// source of truth for logical state.
type Container struct {
	mu     sync.Mutex
	frames []*Frame
}

// NewContainer returns an empty desktop container.
func NewContainer() *Container {
	return &Container{}
}

func (c *Container) attach(f *Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
}

// detach removes a frame. Safe to call more than once; the second call is
// a no-op via the Detached flag.
func (c *Container) detach(f *Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f.Detached {
		return
	}
	f.Detached = true
	for i, other := range c.frames {
		if other == f {
			c.frames = append(c.frames[:i], c.frames[i+1:]...)
			break
		}
	}
}

// Frames returns a snapshot of the attached frames in attach order.
func (c *Container) Frames() []*Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Frame, len(c.frames))
	copy(out, c.frames)
	return out
}

// Len returns the number of attached frames, including closing ones.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}
