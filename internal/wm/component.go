package wm

// Component is the lifecycle contract a page component satisfies to be
// hosted in a window. Mount is called once, after the window frame is
// attached to the desktop; Destroy exactly once when the window closes.
// Components release their own resources in Destroy; the manager never
// inspects component internals.
type Component interface {
	Mount()
	Destroy()
}

// BaseComponent provides no-op lifecycle hooks so simple pages only
// implement what they need.
type BaseComponent struct{}

// Mount implements Component.
func (BaseComponent) Mount() {}

// Destroy implements Component.
func (BaseComponent) Destroy() {}

// Refresher is an optional capability: the shell calls Refresh on every
// tick for components of visible windows that implement it.
type Refresher interface {
	Refresh()
}

// Renderer is an optional capability: instead of writing to the body
// surface, the component renders directly for the given cell dimensions.
type Renderer interface {
	Render(width, height int) string
}

// Factory constructs a page component against a window's body surface.
// The args are forwarded verbatim from the Open call. A factory error
// aborts the open: the frame is detached and the error is returned to the
// caller untouched.
type Factory func(body *Surface, args ...any) (Component, error)
