// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Coordinate Space
// =============================================================================
// The window manager reasons in logical pixels; the renderer projects pixels
// onto terminal cells. One cell covers CellPixelWidth x CellPixelHeight px.

const (
	// CellPixelWidth is the logical pixel width of one terminal cell
	CellPixelWidth = 10

	// CellPixelHeight is the logical pixel height of one terminal cell
	CellPixelHeight = 20
)

// =============================================================================
// Window Geometry (logical px)
// =============================================================================

const (
	// MobileBreakpoint is the viewport width at or below which new windows
	// skip inline geometry and fill the viewport instead
	MobileBreakpoint = 768

	// MaxWindowWidth caps the default width of a newly opened window
	MaxWindowWidth = 1400

	// DefaultWidthPercent is the viewport width share used for new windows,
	// before the MaxWindowWidth cap
	DefaultWidthPercent = 90

	// DefaultHeightPercent is the viewport height share used for new windows
	DefaultHeightPercent = 85

	// MinWindowTop keeps newly placed windows below the fixed topbar
	MinWindowTop = 50

	// MinWindowWidth is the minimum width a window can be resized to
	MinWindowWidth = 300

	// MinWindowHeight is the minimum height a window can be resized to
	MinWindowHeight = 200

	// DragMinTop is the lowest top a drag may reach, keeping the titlebar
	// under the topbar but still grabbable
	DragMinTop = 30

	// DragBottomMargin keeps at least this much of a dragged window visible
	// above the bottom viewport edge
	DragBottomMargin = 50

	// DragMinVisible is the horizontal sliver of a window that must remain
	// on screen when dragging past the left or right edge
	DragMinVisible = 100
)

// =============================================================================
// Stacking
// =============================================================================

const (
	// ZIndexBase seeds the window z-counter above static shell chrome so
	// windows always stack over the desktop backdrop and topbar
	ZIndexBase = 3000

	// ZIndexDesktop is the desktop backdrop layer
	ZIndexDesktop = 0

	// ZIndexTopbar is the fixed topbar layer
	ZIndexTopbar = 100

	// ZIndexAnimating lifts a window above everything while its close
	// animation plays
	ZIndexAnimating = 1 << 20

	// ZIndexDock is the dock layer, above all windows
	ZIndexDock = 1<<20 + 100

	// ZIndexNotification is the notification overlay layer
	ZIndexNotification = 1<<20 + 200
)

// =============================================================================
// Animation Durations and Timeouts
// =============================================================================

const (
	// DefaultAnimationDuration is the standard duration for window open and
	// close transitions
	DefaultAnimationDuration = 300 * time.Millisecond

	// CloseFallbackTimeout detaches a closing window's frame if the close
	// animation never reports completion
	CloseFallbackTimeout = 1 * time.Second

	// NotificationDuration is the default duration notifications remain visible
	NotificationDuration = 1500 * time.Millisecond

	// StatsUpdateInterval is the interval between CPU/RAM usage samples for
	// the dock widget
	StatsUpdateInterval = 2 * time.Second
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the normal refresh rate during regular operation
	NormalFPS = 60

	// InteractionFPS is the refresh rate during user interactions (drag/resize)
	// Lower FPS during interactions improves mouse responsiveness
	InteractionFPS = 30

	// IdleFPS is the refresh rate when the desktop is idle.
	// Reduces CPU usage to near-zero when nothing changes.
	IdleFPS = 10

	// IdleThresholdFrames is the number of consecutive idle frames at NormalFPS
	// before switching to IdleFPS (~500ms at 60 FPS).
	IdleThresholdFrames = 30
)

// =============================================================================
// Shell Layout
// =============================================================================

const (
	// DefaultRoute is the bare-desktop route the shell falls back to when
	// the last window closes
	DefaultRoute = "/desktop"

	// TopbarHeight is the height of the fixed topbar in cells
	TopbarHeight = 1

	// DockHeight is the height of the dock area in cells
	DockHeight = 1

	// MaxLogMessages is the maximum number of log messages kept in the
	// shell's in-model ring
	MaxLogMessages = 100

	// MaxNotifications is the maximum number of notifications shown at once
	MaxNotifications = 5
)

// =============================================================================
// SSH Server
// =============================================================================

const (
	// DefaultSSHHost is the default bind address for the serve subcommand
	DefaultSSHHost = "0.0.0.0"

	// DefaultSSHPort is the default port for the serve subcommand
	DefaultSSHPort = "2222"
)

// =============================================================================
// Runtime Settings
// =============================================================================
// Overridden by user config and CLI flags; see overrides.go.

var (
	// UseASCIIOnly replaces unicode glyphs with ASCII in chrome and dock
	UseASCIIOnly = false

	// AnimationsEnabled toggles open/close window animations
	AnimationsEnabled = true

	// BorderStyle selects the window border style: rounded, normal, thick,
	// double, hidden, block, outerhalf, innerhalf, ascii
	BorderStyle = "rounded"

	// DockbarPosition is "bottom", "top", or "hidden"
	DockbarPosition = "bottom"

	// HideClock removes the clock from the topbar
	HideClock = false
)

// GetAnimationDuration returns the configured animation duration, or zero
// when animations are disabled.
func GetAnimationDuration() time.Duration {
	if !AnimationsEnabled {
		return 0
	}
	return DefaultAnimationDuration
}

// GetCloseFallbackTimeout returns the fallback detach timeout for closing
// windows, or zero (immediate detach) when animations are disabled.
func GetCloseFallbackTimeout() time.Duration {
	if !AnimationsEnabled {
		return 0
	}
	return CloseFallbackTimeout
}

// GetBorderForStyle returns the lipgloss border for a named style.
func GetBorderForStyle(style string) lipgloss.Border {
	switch style {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "outerhalf":
		return lipgloss.OuterHalfBlockBorder()
	case "innerhalf":
		return lipgloss.InnerHalfBlockBorder()
	case "ascii":
		return lipgloss.ASCIIBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// GetBorder returns the border for the current BorderStyle, forcing ASCII
// when UseASCIIOnly is set.
func GetBorder() lipgloss.Border {
	if UseASCIIOnly {
		return lipgloss.ASCIIBorder()
	}
	return GetBorderForStyle(BorderStyle)
}
