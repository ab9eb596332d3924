// Package theme provides color themes and styling for the webdesk shell.
package theme

import (
	"fmt"
	"image/color"
	"log"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming will be disabled and standard terminal colors will be used.
func Initialize(themeName string) error {
	// If no theme specified, disable theming
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	// Load custom themes from user's themes directory
	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Printf("Warning: error loading custom themes: %v", err)
		}
	}

	// Try to set the theme by ID
	ok := tint.SetTintID(themeName)
	if !ok {
		// Theme not found, set to default
		tint.SetTintID("default")
	}

	return nil
}

// Disable turns theming off regardless of any loaded theme. Used when the
// terminal cannot display enough colors.
func Disable() {
	enabled = false
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// DesktopFg returns the foreground color for the desktop backdrop.
func DesktopFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#3a3a4e")
	}
	return t.BrightBlack
}

// WindowFg returns the foreground color for window body text.
func WindowFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// BorderUnfocused returns the color for unfocused window borders.
func BorderUnfocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#FAAAAA")
	}
	// Regular Red gives a softer, more muted tone for unfocused windows
	return t.Red
}

// BorderFocused returns the color for the focused window border.
func BorderFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

// BorderClosing returns the border color while a close animation plays.
func BorderClosing() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#808090")
	}
	return t.BrightBlack
}

// TitleFg returns the foreground color for window titles.
func TitleFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// ButtonFg returns the foreground color for window control buttons.
func ButtonFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Black
}

// TopbarBg returns the background color for the topbar.
func TopbarBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

// TopbarFg returns the foreground color for the topbar.
func TopbarFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

// TopbarAccent returns the accent color for the topbar route display.
func TopbarAccent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cdcd")
	}
	return t.Cyan
}

// DockBg returns the background color for the dock.
func DockBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

// DockFg returns the foreground color for the dock.
func DockFg() color.Color {
	return lipgloss.Color("#a0a0a8")
}

// DockHighlight returns the highlight color for the active dock entry.
func DockHighlight() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ff00")
	}
	return t.BrightGreen
}

// DockDimmed returns the dimmed color for minimized dock entries.
func DockDimmed() color.Color {
	return lipgloss.Color("#808090")
}

// DockAccent returns the accent color for the dock stats widget.
func DockAccent() color.Color {
	return lipgloss.Color("#a0a0b0")
}

// DockSeparator returns the separator color for the dock.
func DockSeparator() color.Color {
	return lipgloss.Color("#303040")
}

// NotificationError returns the color for error notifications.
func NotificationError() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

// NotificationWarning returns the color for warning notifications.
func NotificationWarning() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

// NotificationSuccess returns the color for success notifications.
func NotificationSuccess() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cd00")
	}
	return t.Green
}

// NotificationInfo returns the color for info notifications.
func NotificationInfo() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#0000ee")
	}
	return t.Blue
}

// NotificationBg returns the background color for notifications.
func NotificationBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Bg
}

// NotificationFg returns the foreground color for notifications.
func NotificationFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// LogError returns the color for error messages in the log viewer.
func LogError() color.Color {
	return lipgloss.Color("9")
}

// LogWarn returns the color for warning messages in the log viewer.
func LogWarn() color.Color {
	return lipgloss.Color("11")
}

// LogInfo returns the color for info messages in the log viewer.
func LogInfo() color.Color {
	return lipgloss.Color("10")
}

// HelpKeyBadge returns the color for key badges in the help overlay.
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

// HelpKeyBadgeBg returns the background color for key badges in the help overlay.
func HelpKeyBadgeBg() color.Color {
	return lipgloss.Color("0")
}

// HelpGray returns the gray color for help overlay elements.
func HelpGray() color.Color {
	return lipgloss.Color("8")
}

// HelpBorder returns the border color for the help overlay.
func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

// PageTitle returns the color for page content titles.
func PageTitle() color.Color {
	return lipgloss.Color("14")
}

// PageSubtitle returns the color for page content subtitles.
func PageSubtitle() color.Color {
	return lipgloss.Color("11")
}

// PageText returns the color for page body text.
func PageText() color.Color {
	return lipgloss.Color("7")
}

// PageHighlight returns the color for highlighted page elements.
func PageHighlight() color.Color {
	return lipgloss.Color("6")
}

// GetANSIPalette returns the 16 ANSI colors (0-15) from the current theme,
// or default xterm colors when theming is disabled.
func GetANSIPalette() [16]color.Color {
	t := Current()
	if t == nil {
		return [16]color.Color{
			lipgloss.Color("#000000"), lipgloss.Color("#cd0000"), lipgloss.Color("#00cd00"), lipgloss.Color("#cdcd00"),
			lipgloss.Color("#0000ee"), lipgloss.Color("#cd00cd"), lipgloss.Color("#00cdcd"), lipgloss.Color("#e5e5e5"),
			lipgloss.Color("#7f7f7f"), lipgloss.Color("#ff0000"), lipgloss.Color("#00ff00"), lipgloss.Color("#ffff00"),
			lipgloss.Color("#5c5cff"), lipgloss.Color("#ff00ff"), lipgloss.Color("#00ffff"), lipgloss.Color("#ffffff"),
		}
	}
	return [16]color.Color{
		t.Black,        // 0
		t.Red,          // 1
		t.Green,        // 2
		t.Yellow,       // 3
		t.Blue,         // 4
		t.Purple,       // 5
		t.Cyan,         // 6
		t.White,        // 7
		t.BrightBlack,  // 8
		t.BrightRed,    // 9
		t.BrightGreen,  // 10
		t.BrightYellow, // 11
		t.BrightBlue,   // 12
		t.BrightPurple, // 13
		t.BrightCyan,   // 14
		t.BrightWhite,  // 15
	}
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns values in range 0-65535, convert to 0-255
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)
}
