package config

import (
	"log"

	"github.com/webdesk/webdesk/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of unicode glyphs
	ASCIIOnly bool

	// BorderStyle overrides the window border style
	BorderStyle string

	// DockbarPosition overrides the dockbar position
	DockbarPosition string

	// HideClock overrides hiding the topbar clock
	HideClock bool

	// NoAnimations disables window open/close animations
	NoAnimations bool

	// ThemeName is the theme to load
	ThemeName string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	// ASCII Only - OR of CLI flag and user config
	if overrides.ASCIIOnly {
		UseASCIIOnly = true
	} else if userConfig != nil && userConfig.Appearance.ASCIIOnly != nil {
		UseASCIIOnly = *userConfig.Appearance.ASCIIOnly
	}

	// Border Style - CLI flag takes precedence, otherwise use user config
	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	// Dockbar Position - CLI flag takes precedence, otherwise use user config
	if overrides.DockbarPosition != "" {
		DockbarPosition = overrides.DockbarPosition
	} else if userConfig != nil && userConfig.Appearance.DockbarPosition != "" {
		DockbarPosition = userConfig.Appearance.DockbarPosition
	}

	// Hide Clock - OR of CLI flag and user config
	if userConfig != nil {
		HideClock = overrides.HideClock || userConfig.Appearance.HideClock
	} else {
		HideClock = overrides.HideClock
	}

	// Animations - disabled by flag
	if overrides.NoAnimations {
		AnimationsEnabled = false
	} else if userConfig != nil && userConfig.Appearance.AnimationsEnabled != nil {
		AnimationsEnabled = *userConfig.Appearance.AnimationsEnabled
	}

	// Theme - CLI flag takes precedence, otherwise use user config
	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil && userConfig.Appearance.Theme != "" {
		themeName = userConfig.Appearance.Theme
	}
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Printf("Warning: Failed to load theme '%s': %v", themeName, err)
		}
	}
}
