// Package webdesk provides a reusable terminal desktop shell that can be
// embedded in other Bubble Tea applications or used as a standalone TUI.
//
// webdesk is a window manager with draggable, resizable windows, a dock
// and a topbar, plus built-in pages for system monitoring, logs and notes.
//
// # Basic Usage
//
// Create a new webdesk instance with default options:
//
//	model := webdesk.New()
//	p := tea.NewProgram(model, webdesk.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
// Use options to customize webdesk behavior:
//
//	model := webdesk.New(
//		webdesk.WithTheme("dracula"),
//		webdesk.WithAnimations(false),
//		webdesk.WithDockbarPosition("top"),
//	)
package webdesk

import (
	tea "charm.land/bubbletea/v2"

	"github.com/webdesk/webdesk/internal/app"
	"github.com/webdesk/webdesk/internal/config"
	"github.com/webdesk/webdesk/internal/input"
	"github.com/webdesk/webdesk/internal/pages"
	"github.com/webdesk/webdesk/internal/theme"
	"github.com/webdesk/webdesk/internal/wm"
)

// Model is the main webdesk model that implements tea.Model.
// It wraps the internal Shell struct and provides a clean public API.
type Model = app.Shell

// Page describes an application window that can be opened by route.
// Register custom pages before creating the model.
type Page = pages.Page

// Component is mounted into a window's body surface and torn down when
// the window closes.
type Component = wm.Component

// RegisterPage adds a custom page to the desktop. Re-registering a route
// replaces its page.
func RegisterPage(p Page) {
	pages.Register(p)
}

// Options configures a webdesk instance.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord", "tokyonight").
	// Leave empty to use standard terminal colors.
	Theme string

	// Animations enables/disables window open/close animations.
	Animations bool

	// ASCIIOnly uses ASCII characters for borders and window buttons.
	ASCIIOnly bool

	// BorderStyle sets the window border style.
	// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii"
	BorderStyle string

	// DockbarPosition sets where the dockbar appears.
	// Valid values: "bottom", "top", "hidden"
	DockbarPosition string

	// HideClock hides the topbar clock.
	HideClock bool

	// Width is the initial width in cells (set automatically if 0).
	Width int

	// Height is the initial height in cells (set automatically if 0).
	Height int

	// SSHMode indicates if running over SSH.
	SSHMode bool

	// Version string shown on the about page.
	Version string

	// UserConfig is a custom user configuration. If nil, the user's config
	// file is loaded, falling back to defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring webdesk.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithAnimations enables or disables window animations.
func WithAnimations(enabled bool) Option {
	return func(o *Options) {
		o.Animations = enabled
	}
}

// WithASCIIOnly enables ASCII-only rendering.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithBorderStyle sets the window border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithDockbarPosition sets the dockbar position.
func WithDockbarPosition(position string) Option {
	return func(o *Options) {
		o.DockbarPosition = position
	}
}

// WithHideClock hides the topbar clock.
func WithHideClock(hide bool) Option {
	return func(o *Options) {
		o.HideClock = hide
	}
}

// WithSize sets the initial terminal size in cells.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithSSHMode enables SSH mode.
func WithSSHMode(enabled bool) Option {
	return func(o *Options) {
		o.SSHMode = enabled
	}
}

// WithVersion sets the version string shown on the about page.
func WithVersion(version string) Option {
	return func(o *Options) {
		o.Version = version
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Animations: true,
		Version:    "dev",
	}
}

// New creates a new webdesk model with the given options.
// This is the main entry point for using webdesk as a library.
func New(opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

func newModel(options Options) *Model {
	if options.ASCIIOnly {
		config.UseASCIIOnly = true
	}
	if options.BorderStyle != "" {
		config.BorderStyle = options.BorderStyle
	}
	if options.DockbarPosition != "" {
		config.DockbarPosition = options.DockbarPosition
	}
	if options.HideClock {
		config.HideClock = true
	}
	if !options.Animations {
		config.AnimationsEnabled = false
	}

	if options.Theme != "" {
		_ = theme.Initialize(options.Theme)
	}

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	shell := app.NewShell(app.Options{
		Width:           options.Width,
		Height:          options.Height,
		IsSSHMode:       options.SSHMode,
		Version:         options.Version,
		KeybindRegistry: config.NewKeybindRegistry(userConfig),
	})
	shell.SetInputHandler(input.HandleInput)
	return shell
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// webdesk:
//
//	model := webdesk.New()
//	p := tea.NewProgram(model, webdesk.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// events outside drag/resize gestures to reduce CPU usage:
//
//	p := tea.NewProgram(model, tea.WithFilter(webdesk.FilterMouseMotion))
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	return app.FilterMouseMotion(model, msg)
}

// Config re-exports the config package for customization without importing
// internal packages.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
