package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Server      ServerConfig      `toml:"server"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	BorderStyle       string `toml:"border_style"`       // Border style: rounded, normal, thick, double, hidden, block, ascii, outerhalf, innerhalf
	DockbarPosition   string `toml:"dockbar_position"`   // Dockbar position: bottom, top, hidden
	AnimationsEnabled *bool  `toml:"animations_enabled"` // Enable window open/close animations (default: true)
	ASCIIOnly         *bool  `toml:"ascii_only"`         // Replace unicode glyphs with ASCII (default: false)
	HideClock         bool   `toml:"hide_clock"`         // Hide the topbar clock (default: false)
	Theme             string `toml:"theme"`              // Color theme name (e.g., dracula, nord, my-custom-theme)
}

// ServerConfig holds settings for the SSH serve subcommand
type ServerConfig struct {
	Host        string `toml:"host"`          // Bind address (default: 0.0.0.0)
	Port        string `toml:"port"`          // Port (default: 2222)
	HostKeyPath string `toml:"host_key_path"` // SSH host key path (default: ~/.config/webdesk/id_ed25519)
}

// KeybindingsConfig holds all keybinding configurations
type KeybindingsConfig struct {
	Windows map[string][]string `toml:"windows"`
	Pages   map[string][]string `toml:"pages"`
	System  map[string][]string `toml:"system"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle:     "rounded",
			DockbarPosition: "bottom",
		},
		Server: ServerConfig{
			Host: DefaultSSHHost,
			Port: DefaultSSHPort,
		},
		Keybindings: KeybindingsConfig{
			Windows: map[string][]string{
				"close_window":    {"w", "x"},
				"minimize_window": {"m"},
				"maximize_window": {"f"},
				"restore_all":     {"M"},
				"next_window":     {"tab"},
				"prev_window":     {"shift+tab"},
			},
			Pages: map[string][]string{
				"open_monitor": {"1"},
				"open_logs":    {"2"},
				"open_notes":   {"3"},
				"open_about":   {"4"},
			},
			System: map[string][]string{
				"toggle_help": {"?"},
				"quit":        {"q", "ctrl+c"},
			},
		},
	}
}

// LoadUserConfig loads the user configuration from the XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile("webdesk/config.toml")
	if err != nil {
		// Config doesn't exist, create default
		return createDefaultConfig()
	}

	// #nosec G304 - configPath is from XDG search, reading user config is intentional
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingServer(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	if errs := validateConfig(&cfg); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "Config error: %s\n", e)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(errs))
	}

	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile("webdesk/config.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	// Build config file with header comments and marshaled data
	var sb strings.Builder
	sb.WriteString("# webdesk Configuration File\n")
	sb.WriteString("# This file allows you to customize appearance, keybindings and the SSH server\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# border_style: Window border style\n")
	sb.WriteString("#   Options: rounded, normal, thick, double, hidden, block, ascii,\n")
	sb.WriteString("#            outerhalf, innerhalf\n")
	sb.WriteString("#   Default: rounded\n")
	sb.WriteString("#\n")
	sb.WriteString("# dockbar_position: Position of the dockbar\n")
	sb.WriteString("#   Options: bottom, top, hidden\n")
	sb.WriteString("#   Default: bottom\n")
	sb.WriteString("#\n")
	sb.WriteString("# animations_enabled: Window open/close animations\n")
	sb.WriteString("#   Options: true, false\n")
	sb.WriteString("#   Default: true\n")
	sb.WriteString("#\n")
	sb.WriteString("# theme: Color theme name (e.g., dracula, nord, my-custom-theme)\n")
	sb.WriteString("#   Leave empty to use standard terminal colors.\n")
	sb.WriteString("#   CLI flag --theme overrides this. Custom themes: ~/.config/webdesk/themes/*.json\n")
	sb.WriteString("#   Default: (empty - no theme)\n")
	sb.WriteString("# ============================================================================\n\n")

	if _, err := sb.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write config data: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfg, nil
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}

	if cfg.Appearance.DockbarPosition == "" {
		cfg.Appearance.DockbarPosition = defaultCfg.Appearance.DockbarPosition
	}

	// AnimationsEnabled defaults to true (nil means use default)
	if cfg.Appearance.AnimationsEnabled != nil {
		AnimationsEnabled = *cfg.Appearance.AnimationsEnabled
	}

	if cfg.Appearance.ASCIIOnly != nil {
		UseASCIIOnly = *cfg.Appearance.ASCIIOnly
	}

	// HideClock defaults to false
	// Only apply from config if not already set via flag (run.go applies flags first)
	if !HideClock {
		HideClock = cfg.Appearance.HideClock
	}
}

// fillMissingServer fills in any missing server settings with defaults
func fillMissingServer(cfg, defaultCfg *UserConfig) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultCfg.Server.Host
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultCfg.Server.Port
	}
	// HostKeyPath defaults to empty (resolved lazily against XDG), so we don't override it
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.Windows == nil {
		cfg.Keybindings.Windows = make(map[string][]string)
	}
	if cfg.Keybindings.Pages == nil {
		cfg.Keybindings.Pages = make(map[string][]string)
	}
	if cfg.Keybindings.System == nil {
		cfg.Keybindings.System = make(map[string][]string)
	}

	fillMapDefaults(cfg.Keybindings.Windows, defaultCfg.Keybindings.Windows)
	fillMapDefaults(cfg.Keybindings.Pages, defaultCfg.Keybindings.Pages)
	fillMapDefaults(cfg.Keybindings.System, defaultCfg.Keybindings.System)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// validateConfig checks enum-valued settings and returns a list of problems
func validateConfig(cfg *UserConfig) []string {
	var errs []string

	switch cfg.Appearance.BorderStyle {
	case "rounded", "normal", "thick", "double", "hidden", "block", "ascii", "outerhalf", "innerhalf":
	default:
		errs = append(errs, fmt.Sprintf("[appearance] border_style: unknown style %q", cfg.Appearance.BorderStyle))
	}

	switch cfg.Appearance.DockbarPosition {
	case "bottom", "top", "hidden":
	default:
		errs = append(errs, fmt.Sprintf("[appearance] dockbar_position: unknown position %q", cfg.Appearance.DockbarPosition))
	}

	return errs
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile("webdesk/config.toml")
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile("webdesk/config.toml")
	}
	return path, nil
}
