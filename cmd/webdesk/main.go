// Package main implements webdesk, a desktop shell for the terminal.
// webdesk serves a window manager with draggable, resizable windows over
// a local TTY or SSH, with built-in pages for system monitoring, logs and
// notes.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/spf13/cobra"

	"github.com/webdesk/webdesk/internal/config"
	"github.com/webdesk/webdesk/internal/theme"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	asciiOnly       bool
	themeName       string
	listThemes      bool
	previewTheme    string
	borderStyle     string
	dockbarPosition string
	noAnimations    bool
	hideClock       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "webdesk",
		Short: "A desktop shell for the terminal",
		Long: `webdesk - a desktop shell for the terminal

A window manager with draggable, resizable windows, a dock and a topbar,
plus built-in pages for system monitoring, logs and notes. Runs on a
local TTY or as an SSH server.`,
		Example: `  # Run webdesk
  webdesk

  # Run with a specific theme
  webdesk --theme dracula

  # List all available themes
  webdesk --list-themes

  # Preview a theme's colors
  webdesk --preview-theme dracula

  # Serve webdesk over SSH
  webdesk serve --port 2222

  # Show the configuration file path
  webdesk config path`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if previewTheme != "" {
				return previewThemeColors(previewTheme)
			}

			if listThemes {
				if err := theme.Initialize("default"); err != nil {
					return fmt.Errorf("failed to initialize themes: %w", err)
				}
				for _, t := range tint.TintIDs() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters for borders and window buttons")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors without theming")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&previewTheme, "preview-theme", "", "Preview a theme's 16 ANSI colors")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, hidden, block, ascii, outer-half-block, inner-half-block (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&dockbarPosition, "dockbar-position", "", "Dockbar position: bottom, top, hidden (default: from config or bottom)")
	rootCmd.PersistentFlags().BoolVar(&noAnimations, "no-animations", false, "Disable window open/close animations")
	rootCmd.PersistentFlags().BoolVar(&hideClock, "hide-clock", false, "Hide the topbar clock")

	var serveHost, servePort, serveKeyPath string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve webdesk over SSH",
		Long: `Serve webdesk over SSH

Every connection gets its own desktop with its own window manager state.
A host key is generated automatically if none is specified.`,
		Example: `  # Start the SSH server on the default port
  webdesk serve

  # Start on a custom port
  webdesk serve --port 2345

  # Specify a host key
  webdesk serve --key-path /path/to/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(serveHost, servePort, serveKeyPath)
		},
	}

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Address to listen on (default: from config or "+config.DefaultSSHHost+")")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default: from config or "+config.DefaultSSHPort+")")
	serveCmd.Flags().StringVar(&serveKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage webdesk configuration",
		Long:  `Manage the webdesk configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the webdesk configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the webdesk configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	rootCmd.AddCommand(serveCmd, configCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}
