package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"golang.org/x/term"

	"github.com/webdesk/webdesk/internal/app"
	"github.com/webdesk/webdesk/internal/config"
	"github.com/webdesk/webdesk/internal/input"
	"github.com/webdesk/webdesk/internal/server"
	"github.com/webdesk/webdesk/internal/theme"
)

func runLocal() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("webdesk requires a terminal")
	}

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:       asciiOnly,
		BorderStyle:     borderStyle,
		DockbarPosition: dockbarPosition,
		HideClock:       hideClock,
		NoAnimations:    noAnimations,
		ThemeName:       themeName,
	}, userConfig)

	// Themes need at least 256 colors to look right.
	if p := colorprofile.Detect(os.Stdout, os.Environ()); p > colorprofile.ANSI256 {
		theme.Disable()
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	shell := app.NewShell(app.Options{
		Width:           width,
		Height:          height,
		Version:         version,
		KeybindRegistry: config.NewKeybindRegistry(userConfig),
	})
	shell.SetInputHandler(input.HandleInput)

	p := tea.NewProgram(
		shell,
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(app.FilterMouseMotion),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runServe(host, port, keyPath string) error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:       asciiOnly,
		BorderStyle:     borderStyle,
		DockbarPosition: dockbarPosition,
		HideClock:       hideClock,
		NoAnimations:    noAnimations,
		ThemeName:       themeName,
	}, userConfig)

	if host == "" {
		host = userConfig.Server.Host
	}
	if port == "" {
		port = userConfig.Server.Port
	}
	if keyPath == "" {
		keyPath = userConfig.Server.HostKeyPath
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Shutting down...")
		cancel()
	}()

	return server.StartSSHServer(ctx, &server.SSHServerConfig{
		Host:    host,
		Port:    port,
		KeyPath: keyPath,
		Version: version,
	})
}

func printConfigPath() error {
	// Ensure the file exists so the printed path is real.
	if _, err := config.LoadUserConfig(); err != nil {
		return err
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func editConfigFile() error {
	if _, err := config.LoadUserConfig(); err != nil {
		return err
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, candidate := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(candidate); err == nil {
				editor = candidate
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found: set $EDITOR or install vim/vi/nano/emacs")
	}

	cmd := exec.Command(editor, path) // #nosec G204 - editor is user-chosen
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func resetConfigToDefaults() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	fmt.Printf("This will overwrite %s with defaults. Continue? [y/N] ", path)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Println("Aborted.")
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config: %w", err)
	}
	// Loading with no file on disk recreates the commented default config.
	if _, err := config.LoadUserConfig(); err != nil {
		return fmt.Errorf("failed to recreate config: %w", err)
	}
	fmt.Println("Configuration reset to defaults.")
	return nil
}

func previewThemeColors(name string) error {
	if err := theme.Initialize(name); err != nil {
		return fmt.Errorf("failed to initialize themes: %w", err)
	}
	t := theme.Current()
	if t == nil {
		return fmt.Errorf("theme %q not found", name)
	}

	fmt.Printf("%s (%s)\n\n", t.DisplayName, t.ID)

	palette := theme.GetANSIPalette()
	for i, c := range palette {
		block := lipgloss.NewStyle().Background(c).Render("        ")
		fmt.Printf("%2d  %s  %s\n", i, block, theme.ColorToString(c))
	}

	fmt.Println()
	fg := lipgloss.NewStyle().Background(t.Bg).Foreground(t.Fg).Render(" The quick brown fox jumps over the lazy dog ")
	fmt.Println(fg)
	return nil
}
