// Package server runs webdesk as an SSH app: every connection gets its own
// shell with its own window manager state.
package server

import (
	"context"
	"errors"
	"log"
	"net"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"

	"github.com/webdesk/webdesk/internal/app"
	"github.com/webdesk/webdesk/internal/config"
	"github.com/webdesk/webdesk/internal/input"
)

const shutdownTimeout = 30 * time.Second

// SSHServerConfig configures the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	Version string

	keybinds *config.KeybindRegistry
}

func (c *SSHServerConfig) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	shell := app.NewShell(app.Options{
		Width:           pty.Window.Width,
		Height:          pty.Window.Height,
		SSHSession:      sess,
		IsSSHMode:       true,
		Version:         c.Version,
		KeybindRegistry: c.keybinds,
	})
	shell.SetInputHandler(input.HandleInput)

	return shell, []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(app.FilterMouseMotion),
	}
}

// StartSSHServer serves webdesk shells over SSH until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}
	cfg.keybinds = config.NewKeybindRegistry(userConfig)

	keyPath := cfg.KeyPath
	if keyPath == "" {
		keyPath, err = xdg.DataFile("webdesk/ssh_host_ed25519")
		if err != nil {
			return err
		}
	}

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(cfg.teaHandler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return err
	}

	log.Printf("Listening on %s:%s", cfg.Host, cfg.Port)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Stopping SSH server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
