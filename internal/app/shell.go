// Package app implements the webdesk shell: the bubbletea model that owns
// the window manager, router, store, dock and topbar, and projects window
// frames from logical px onto terminal cells.
package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/ssh"

	"github.com/webdesk/webdesk/internal/config"
	"github.com/webdesk/webdesk/internal/pages"
	"github.com/webdesk/webdesk/internal/router"
	"github.com/webdesk/webdesk/internal/store"
	"github.com/webdesk/webdesk/internal/wm"
)

// LogLevel classifies shell log messages.
type LogLevel int

// Log levels.
const (
	LogLevelInfo LogLevel = iota
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// LogMessage is one entry in the shell's in-model log ring.
type LogMessage struct {
	Time    time.Time
	Level   LogLevel
	Message string
}

// Notification is a transient toast in the corner of the desktop.
type Notification struct {
	Message   string
	Level     LogLevel
	Animation *Animation
}

// InputHandler processes input messages for the shell. The indirection
// lets internal/input stay a separate package without an import cycle.
type InputHandler func(msg tea.Msg, s *Shell) (tea.Model, tea.Cmd)

// Options configure a new Shell.
type Options struct {
	Width           int
	Height          int
	SSHSession      ssh.Session
	IsSSHMode       bool
	Version         string
	KeybindRegistry *config.KeybindRegistry
}

// Shell is the root bubbletea model.
type Shell struct {
	WM        *wm.Manager
	Router    *router.Router
	Store     *store.Store
	Container *wm.Container

	// Terminal size in cells.
	Width  int
	Height int

	LogMessages   []LogMessage
	Notifications []Notification
	Animations    []*Animation

	KeybindRegistry *config.KeybindRegistry
	ShowHelp        bool

	SSHSession ssh.Session
	IsSSHMode  bool
	Version    string

	// Dock stats widget, sampled at StatsUpdateInterval.
	CPUPercent      float64
	RAMPercent      float64
	lastStatsUpdate time.Time

	idleFrames   int
	inputHandler InputHandler
}

// NewShell builds the shell and its window manager for the given terminal
// size.
func NewShell(opts Options) *Shell {
	s := &Shell{
		Width:           opts.Width,
		Height:          opts.Height,
		KeybindRegistry: opts.KeybindRegistry,
		SSHSession:      opts.SSHSession,
		IsSSHMode:       opts.IsSSHMode,
		Version:         opts.Version,
	}

	s.Router = router.New(config.DefaultRoute)
	s.Store = store.New()
	s.Container = wm.NewContainer()
	s.WM = wm.New(wm.Options{
		Router:       s.Router,
		Store:        s.Store,
		CloseTimeout: config.GetCloseFallbackTimeout(),
	})
	s.WM.Init(s.Container, s.viewportPx())

	pages.SetLogSource(s.FormattedLogs)

	// Navigating to a page route opens (or focuses) its window. The
	// default route is the bare desktop and opens nothing, which also
	// terminates the focus -> replace -> listener chain.
	s.Router.OnChange(func(route string) {
		if route == config.DefaultRoute {
			return
		}
		if p, ok := pages.Lookup(route); ok {
			s.OpenPage(p)
		}
	})

	return s
}

// SetInputHandler wires the input package's dispatcher into the shell.
func (s *Shell) SetInputHandler(h InputHandler) {
	s.inputHandler = h
}

func (s *Shell) viewportPx() wm.Size {
	return wm.Size{
		Width:  s.Width * config.CellPixelWidth,
		Height: s.Height * config.CellPixelHeight,
	}
}

// OpenPage opens a page window keyed by its route. Factory errors surface
// as a notification and a log entry; the manager itself stays silent.
func (s *Shell) OpenPage(p pages.Page) {
	_, err := s.WM.Open(p.New, s.pageArgs(p), wm.OpenOptions{
		ID:     p.Route,
		Title:  p.Title,
		URL:    p.Route,
		Width:  p.Width,
		Height: p.Height,
	})
	if err != nil {
		s.LogError(fmt.Sprintf("open %s: %v", p.Route, err))
		s.ShowNotification("Failed to open "+p.Title, LogLevelError)
	}
}

// OpenRoute opens the page registered for a route, if any.
func (s *Shell) OpenRoute(route string) {
	if p, ok := pages.Lookup(route); ok {
		s.OpenPage(p)
	}
}

func (s *Shell) pageArgs(p pages.Page) []any {
	if p.Route == "/about" {
		return []any{s.Version}
	}
	return nil
}

// CloseWindow closes a window and schedules its exit animation. With
// animations disabled the frame detaches immediately. When the desktop
// empties, the route falls back to the default desktop.
func (s *Shell) CloseWindow(id string) {
	f := s.WM.Close(id)
	if f == nil {
		return
	}

	if config.AnimationsEnabled && !f.Detached {
		s.Animations = append(s.Animations, NewAnimation(f, config.GetAnimationDuration()))
	} else {
		s.WM.FinishClose(id)
	}

	s.syncDefaultRoute()
}

// CloseAllWindows tears the whole desktop down, e.g. on logout.
func (s *Shell) CloseAllWindows() {
	for _, id := range s.WM.OpenIDs() {
		s.CloseWindow(id)
	}
}

func (s *Shell) syncDefaultRoute() {
	if s.WM.Empty() && s.Router.Current() != config.DefaultRoute {
		s.Router.Replace(config.DefaultRoute)
	}
}

// Log appends to the ring, dropping the oldest entry past MaxLogMessages.
func (s *Shell) Log(level LogLevel, message string) {
	s.LogMessages = append(s.LogMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
	})
	if len(s.LogMessages) > config.MaxLogMessages {
		s.LogMessages = s.LogMessages[len(s.LogMessages)-config.MaxLogMessages:]
	}
}

// LogInfo logs at info level.
func (s *Shell) LogInfo(message string) { s.Log(LogLevelInfo, message) }

// LogWarn logs at warn level.
func (s *Shell) LogWarn(message string) { s.Log(LogLevelWarn, message) }

// LogError logs at error level.
func (s *Shell) LogError(message string) { s.Log(LogLevelError, message) }

// FormattedLogs renders the ring for the /logs page, oldest first.
func (s *Shell) FormattedLogs() []string {
	out := make([]string, 0, len(s.LogMessages))
	for _, m := range s.LogMessages {
		out = append(out, fmt.Sprintf("%s %s %s", m.Level, m.Time.Format("15:04:05"), m.Message))
	}
	return out
}

// ShowNotification pushes a toast that fades after NotificationDuration.
func (s *Shell) ShowNotification(message string, level LogLevel) {
	s.Notifications = append(s.Notifications, Notification{
		Message:   message,
		Level:     level,
		Animation: NewAnimation(nil, config.NotificationDuration),
	})
	if len(s.Notifications) > config.MaxNotifications {
		s.Notifications = s.Notifications[len(s.Notifications)-config.MaxNotifications:]
	}
}

func (s *Shell) cleanupNotifications(now time.Time) bool {
	kept := s.Notifications[:0]
	changed := false
	for _, n := range s.Notifications {
		if n.Animation.Done(now) {
			changed = true
			continue
		}
		kept = append(kept, n)
	}
	s.Notifications = kept
	return changed
}
