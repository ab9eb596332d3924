package app

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/webdesk/webdesk/internal/config"
	"github.com/webdesk/webdesk/internal/theme"
	"github.com/webdesk/webdesk/internal/wm"
)

// GetCanvas composes the desktop: backdrop, topbar, window frames by Z,
// dock and overlays.
func (s *Shell) GetCanvas() *lipgloss.Canvas {
	layers := []*lipgloss.Layer{
		s.renderDesktop(),
		s.renderTopbar(),
	}

	for _, f := range s.Container.Frames() {
		if f.Minimized && !s.animatingFrame(f) {
			continue
		}
		if layer := s.renderFrame(f); layer != nil {
			layers = append(layers, layer)
		}
	}

	if config.DockbarPosition != "hidden" {
		layers = append(layers, s.renderDock())
	}
	layers = append(layers, s.renderNotifications()...)
	if s.ShowHelp {
		layers = append(layers, s.renderHelp())
	}

	return lipgloss.NewCanvas(layers...)
}

// View implements tea.Model.
func (s *Shell) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(s.GetCanvas().Render()))
	view.AltScreen = true
	// AllMotion for hover-free drag/resize tracking; FilterMouseMotion in
	// pkg/webdesk drops motion events outside gestures.
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

// FrameCellRect projects a frame's px geometry onto terminal cells.
// Maximized and fullscreen frames fill the area between topbar and dock.
func (s *Shell) FrameCellRect(f *wm.Frame) (x, y, width, height int) {
	if f.Fullscreen || f.Maximized {
		top := config.TopbarHeight
		bottom := s.Height
		switch config.DockbarPosition {
		case "bottom":
			bottom -= config.DockHeight
		case "top":
			top += config.DockHeight
		}
		return 0, top, s.Width, bottom - top
	}

	x = f.X / config.CellPixelWidth
	y = f.Y / config.CellPixelHeight
	width = f.Width / config.CellPixelWidth
	height = f.Height / config.CellPixelHeight
	if width < 12 {
		width = 12
	}
	if height < 3 {
		height = 3
	}
	return x, y, width, height
}

// TitleBarButton maps a column relative to the frame's left edge to the
// control rendered there on the titlebar row.
func TitleBarButton(width, relX int) string {
	switch relX {
	case width - 3:
		return "close"
	case width - 5:
		return "maximize"
	case width - 7:
		return "minimize"
	}
	return ""
}

func (s *Shell) renderFrame(f *wm.Frame) *lipgloss.Layer {
	x, y, width, height := s.FrameCellRect(f)

	borderColor := theme.BorderUnfocused()
	switch {
	case f.Closing:
		borderColor = theme.BorderClosing()
	case f.Active:
		borderColor = theme.BorderFocused()
	}

	innerW := width - 2
	innerH := height - 2
	content := s.frameContent(f, innerW, innerH)

	box := lipgloss.NewStyle().
		Align(lipgloss.Left).
		AlignVertical(lipgloss.Top).
		Border(config.GetBorder()).
		BorderTop(false).
		BorderForeground(borderColor).
		Width(innerW).
		Height(innerH)

	boxContent := s.renderTitleBar(f, width, borderColor) + "\n" + box.Render(content)

	clipped, finalX, finalY := clipWindowContent(boxContent, x, y)

	z := f.Z
	if s.animatingFrame(f) {
		z = config.ZIndexAnimating
	}
	return lipgloss.NewLayer(clipped).X(finalX).Y(finalY).Z(z).ID(f.ID)
}

func (s *Shell) frameContent(f *wm.Frame, width, height int) string {
	content := f.Body.Content()
	if win, ok := s.WM.Get(f.ID); ok {
		if r, ok := win.Component.(wm.Renderer); ok {
			content = r.Render(width, height)
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(content)
}

// renderTitleBar draws the top border row: corner, title, fill, then the
// minimize/maximize/close controls at the fixed columns TitleBarButton
// hit-tests.
func (s *Shell) renderTitleBar(f *wm.Frame, width int, borderColor color.Color) string {
	b := config.GetBorder()
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(theme.TitleFg())

	inner := width - 2
	if inner < 1 {
		return borderStyle.Render(b.TopLeft + b.TopRight)
	}

	showButtons := !f.Closing && inner >= 12

	titleAvail := inner
	if showButtons {
		// Last 7 inner columns: sep, minimize, sep, maximize, sep,
		// close, sep.
		titleAvail = inner - 7
	}

	label := " " + f.Title + " "
	runes := []rune(label)
	if len(runes) > titleAvail {
		if titleAvail >= 2 {
			runes = append(runes[:titleAvail-2], '…', ' ')
		} else {
			runes = runes[:titleAvail]
		}
		label = string(runes)
	}
	fill := titleAvail - len([]rune(label))

	btnMin, btnMax, btnClose := "_", "□", "✕"
	if config.UseASCIIOnly {
		btnMax, btnClose = "o", "x"
	}

	var sb strings.Builder
	sb.WriteString(borderStyle.Render(b.TopLeft))
	sb.WriteString(titleStyle.Render(label))
	if fill > 0 {
		sb.WriteString(borderStyle.Render(strings.Repeat(b.Top, fill)))
	}
	if showButtons {
		sb.WriteString(borderStyle.Render(b.Top))
		sb.WriteString(borderStyle.Render(btnMin))
		sb.WriteString(borderStyle.Render(b.Top))
		sb.WriteString(borderStyle.Render(btnMax))
		sb.WriteString(borderStyle.Render(b.Top))
		sb.WriteString(borderStyle.Render(btnClose))
		sb.WriteString(borderStyle.Render(b.Top))
	}
	sb.WriteString(borderStyle.Render(b.TopRight))
	return sb.String()
}

// clipWindowContent trims content hanging off the top or left viewport
// edge so the layer position stays non-negative.
func clipWindowContent(content string, x, y int) (string, int, int) {
	if x >= 0 && y >= 0 {
		return content, x, y
	}

	lines := strings.Split(content, "\n")
	if y < 0 {
		if -y >= len(lines) {
			return "", 0, 0
		}
		lines = lines[-y:]
		y = 0
	}
	if x < 0 {
		for i, line := range lines {
			lines[i] = ansi.Cut(line, -x, ansi.StringWidth(line))
		}
		x = 0
	}
	return strings.Join(lines, "\n"), x, y
}

func (s *Shell) renderDesktop() *lipgloss.Layer {
	style := lipgloss.NewStyle().
		Width(s.Width).
		Height(s.Height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Foreground(theme.DesktopFg())

	var content string
	if !s.Store.GetBool(wm.StoreKeyHasVisibleWindow) {
		// Desktop widgets only show when no window is visible.
		var sb strings.Builder
		sb.WriteString("webdesk\n\n")
		if !config.HideClock {
			sb.WriteString(time.Now().Format("Mon 2 Jan 15:04"))
			sb.WriteString("\n\n")
		}
		sb.WriteString("press 1-4 to open a page, ? for help")
		content = sb.String()
	}

	return lipgloss.NewLayer(style.Render(content)).
		X(0).Y(0).Z(config.ZIndexDesktop).ID("desktop")
}

func (s *Shell) renderTopbar() *lipgloss.Layer {
	barStyle := lipgloss.NewStyle().Background(theme.TopbarBg()).Foreground(theme.TopbarFg())
	accent := lipgloss.NewStyle().Background(theme.TopbarBg()).Foreground(theme.TopbarAccent())

	left := barStyle.Render(" webdesk ") + accent.Render(s.Router.Current())

	var rightParts []string
	if s.IsSSHMode && s.SSHSession != nil {
		rightParts = append(rightParts, s.SSHSession.User()+"@webdesk")
	}
	// The clock rides on the visible-window hint the manager publishes.
	if !config.HideClock && s.Store.GetBool(wm.StoreKeyHasVisibleWindow) {
		rightParts = append(rightParts, time.Now().Format("15:04"))
	}
	right := barStyle.Render(" " + strings.Join(rightParts, "  ") + " ")

	pad := s.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 0 {
		pad = 0
	}
	row := left + barStyle.Render(strings.Repeat(" ", pad)) + right

	return lipgloss.NewLayer(row).X(0).Y(0).Z(config.ZIndexTopbar).ID("topbar")
}

func (s *Shell) renderNotifications() []*lipgloss.Layer {
	if len(s.Notifications) == 0 {
		return nil
	}

	layers := make([]*lipgloss.Layer, 0, len(s.Notifications))
	y := config.TopbarHeight + 1
	for i, n := range s.Notifications {
		var accent color.Color
		switch n.Level {
		case LogLevelError:
			accent = theme.NotificationError()
		case LogLevelWarn:
			accent = theme.NotificationWarning()
		default:
			accent = theme.NotificationInfo()
		}

		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Background(theme.NotificationBg()).
			Foreground(theme.NotificationFg()).
			Padding(0, 1).
			Render(n.Message)

		x := s.Width - lipgloss.Width(box) - 2
		if x < 0 {
			x = 0
		}
		layers = append(layers, lipgloss.NewLayer(box).
			X(x).Y(y).Z(config.ZIndexNotification).ID(fmt.Sprintf("notification-%d", i)))
		y += lipgloss.Height(box)
	}
	return layers
}

func (s *Shell) renderHelp() *lipgloss.Layer {
	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge()).Background(theme.HelpKeyBadgeBg()).Padding(0, 1)
	descStyle := lipgloss.NewStyle().Foreground(theme.PageText())
	titleStyle := lipgloss.NewStyle().Foreground(theme.PageTitle()).Bold(true)
	grayStyle := lipgloss.NewStyle().Foreground(theme.HelpGray())

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	sb.WriteString("\n")
	for _, section := range config.GetKeybindings(s.KeybindRegistry) {
		sb.WriteString("\n")
		sb.WriteString(grayStyle.Render(section.Title))
		sb.WriteString("\n")
		for _, binding := range section.Bindings {
			sb.WriteString("  ")
			sb.WriteString(keyStyle.Render(fmt.Sprintf("%-9s", binding.Key)))
			sb.WriteString(" ")
			sb.WriteString(descStyle.Render(binding.Description))
			sb.WriteString("\n")
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Render(sb.String())

	x := (s.Width - lipgloss.Width(box)) / 2
	y := (s.Height - lipgloss.Height(box)) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return lipgloss.NewLayer(box).X(x).Y(y).Z(config.ZIndexNotification).ID("help")
}
