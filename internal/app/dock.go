package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/webdesk/webdesk/internal/config"
	"github.com/webdesk/webdesk/internal/theme"
	"github.com/webdesk/webdesk/internal/wm"
)

// DockItem is one window entry in the dock, with the cell columns it
// occupies for click hit-testing.
type DockItem struct {
	ID        string
	Title     string
	StartX    int
	EndX      int
	Active    bool
	Minimized bool
}

// DockRow returns the terminal row the dock occupies.
func (s *Shell) DockRow() int {
	if config.DockbarPosition == "top" {
		return config.TopbarHeight
	}
	return s.Height - config.DockHeight
}

// CalculateDockLayout lists open windows in insertion order with their
// dock column spans. Minimized windows stay listed.
func (s *Shell) CalculateDockLayout() []DockItem {
	ids := s.Store.GetStrings(wm.StoreKeyOpenWindows)
	items := make([]DockItem, 0, len(ids))

	active := s.WM.ActiveID()
	x := 1
	for _, id := range ids {
		w, ok := s.WM.Get(id)
		if !ok {
			continue
		}
		label := " " + w.Frame.Title + " "
		width := lipgloss.Width(label)
		items = append(items, DockItem{
			ID:        id,
			Title:     w.Frame.Title,
			StartX:    x,
			EndX:      x + width - 1,
			Active:    id == active,
			Minimized: w.Frame.Minimized,
		})
		x += width + 1
	}
	return items
}

func (s *Shell) renderDock() *lipgloss.Layer {
	baseStyle := lipgloss.NewStyle().Background(theme.DockBg())
	sepStyle := baseStyle.Foreground(theme.DockSeparator())

	var sb strings.Builder
	sb.WriteString(baseStyle.Render(" "))
	for _, item := range s.CalculateDockLayout() {
		style := baseStyle.Foreground(theme.DockFg())
		switch {
		case item.Active:
			style = baseStyle.Foreground(theme.DockHighlight()).Bold(true)
		case item.Minimized:
			style = baseStyle.Foreground(theme.DockDimmed())
		}
		sb.WriteString(style.Render(" " + item.Title + " "))
		sb.WriteString(sepStyle.Render(" "))
	}
	left := sb.String()

	stats := fmt.Sprintf("CPU %3.0f%%  MEM %3.0f%% ", s.CPUPercent, s.RAMPercent)
	right := baseStyle.Foreground(theme.DockAccent()).Render(stats)

	pad := s.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 0 {
		pad = 0
	}
	row := left + baseStyle.Render(strings.Repeat(" ", pad)) + right

	return lipgloss.NewLayer(row).X(0).Y(s.DockRow()).Z(config.ZIndexDock).ID("dock")
}
