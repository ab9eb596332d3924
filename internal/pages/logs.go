package pages

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/webdesk/webdesk/internal/theme"
	"github.com/webdesk/webdesk/internal/wm"
)

func init() {
	Register(Page{
		Route: "/logs",
		Title: "Logs",
		New: func(body *wm.Surface, args ...any) (wm.Component, error) {
			return &logsPage{body: body}, nil
		},
	})
}

var logSource func() []string

// SetLogSource wires the shell's log ring into the /logs page. The
// returned lines are already level-prefixed ("ERROR ...", "WARN ...").
func SetLogSource(fn func() []string) {
	logSource = fn
}

type logsPage struct {
	wm.BaseComponent
	body *wm.Surface
}

func (p *logsPage) Mount() {
	p.Refresh()
}

func (p *logsPage) Refresh() {
	titleStyle := lipgloss.NewStyle().Foreground(theme.PageTitle()).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Shell Log"))
	b.WriteString("\n\n")

	if logSource == nil {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.HelpGray()).Render("no log source attached"))
		p.body.SetContent(b.String())
		return
	}

	lines := logSource()
	if len(lines) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.HelpGray()).Render("nothing logged yet"))
		p.body.SetContent(b.String())
		return
	}

	errStyle := lipgloss.NewStyle().Foreground(theme.LogError())
	warnStyle := lipgloss.NewStyle().Foreground(theme.LogWarn())
	infoStyle := lipgloss.NewStyle().Foreground(theme.LogInfo())

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "ERROR"):
			b.WriteString(errStyle.Render(line))
		case strings.HasPrefix(line, "WARN"):
			b.WriteString(warnStyle.Render(line))
		default:
			b.WriteString(infoStyle.Render(line))
		}
		b.WriteString("\n")
	}

	p.body.SetContent(b.String())
}
