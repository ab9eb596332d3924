package pages

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/webdesk/webdesk/internal/theme"
	"github.com/webdesk/webdesk/internal/wm"
)

func init() {
	Register(Page{
		Route:  "/about",
		Title:  "About",
		Width:  600,
		Height: 400,
		New: func(body *wm.Surface, args ...any) (wm.Component, error) {
			p := &aboutPage{body: body}
			if len(args) > 0 {
				if v, ok := args[0].(string); ok {
					p.version = v
				}
			}
			return p, nil
		},
	})
}

type aboutPage struct {
	wm.BaseComponent
	body    *wm.Surface
	version string
}

func (p *aboutPage) Mount() {
	titleStyle := lipgloss.NewStyle().Foreground(theme.PageTitle()).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(theme.PageText())
	hlStyle := lipgloss.NewStyle().Foreground(theme.PageHighlight())

	version := p.version
	if version == "" {
		version = "dev"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("webdesk"))
	b.WriteString(" ")
	b.WriteString(hlStyle.Render(version))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render("A desktop shell for your terminal: routed pages open as"))
	b.WriteString("\n")
	b.WriteString(textStyle.Render("floating windows you can drag, resize, stack and minimize."))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render("Press "))
	b.WriteString(hlStyle.Render("?"))
	b.WriteString(textStyle.Render(" for keyboard shortcuts."))
	b.WriteString("\n")

	p.body.SetContent(b.String())
}
