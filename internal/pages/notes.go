package pages

import (
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/webdesk/webdesk/internal/theme"
	"github.com/webdesk/webdesk/internal/wm"
)

func init() {
	Register(Page{
		Route:  "/notes",
		Title:  "Notes",
		Width:  500,
		Height: 400,
		New: func(body *wm.Surface, args ...any) (wm.Component, error) {
			return &notesPage{body: body}, nil
		},
	})
}

// notes persist for the shell's lifetime across close/reopen of the page,
// not across restarts.
var (
	notesMu    sync.Mutex
	notesLines []string
)

// AppendNote records a line shown by the /notes page.
func AppendNote(text string) {
	notesMu.Lock()
	defer notesMu.Unlock()
	notesLines = append(notesLines, time.Now().Format("15:04")+" "+text)
}

type notesPage struct {
	wm.BaseComponent
	body *wm.Surface
}

func (p *notesPage) Mount() {
	p.Refresh()
}

func (p *notesPage) Refresh() {
	titleStyle := lipgloss.NewStyle().Foreground(theme.PageTitle()).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(theme.PageText())
	grayStyle := lipgloss.NewStyle().Foreground(theme.HelpGray())

	var b strings.Builder
	b.WriteString(titleStyle.Render("Notes"))
	b.WriteString("\n\n")

	notesMu.Lock()
	lines := make([]string, len(notesLines))
	copy(lines, notesLines)
	notesMu.Unlock()

	if len(lines) == 0 {
		b.WriteString(grayStyle.Render("Session notes appear here."))
		b.WriteString("\n")
	} else {
		for _, line := range lines {
			b.WriteString(textStyle.Render(line))
			b.WriteString("\n")
		}
	}

	p.body.SetContent(b.String())
}
