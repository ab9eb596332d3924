package pages

import (
	"testing"

	"github.com/webdesk/webdesk/internal/wm"
)

func TestBuiltinPagesRegistered(t *testing.T) {
	for _, route := range []string{"/monitor", "/logs", "/about", "/notes"} {
		p, ok := Lookup(route)
		if !ok {
			t.Errorf("built-in page %q not registered", route)
			continue
		}
		if p.Title == "" {
			t.Errorf("page %q has no title", route)
		}
		if p.New == nil {
			t.Errorf("page %q has no factory", route)
		}
	}
}

func TestRegisterKeepsOrderAndOverrides(t *testing.T) {
	before := len(Routes())

	Register(Page{Route: "/test-page", Title: "First", New: nil})
	Register(Page{Route: "/test-page", Title: "Second", New: nil})

	if got := len(Routes()); got != before+1 {
		t.Errorf("re-registering a route must not add another entry: %d -> %d", before, got)
	}
	p, _ := Lookup("/test-page")
	if p.Title != "Second" {
		t.Errorf("later registration should win, got %q", p.Title)
	}
}

func TestLogsPageWithoutSource(t *testing.T) {
	p, _ := Lookup("/logs")

	body := wm.NewSurface()
	comp, err := p.New(body)
	if err != nil {
		t.Fatalf("logs factory failed: %v", err)
	}
	comp.Mount()
	if body.Content() == "" {
		t.Error("logs page should render placeholder content without a source")
	}
	comp.Destroy()
}
