package router

import "testing"

func TestCurrent(t *testing.T) {
	r := New("/desktop")
	if r.Current() != "/desktop" {
		t.Errorf("expected /desktop, got %q", r.Current())
	}
}

func TestReplaceDoesNotGrowHistory(t *testing.T) {
	r := New("/desktop")
	r.Replace("/blog/list")
	r.Replace("/blog/edit")

	if r.Current() != "/blog/edit" {
		t.Errorf("expected /blog/edit, got %q", r.Current())
	}
	// Back from a replaced entry lands on the initial state boundary,
	// not on the intermediate replaced routes.
	if got := r.Back(); got != "/blog/edit" {
		t.Errorf("Back should not pop the only entry, got %q", got)
	}
}

func TestPushBack(t *testing.T) {
	r := New("/desktop")
	r.Push("/monitor")
	r.Push("/logs")

	if r.Current() != "/logs" {
		t.Errorf("expected /logs, got %q", r.Current())
	}
	if got := r.Back(); got != "/monitor" {
		t.Errorf("expected /monitor, got %q", got)
	}
	if got := r.Back(); got != "/desktop" {
		t.Errorf("expected /desktop, got %q", got)
	}
	if got := r.Back(); got != "/desktop" {
		t.Errorf("initial entry must never pop, got %q", got)
	}
}

func TestListenersFireOnChangeOnly(t *testing.T) {
	r := New("/desktop")

	var calls []string
	r.OnChange(func(route string) { calls = append(calls, route) })

	r.Replace("/desktop") // same route, no notification
	if len(calls) != 0 {
		t.Fatalf("replace with identical route should not notify, got %v", calls)
	}

	r.Replace("/monitor")
	r.Push("/logs")
	if len(calls) != 2 || calls[0] != "/monitor" || calls[1] != "/logs" {
		t.Errorf("expected [/monitor /logs], got %v", calls)
	}
}

func TestListenerCanNavigate(t *testing.T) {
	r := New("/desktop")

	// A listener that re-replaces with the same route must terminate
	// (Replace with an unchanged route does not re-notify).
	r.OnChange(func(route string) {
		r.Replace(route)
	})

	r.Replace("/monitor")
	if r.Current() != "/monitor" {
		t.Errorf("expected /monitor, got %q", r.Current())
	}
}
