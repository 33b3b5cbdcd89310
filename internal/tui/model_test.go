package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/archdocs/internal/host"
	"github.com/ziadkadry99/archdocs/internal/ui"
)

func newTestHost(t *testing.T) *host.Host {
	t.Helper()
	reg := ui.NewRegistry()
	pages := []*ui.Page{
		{
			Ref:   ui.PageRef{ID: "loop-detection"},
			Title: "Loop Detection",
			Compose: func() []ui.Node {
				tabs, err := ui.NewTabGroup(
					[]ui.Tab{{ID: "calls", Label: "Tool calls"}, {ID: "content", Label: "Content"}},
					map[string]ui.PanelFunc{
						"calls":   func() []ui.Node { return []ui.Node{ui.Prose{Markdown: "hash each call"}} },
						"content": func() []ui.Node { return []ui.Node{ui.Prose{Markdown: "chunk the stream"}} },
					},
				)
				if err != nil {
					t.Fatal(err)
				}
				return []ui.Node{
					ui.NewDisclosure("Overview", "", 0, true,
						ui.Prose{Markdown: "visible text"},
						ui.NewDisclosure("Details", "", 1, false, ui.Prose{Markdown: "collapsed text"}),
					),
					ui.NewDisclosure("Internals", "", 0, true, tabs),
				}
			},
			Related: []ui.PageRef{{ID: "tool-scheduler", Label: "Tool Scheduler"}, {ID: "ghost"}},
		},
		{
			Ref:   ui.PageRef{ID: "tool-scheduler"},
			Title: "Tool Scheduler",
			Compose: func() []ui.Node {
				return []ui.Node{ui.Prose{Markdown: "scheduler body"}}
			},
		},
	}
	for _, p := range pages {
		if err := reg.Register(p); err != nil {
			t.Fatal(err)
		}
	}
	h := host.New(reg, "loop-detection")
	if err := h.NavigateHome(); err != nil {
		t.Fatal(err)
	}
	return h
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestInitialView(t *testing.T) {
	m := New(newTestHost(t), nil)
	view := m.View()

	for _, want := range []string{"Loop Detection", "▾ Overview", "visible text", "▸ Details", "Tool calls", "hash each call", "Related reading", "Tool Scheduler"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	for _, unwanted := range []string{"collapsed text", "chunk the stream"} {
		if strings.Contains(view, unwanted) {
			t.Errorf("view should not contain %q", unwanted)
		}
	}
	// Overview, Details, Internals, two tabs, two related entries.
	if len(m.targets) != 7 {
		t.Fatalf("targets = %d, want 7", len(m.targets))
	}
}

func TestToggleSection(t *testing.T) {
	m := New(newTestHost(t), nil)
	m = press(t, m, "j", "enter")
	if !strings.Contains(m.View(), "collapsed text") {
		t.Error("enter on Details should expand it")
	}
	m = press(t, m, "enter")
	if strings.Contains(m.View(), "collapsed text") {
		t.Error("second enter should collapse it again")
	}

	m = press(t, m, "k", "enter")
	view := m.View()
	if strings.Contains(view, "visible text") || !strings.Contains(view, "▸ Overview") {
		t.Error("collapsing Overview should hide its body")
	}
	if len(m.targets) != 6 {
		t.Errorf("targets = %d, want 6 after collapsing Overview", len(m.targets))
	}
}

func TestSelectTab(t *testing.T) {
	m := New(newTestHost(t), nil)
	m = press(t, m, "down", "down", "down", "down", "enter")
	view := m.View()
	if !strings.Contains(view, "chunk the stream") || strings.Contains(view, "hash each call") {
		t.Errorf("selecting Content should swap the panel:\n%s", view)
	}
}

func TestFollowRelatedAndBack(t *testing.T) {
	h := newTestHost(t)
	m := New(h, nil)
	m = press(t, m, "j", "j", "j", "j", "j", "enter")
	if got := h.CurrentID(); got != "tool-scheduler" {
		t.Fatalf("current page = %q, want tool-scheduler", got)
	}
	if !strings.Contains(m.View(), "scheduler body") {
		t.Error("view should show the followed page")
	}
	if m.focus != 0 {
		t.Errorf("focus = %d after navigation, want 0", m.focus)
	}

	m = press(t, m, "b")
	if got := h.CurrentID(); got != "loop-detection" {
		t.Errorf("back went to %q", got)
	}
	if !strings.Contains(m.View(), "visible text") {
		t.Error("back should show a fresh mount of the previous page")
	}
}

func TestDanglingRelatedShowsStatus(t *testing.T) {
	h := newTestHost(t)
	m := New(h, nil)
	m = press(t, m, "j", "j", "j", "j", "j", "j", "enter")
	if got := h.CurrentID(); got != "loop-detection" {
		t.Errorf("dangling entry should not change the page, got %q", got)
	}
	if !strings.Contains(m.status, "page not found") || !strings.Contains(m.View(), "ghost") {
		t.Errorf("status = %q", m.status)
	}

	m = press(t, m, "k")
	if m.status != "" {
		t.Error("next key should clear the status")
	}
}

func TestFocusClamps(t *testing.T) {
	m := New(newTestHost(t), nil)
	m = press(t, m, "k")
	if m.focus != 0 {
		t.Errorf("focus = %d, want 0", m.focus)
	}
	for range 20 {
		m = press(t, m, "j")
	}
	if m.focus != len(m.targets)-1 {
		t.Errorf("focus = %d, want %d", m.focus, len(m.targets)-1)
	}
}

func TestHomeAndQuit(t *testing.T) {
	h := newTestHost(t)
	m := New(h, nil)
	if err := h.Navigate("tool-scheduler"); err != nil {
		t.Fatal(err)
	}
	m = press(t, m, "h")
	if got := h.CurrentID(); got != "loop-detection" {
		t.Errorf("home went to %q", got)
	}
	if len(m.history) != 1 || m.history[0] != "tool-scheduler" {
		t.Errorf("history = %v", m.history)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestWindowResize(t *testing.T) {
	m := New(newTestHost(t), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	if m.viewport.Width != 120 || m.viewport.Height != 38 {
		t.Errorf("viewport = %dx%d", m.viewport.Width, m.viewport.Height)
	}
}
