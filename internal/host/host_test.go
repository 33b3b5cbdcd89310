package host

import (
	"errors"
	"testing"
	"time"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

func testRegistry(t *testing.T) *ui.Registry {
	t.Helper()
	reg := ui.NewRegistry()
	pages := []*ui.Page{
		{
			Ref: ui.PageRef{ID: "loop-detection"},
			Compose: func() []ui.Node {
				return []ui.Node{
					ui.NewDisclosure("Overview", "", 0, true,
						ui.NewDisclosure("Details", "", 1, false),
					),
				}
			},
			Related: []ui.PageRef{{ID: "tool-scheduler"}, {ID: "ghost"}},
		},
		{
			Ref:     ui.PageRef{ID: "tool-scheduler"},
			Related: []ui.PageRef{{ID: "loop-detection"}},
		},
	}
	for _, p := range pages {
		if err := reg.Register(p); err != nil {
			t.Fatal(err)
		}
	}
	return reg
}

func TestNavigate(t *testing.T) {
	h := New(testRegistry(t), "loop-detection")
	if h.Current() != nil {
		t.Fatal("new host should have nothing mounted")
	}
	if err := h.NavigateHome(); err != nil {
		t.Fatalf("NavigateHome: %v", err)
	}
	if h.CurrentID() != "loop-detection" {
		t.Errorf("current = %q", h.CurrentID())
	}

	err := h.Navigate("ghost")
	if !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("Navigate(ghost) err = %v, want ErrPageNotFound", err)
	}
	if h.CurrentID() != "loop-detection" {
		t.Error("failed navigation should keep the current page")
	}
}

func TestNavigationResetsState(t *testing.T) {
	h := New(testRegistry(t), "loop-detection")
	_ = h.NavigateHome()
	if !h.Toggle("s0.0") {
		t.Fatal("Toggle(s0.0) = false")
	}

	// Same page: Ensure keeps state.
	if err := h.Ensure("loop-detection"); err != nil {
		t.Fatal(err)
	}
	if !h.Current().Disclosure("s0.0").Expanded() {
		t.Error("Ensure on the current page should keep its state")
	}

	// Away and back: state is gone.
	_ = h.Navigate("tool-scheduler")
	_ = h.Ensure("loop-detection")
	if h.Current().Disclosure("s0.0").Expanded() {
		t.Error("state survived navigating away and back")
	}
}

func TestFollowRelated(t *testing.T) {
	h := New(testRegistry(t), "loop-detection")
	if err := h.FollowRelated(0); err == nil {
		t.Error("expected error with nothing mounted")
	}
	_ = h.NavigateHome()

	if err := h.FollowRelated(0); err != nil {
		t.Fatalf("FollowRelated(0): %v", err)
	}
	if h.CurrentID() != "tool-scheduler" {
		t.Errorf("current = %q, want tool-scheduler", h.CurrentID())
	}

	_ = h.Navigate("loop-detection")
	if err := h.FollowRelated(1); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("dangling reference: err = %v, want ErrPageNotFound", err)
	}
	if h.CurrentID() != "loop-detection" {
		t.Error("dangling reference should not change the page")
	}
}

func TestFollow(t *testing.T) {
	h := New(testRegistry(t), "loop-detection")

	target, err := h.Follow("loop-detection", 0)
	if err != nil || target != "tool-scheduler" {
		t.Fatalf("Follow(loop-detection, 0) = %q, %v", target, err)
	}
	if h.CurrentID() != "tool-scheduler" {
		t.Errorf("current = %q, want tool-scheduler", h.CurrentID())
	}

	// The entry is resolved against the named page, not whatever is current.
	target, err = h.Follow("loop-detection", 1)
	if target != "ghost" || !errors.Is(err, ErrPageNotFound) {
		t.Errorf("dangling entry = %q, %v", target, err)
	}
	if h.CurrentID() != "loop-detection" {
		t.Errorf("current = %q after dangling entry", h.CurrentID())
	}

	if _, err := h.Follow("loop-detection", 2); !errors.Is(err, ErrRelatedIndex) {
		t.Errorf("out of range err = %v, want ErrRelatedIndex", err)
	}
	if _, err := h.Follow("nope", 0); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("unknown page err = %v, want ErrPageNotFound", err)
	}
}

func TestUpdateAndView(t *testing.T) {
	h := New(testRegistry(t), "loop-detection")
	if h.View(func(*ui.Registry, *ui.Mount) { t.Error("fn called without a mount") }) {
		t.Error("View without a mount should report false")
	}

	if err := h.Update("loop-detection", func(m *ui.Mount) { m.Toggle("s0.0") }); err != nil {
		t.Fatal(err)
	}
	if err := h.Update("loop-detection", func(m *ui.Mount) {}); err != nil {
		t.Fatal(err)
	}
	var page string
	var expanded bool
	ok := h.View(func(reg *ui.Registry, m *ui.Mount) {
		if reg.Len() != 2 {
			t.Errorf("registry has %d pages", reg.Len())
		}
		page = m.Page().ID()
		expanded = m.Disclosure("s0.0").Expanded()
	})
	if !ok || page != "loop-detection" || !expanded {
		t.Errorf("View saw %q expanded=%t", page, expanded)
	}

	called := false
	if err := h.Update("ghost", func(*ui.Mount) { called = true }); !errors.Is(err, ErrPageNotFound) || called {
		t.Errorf("Update(ghost) err = %v, called = %t", err, called)
	}
}

func TestToggleAndSelectWithoutMount(t *testing.T) {
	h := New(testRegistry(t), "loop-detection")
	if h.Toggle("s0") || h.SelectTab("s0", "a") {
		t.Error("operations without a mount should report false")
	}
	if h.Render(nil) {
		t.Error("Render without a mount should report false")
	}
}

func TestReload(t *testing.T) {
	h := New(testRegistry(t), "loop-detection")
	_ = h.Navigate("tool-scheduler")

	next := ui.NewRegistry()
	_ = next.Register(&ui.Page{Ref: ui.PageRef{ID: "loop-detection"}})
	h.Reload(next)
	if h.CurrentID() != "loop-detection" {
		t.Errorf("after reload current = %q, want home", h.CurrentID())
	}

	h.Reload(ui.NewRegistry())
	if h.Current() != nil {
		t.Error("reload with no pages should unmount")
	}
}

func TestSessions(t *testing.T) {
	s := NewSessions(testRegistry(t), "loop-detection", time.Minute)
	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }

	k, h := s.Get(Key{})
	if k.Session == "" || k.View == "" || h == nil {
		t.Fatal("Get should create a session and a view")
	}
	again, h2 := s.Get(k)
	if again != k || h2 != h {
		t.Error("Get with a known key should return the same host")
	}
	other, h3 := s.Get(Key{Session: "unknown"})
	if other.Session == "unknown" || h3 == h {
		t.Error("unknown sessions should start a new one")
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}

	// Independent state per viewer.
	_ = h.NavigateHome()
	_ = h3.NavigateHome()
	h.Toggle("s0")
	if !h3.Current().Disclosure("s0").Expanded() {
		t.Error("toggling in one session affected another")
	}

	now = now.Add(30 * time.Second)
	s.Get(k)
	now = now.Add(45 * time.Second)
	if removed := s.Sweep(); removed != 1 {
		t.Errorf("swept %d views, want 1", removed)
	}
	if _, ok := s.sessions[k.Session]; !ok {
		t.Error("recently used session was swept")
	}
	if _, ok := s.sessions[other.Session]; ok {
		t.Error("session without views should be dropped")
	}
}

func TestSessionViews(t *testing.T) {
	s := NewSessions(testRegistry(t), "loop-detection", time.Minute)
	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }

	first, h1 := s.Get(Key{})
	second, h2 := s.Get(Key{Session: first.Session})
	if second.Session != first.Session {
		t.Fatal("a new view should stay in the caller's session")
	}
	if second.View == first.View || h2 == h1 {
		t.Fatal("an empty view id should start a new view")
	}
	if s.Len() != 1 || s.Views() != 2 {
		t.Errorf("sessions = %d, views = %d, want 1 and 2", s.Len(), s.Views())
	}

	// Two views of one viewer on the same page keep separate state.
	_ = h1.Ensure("loop-detection")
	_ = h2.Ensure("loop-detection")
	h1.Toggle("s0.0")
	_ = h2.Navigate("tool-scheduler")
	_ = h1.Update("loop-detection", func(m *ui.Mount) { m.Toggle("s0") })
	_ = h1.Update("loop-detection", func(m *ui.Mount) { m.Toggle("s0") })
	if !h1.Current().Disclosure("s0.0").Expanded() {
		t.Error("navigation in one view reset the state of another")
	}

	if _, h := s.Get(Key{Session: first.Session, View: "stale"}); h == h1 || h == h2 {
		t.Error("unknown view ids should start a new view")
	}

	for i := 0; i < MaxViews+5; i++ {
		now = now.Add(time.Millisecond)
		s.Get(Key{Session: first.Session})
	}
	if n := s.Views(); n != MaxViews {
		t.Errorf("views = %d, want at most %d", n, MaxViews)
	}
	if _, h := s.Get(first); h == h1 {
		t.Error("least recently used view should have been evicted")
	}
}

func TestSessionsReload(t *testing.T) {
	s := NewSessions(testRegistry(t), "loop-detection", 0)
	_, h := s.Get(Key{})
	_ = h.Navigate("tool-scheduler")

	next := ui.NewRegistry()
	_ = next.Register(&ui.Page{Ref: ui.PageRef{ID: "tool-scheduler"}, Title: "v2"})
	s.Reload(next)

	if h.Current().Page().Title != "v2" {
		t.Error("live session did not pick up reloaded content")
	}
	if s.Registry() != next {
		t.Error("new sessions should use the reloaded registry")
	}
}
