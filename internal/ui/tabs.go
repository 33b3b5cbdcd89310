package ui

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTabs is returned by NewTabGroup when no tabs are given.
	ErrEmptyTabs = errors.New("tab group needs at least one tab")
	// ErrDuplicateTab is returned by NewTabGroup when two tabs share an id.
	ErrDuplicateTab = errors.New("duplicate tab id")
)

// Tab is one entry of a TabGroup.
type Tab struct {
	ID    string
	Label string
	Icon  string
}

// PanelFunc builds a fresh instance of a tab panel.
type PanelFunc func() []Node

// TabGroup shows exactly one of a fixed set of alternate views. Switching
// tabs rebuilds the newly active panel, so state inside the previous panel
// is dropped.
type TabGroup struct {
	id     string
	tabs   []Tab
	panels map[string]PanelFunc
	active string
	live   []Node
}

// NewTabGroup validates tabs and activates the first one. A tab without an
// entry in panels renders an empty body.
func NewTabGroup(tabs []Tab, panels map[string]PanelFunc) (*TabGroup, error) {
	if len(tabs) == 0 {
		return nil, ErrEmptyTabs
	}
	seen := make(map[string]bool, len(tabs))
	for _, t := range tabs {
		if seen[t.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTab, t.ID)
		}
		seen[t.ID] = true
	}

	g := &TabGroup{
		tabs:   append([]Tab(nil), tabs...),
		panels: make(map[string]PanelFunc, len(panels)),
		active: tabs[0].ID,
	}
	for id, fn := range panels {
		g.panels[id] = fn
	}
	g.mountActive()
	return g, nil
}

// SelectTab activates the tab with the given id. Unknown ids are ignored and
// false is returned. Selecting the active tab keeps its panel as is.
func (g *TabGroup) SelectTab(id string) bool {
	if !g.has(id) {
		return false
	}
	if id == g.active {
		return true
	}
	g.active = id
	g.mountActive()
	return true
}

// ActiveTab returns the id of the visible tab.
func (g *TabGroup) ActiveTab() string { return g.active }

// Tabs returns a copy of the tab list.
func (g *TabGroup) Tabs() []Tab { return append([]Tab(nil), g.tabs...) }

// ID returns the mount-local id.
func (g *TabGroup) ID() string { return g.id }

// Panel builds a fresh, unattached instance of the panel for tab id. Static
// renderers use it to emit every panel at once.
func (g *TabGroup) Panel(id string) []Node {
	fn, ok := g.panels[id]
	if !ok || fn == nil {
		return nil
	}
	nodes := fn()
	assignIDs(nodes, g.panelPrefix(id))
	return nodes
}

// Render implements Node.
func (g *TabGroup) Render(r Renderer) {
	r.Tabs(g, func() { renderAll(r, g.live) })
}

func (g *TabGroup) has(id string) bool {
	for _, t := range g.tabs {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (g *TabGroup) mountActive() {
	g.live = nil
	if fn, ok := g.panels[g.active]; ok && fn != nil {
		g.live = fn()
	}
	if g.id != "" {
		assignIDs(g.live, g.panelPrefix(g.active))
	}
}

func (g *TabGroup) panelPrefix(tabID string) string {
	return g.id + ":" + tabID
}

func (g *TabGroup) assignID(id string) {
	g.id = id
	assignIDs(g.live, g.panelPrefix(g.active))
}

func (g *TabGroup) liveChildren() []Node { return g.live }
