package ui

import "strconv"

// Page is a composition root. Compose is called once per mount and must
// return freshly built nodes every time.
type Page struct {
	Ref     PageRef
	Title   string
	Icon    string
	Compose func() []Node
	Related []PageRef
}

// ID returns the page id.
func (p *Page) ID() string { return p.Ref.ID }

// Mount builds a new instance of the page. nav receives related-panel
// selections.
func (p *Page) Mount(nav Navigator) *Mount {
	var nodes []Node
	if p.Compose != nil {
		nodes = p.Compose()
	}
	for i, n := range nodes {
		if idn, ok := n.(identified); ok {
			idn.assignID("s" + strconv.Itoa(i))
		}
	}
	return &Mount{
		page:    p,
		nodes:   nodes,
		related: NewRelatedPanel(p.Related, nav),
	}
}

// Mount is one visit of a page: its node tree and the transient state held
// inside it. A new Mount starts from the composed defaults.
type Mount struct {
	page    *Page
	nodes   []Node
	related *RelatedPanel
}

// Page returns the mounted page.
func (m *Mount) Page() *Page { return m.page }

// Nodes returns the top-level nodes.
func (m *Mount) Nodes() []Node { return m.nodes }

// Related returns the page's related panel.
func (m *Mount) Related() *RelatedPanel { return m.related }

// Render draws the page body followed by the related panel.
func (m *Mount) Render(r Renderer) {
	renderAll(r, m.nodes)
	m.related.Render(r)
}

// Toggle flips the section with the given id. It reports false when no
// mounted section has that id.
func (m *Mount) Toggle(id string) bool {
	d := m.Disclosure(id)
	if d == nil {
		return false
	}
	d.Toggle()
	return true
}

// SelectTab selects tabID in the group groupID. It reports false for an
// unknown group or tab.
func (m *Mount) SelectTab(groupID, tabID string) bool {
	g := m.TabGroup(groupID)
	if g == nil {
		return false
	}
	return g.SelectTab(tabID)
}

// Disclosure finds a live section by id.
func (m *Mount) Disclosure(id string) *Disclosure {
	var found *Disclosure
	walk(m.nodes, func(n Node) bool {
		if d, ok := n.(*Disclosure); ok && d.id == id {
			found = d
			return false
		}
		return true
	})
	return found
}

// TabGroup finds a live tab group by id.
func (m *Mount) TabGroup(id string) *TabGroup {
	var found *TabGroup
	walk(m.nodes, func(n Node) bool {
		if g, ok := n.(*TabGroup); ok && g.id == id {
			found = g
			return false
		}
		return true
	})
	return found
}

// Disclosures returns every live section in document order.
func (m *Mount) Disclosures() []*Disclosure {
	var out []*Disclosure
	walk(m.nodes, func(n Node) bool {
		if d, ok := n.(*Disclosure); ok {
			out = append(out, d)
		}
		return true
	})
	return out
}

// walk visits nodes depth first, descending into section children and the
// active tab panel. It stops when visit returns false.
func walk(nodes []Node, visit func(Node) bool) bool {
	for _, n := range nodes {
		if !visit(n) {
			return false
		}
		if c, ok := n.(container); ok {
			if !walk(c.liveChildren(), visit) {
				return false
			}
		}
	}
	return true
}
