package ui

import "strconv"

// Disclosure is a collapsible section. Each instance owns its expanded flag;
// toggling it never touches any other section.
type Disclosure struct {
	id       string
	title    string
	icon     string
	depth    int
	expanded bool
	children []Node
}

// NewDisclosure creates a section. A negative depth is clamped to zero.
func NewDisclosure(title, icon string, depth int, open bool, children ...Node) *Disclosure {
	if depth < 0 {
		depth = 0
	}
	return &Disclosure{
		title:    title,
		icon:     icon,
		depth:    depth,
		expanded: open,
		children: children,
	}
}

// DefaultOpen is the expansion used when content does not say: top-level
// sections start open, nested ones start closed.
func DefaultOpen(depth int) bool {
	return depth == 0
}

// Toggle flips the expanded flag.
func (d *Disclosure) Toggle() {
	d.expanded = !d.expanded
}

// ID returns the mount-local id, empty before the owning page is mounted.
func (d *Disclosure) ID() string { return d.id }

func (d *Disclosure) Title() string { return d.title }
func (d *Disclosure) Icon() string  { return d.icon }
func (d *Disclosure) Depth() int    { return d.depth }

// Expanded reports the current state.
func (d *Disclosure) Expanded() bool { return d.expanded }

// Children returns the section's children regardless of state. Static
// renderers that leave expansion to the client use it.
func (d *Disclosure) Children() []Node { return d.children }

// Render implements Node. Children are not rendered while collapsed.
func (d *Disclosure) Render(r Renderer) {
	if !d.expanded {
		r.Disclosure(d, nil)
		return
	}
	r.Disclosure(d, func() { renderAll(r, d.children) })
}

func (d *Disclosure) assignID(id string) {
	d.id = id
	assignIDs(d.children, id)
}

func (d *Disclosure) liveChildren() []Node { return d.children }

// assignIDs gives every identified node below prefix a positional id.
func assignIDs(nodes []Node, prefix string) {
	for i, n := range nodes {
		if idn, ok := n.(identified); ok {
			idn.assignID(prefix + "." + strconv.Itoa(i))
		}
	}
}
