// Package ui holds the composition model of a documentation page: stateless
// content primitives, collapsible sections, tab groups and the related-pages
// panel. Rendering is delegated to a Renderer so the same tree can be drawn
// as HTML, Markdown or terminal output.
package ui

// Node is one element of a page tree.
type Node interface {
	Render(r Renderer)
}

// Renderer draws a page tree. Implementations live outside this package.
//
// Disclosure is called with a nil body when the section is collapsed; a
// non-nil body renders the section's children onto the same renderer.
// Tabs is called with the body of the active panel only.
type Renderer interface {
	Prose(p Prose)
	Code(c CodeBlock)
	Table(t Table)
	Card(c Card)
	Highlight(h Highlight)
	Diagram(d Diagram)
	Disclosure(d *Disclosure, body func())
	Tabs(g *TabGroup, body func())
	Related(p *RelatedPanel)
}

// Navigator requests that the page-host show the page with the given id.
type Navigator interface {
	Navigate(id string) error
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(id string) error

// Navigate calls f(id).
func (f NavigatorFunc) Navigate(id string) error { return f(id) }

// identified is implemented by stateful nodes that get a mount-local id.
type identified interface {
	assignID(id string)
}

// container is implemented by nodes whose live children can be searched.
type container interface {
	liveChildren() []Node
}

// renderAll renders nodes in order.
func renderAll(r Renderer, nodes []Node) {
	for _, n := range nodes {
		if n != nil {
			n.Render(r)
		}
	}
}
