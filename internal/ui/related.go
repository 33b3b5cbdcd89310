package ui

import "fmt"

// PageRef identifies a documentation page as a navigation target. It is
// never resolved by the ui package.
type PageRef struct {
	ID          string `json:"id"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// RelatedPanel lists pages related to the current one. Selecting an entry
// asks the navigator to show that page; whether the page exists is the
// navigator's concern.
type RelatedPanel struct {
	refs []PageRef
	nav  Navigator
}

// NewRelatedPanel creates a panel over refs. nav may be nil for panels that
// are only rendered.
func NewRelatedPanel(refs []PageRef, nav Navigator) *RelatedPanel {
	return &RelatedPanel{refs: append([]PageRef(nil), refs...), nav: nav}
}

// Refs returns a copy of the listed references.
func (p *RelatedPanel) Refs() []PageRef { return append([]PageRef(nil), p.refs...) }

// Len returns the number of entries.
func (p *RelatedPanel) Len() int { return len(p.refs) }

// Select requests navigation to the i-th entry.
func (p *RelatedPanel) Select(i int) error {
	if i < 0 || i >= len(p.refs) {
		return fmt.Errorf("related entry %d out of range [0,%d)", i, len(p.refs))
	}
	return p.request(p.refs[i].ID)
}

// SelectID requests navigation to id without checking that it is listed.
func (p *RelatedPanel) SelectID(id string) error {
	return p.request(id)
}

func (p *RelatedPanel) request(id string) error {
	if p.nav == nil {
		return fmt.Errorf("no navigator attached for %q", id)
	}
	return p.nav.Navigate(id)
}

// Render implements Node.
func (p *RelatedPanel) Render(r Renderer) { r.Related(p) }
