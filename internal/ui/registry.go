package ui

import (
	"errors"
	"fmt"
)

// ErrDuplicatePage is returned by Register when the page id is taken.
var ErrDuplicatePage = errors.New("duplicate page id")

// Registry is the ordered set of pages a site serves.
type Registry struct {
	order []string
	pages map[string]*Page
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]*Page)}
}

// Register adds p. Ids must be non-empty and unique.
func (r *Registry) Register(p *Page) error {
	id := p.ID()
	if id == "" {
		return errors.New("page id is required")
	}
	if _, ok := r.pages[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicatePage, id)
	}
	r.pages[id] = p
	r.order = append(r.order, id)
	return nil
}

// Lookup returns the page with the given id.
func (r *Registry) Lookup(id string) (*Page, bool) {
	p, ok := r.pages[id]
	return p, ok
}

// Len returns the number of pages.
func (r *Registry) Len() int { return len(r.order) }

// IDs returns page ids in registration order.
func (r *Registry) IDs() []string { return append([]string(nil), r.order...) }

// Pages returns pages in registration order.
func (r *Registry) Pages() []*Page {
	out := make([]*Page, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.pages[id])
	}
	return out
}

// Adjacency returns, for every page, the ids its related panel lists.
func (r *Registry) Adjacency() map[string][]string {
	adj := make(map[string][]string, len(r.order))
	for _, id := range r.order {
		refs := r.pages[id].Related
		targets := make([]string, 0, len(refs))
		for _, ref := range refs {
			targets = append(targets, ref.ID)
		}
		adj[id] = targets
	}
	return adj
}

// DanglingRef is a related-page entry whose target is not registered.
type DanglingRef struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (d DanglingRef) String() string {
	return fmt.Sprintf("%s -> %s", d.From, d.To)
}

// Dangling lists references to unregistered pages in registration order.
func (r *Registry) Dangling() []DanglingRef {
	var out []DanglingRef
	for _, id := range r.order {
		for _, ref := range r.pages[id].Related {
			if _, ok := r.pages[ref.ID]; !ok {
				out = append(out, DanglingRef{From: id, To: ref.ID})
			}
		}
	}
	return out
}
