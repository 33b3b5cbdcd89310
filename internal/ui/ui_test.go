package ui

import (
	"fmt"
	"strings"
)

// recorder is a Renderer that logs what it was asked to draw.
type recorder struct {
	lines []string
}

func (r *recorder) Prose(p Prose)         { r.add("prose:" + p.Markdown) }
func (r *recorder) Code(c CodeBlock)      { r.add("code:" + c.Lang) }
func (r *recorder) Table(t Table)         { r.add(fmt.Sprintf("table:%d", len(t.Rows))) }
func (r *recorder) Card(c Card)           { r.add("card:" + c.Title) }
func (r *recorder) Highlight(h Highlight) { r.add("highlight:" + string(h.Variant)) }
func (r *recorder) Diagram(d Diagram)     { r.add("diagram:" + d.Title) }

func (r *recorder) Disclosure(d *Disclosure, body func()) {
	state := "closed"
	if body != nil {
		state = "open"
	}
	r.add("section:" + d.Title() + ":" + state)
	if body != nil {
		body()
	}
}

func (r *recorder) Tabs(g *TabGroup, body func()) {
	r.add("tabs:" + g.ActiveTab())
	body()
}

func (r *recorder) Related(p *RelatedPanel) {
	for _, ref := range p.Refs() {
		r.add("related:" + ref.ID)
	}
}

func (r *recorder) add(s string) { r.lines = append(r.lines, s) }

func (r *recorder) has(s string) bool {
	for _, l := range r.lines {
		if l == s {
			return true
		}
	}
	return false
}

func (r *recorder) String() string { return strings.Join(r.lines, "\n") }

func render(n interface{ Render(Renderer) }) *recorder {
	rec := &recorder{}
	n.Render(rec)
	return rec
}
