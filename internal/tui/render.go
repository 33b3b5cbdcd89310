package tui

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/archdocs/internal/docs"
	"github.com/ziadkadry99/archdocs/internal/ui"
)

// Markdown renders a markdown fragment for the terminal.
// *glamour.TermRenderer satisfies it.
type Markdown interface {
	Render(in string) (string, error)
}

type targetKind int

const (
	targetSection targetKind = iota
	targetTab
	targetRelated
)

// target is one focusable element of the drawn page.
type target struct {
	kind  targetKind
	node  string // section id or tab group id
	tab   string
	index int // related entry
	line  int
}

// pageWriter draws a page tree into terminal lines and records the
// focusable targets in document order.
type pageWriter struct {
	md      Markdown
	focus   int
	indent  int
	lines   []string
	targets []target
}

func (w *pageWriter) String() string { return strings.Join(w.lines, "\n") }

func (w *pageWriter) pad() string { return strings.Repeat("  ", w.indent) }

func (w *pageWriter) blank() {
	if n := len(w.lines); n > 0 && w.lines[n-1] != "" {
		w.lines = append(w.lines, "")
	}
}

// add registers a target on the next line and reports whether it has focus.
func (w *pageWriter) add(t target) bool {
	t.line = len(w.lines)
	w.targets = append(w.targets, t)
	return len(w.targets)-1 == w.focus
}

// markdown draws a leaf element through the markdown renderer.
func (w *pageWriter) markdown(src string) {
	out := src
	if w.md != nil {
		if rendered, err := w.md.Render(src); err == nil {
			out = rendered
		}
	}
	w.blank()
	pad := w.pad()
	for _, line := range strings.Split(strings.Trim(out, "\n"), "\n") {
		w.lines = append(w.lines, pad+line)
	}
}

func (w *pageWriter) leaf(draw func(r *docs.MarkdownRenderer)) {
	var r docs.MarkdownRenderer
	draw(&r)
	w.markdown(r.String())
}

func (w *pageWriter) Prose(p ui.Prose) { w.leaf(func(r *docs.MarkdownRenderer) { r.Prose(p) }) }
func (w *pageWriter) Code(c ui.CodeBlock) { w.leaf(func(r *docs.MarkdownRenderer) { r.Code(c) }) }
func (w *pageWriter) Table(t ui.Table) { w.leaf(func(r *docs.MarkdownRenderer) { r.Table(t) }) }
func (w *pageWriter) Card(c ui.Card) { w.leaf(func(r *docs.MarkdownRenderer) { r.Card(c) }) }
func (w *pageWriter) Highlight(h ui.Highlight) { w.leaf(func(r *docs.MarkdownRenderer) { r.Highlight(h) }) }
func (w *pageWriter) Diagram(d ui.Diagram) { w.leaf(func(r *docs.MarkdownRenderer) { r.Diagram(d) }) }

func (w *pageWriter) Disclosure(d *ui.Disclosure, body func()) {
	w.blank()
	focused := w.add(target{kind: targetSection, node: d.ID()})

	marker := "▸"
	if d.Expanded() {
		marker = "▾"
	}
	title := d.Title()
	if d.Icon() != "" {
		title = d.Icon() + " " + title
	}
	line := sectionStyle.Render(marker + " " + title)
	if focused {
		line = focusStyle.Render(line)
	}
	w.lines = append(w.lines, w.pad()+line)

	if body == nil {
		return
	}
	w.indent++
	body()
	w.indent--
}

func (w *pageWriter) Tabs(g *ui.TabGroup, body func()) {
	w.blank()
	labels := make([]string, 0, len(g.Tabs()))
	for _, t := range g.Tabs() {
		focused := w.add(target{kind: targetTab, node: g.ID(), tab: t.ID})
		label := t.Label
		if t.Icon != "" {
			label = t.Icon + " " + label
		}
		style := tabStyle
		if t.ID == g.ActiveTab() {
			style = activeTab
		}
		label = style.Render(label)
		if focused {
			label = focusStyle.Render(label)
		}
		labels = append(labels, label)
	}
	w.lines = append(w.lines, w.pad()+strings.Join(labels, subtleStyle.Render(" │ ")))
	body()
}

func (w *pageWriter) Related(p *ui.RelatedPanel) {
	if p.Len() == 0 {
		return
	}
	w.blank()
	w.lines = append(w.lines, sectionStyle.Render("Related reading"))
	for i, ref := range p.Refs() {
		focused := w.add(target{kind: targetRelated, index: i})
		label := ref.Label
		if label == "" {
			label = ref.ID
		}
		line := relatedStyle.Render("→ " + label)
		if ref.Description != "" {
			line += subtleStyle.Render(fmt.Sprintf("  %s", ref.Description))
		}
		if focused {
			line = focusStyle.Render(line)
		}
		w.lines = append(w.lines, "  "+line)
	}
}
