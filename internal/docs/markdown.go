// Package docs renders pages as Markdown for agents and plain-text export.
package docs

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

// MarkdownRenderer writes a page tree as GitHub-flavoured Markdown.
//
// By default it follows the tree's state: collapsed sections contribute
// only their heading and only the active tab panel is written. With Expand
// set, every section and every tab panel is written.
type MarkdownRenderer struct {
	Expand bool
	// Link maps a related page id to a link target. Nil uses "{id}.md".
	Link func(id string) string

	b strings.Builder
}

// String returns the Markdown written so far.
func (r *MarkdownRenderer) String() string { return r.b.String() }

// block starts a new block separated from the previous one by a blank line.
func (r *MarkdownRenderer) block() {
	if r.b.Len() > 0 && !strings.HasSuffix(r.b.String(), "\n\n") {
		if !strings.HasSuffix(r.b.String(), "\n") {
			r.b.WriteByte('\n')
		}
		r.b.WriteByte('\n')
	}
}

func (r *MarkdownRenderer) Prose(p ui.Prose) {
	r.block()
	r.b.WriteString(strings.TrimSpace(p.Markdown))
	r.b.WriteByte('\n')
}

func (r *MarkdownRenderer) Code(c ui.CodeBlock) {
	r.block()
	if c.Title != "" {
		fmt.Fprintf(&r.b, "*%s*\n\n", c.Title)
	}
	r.b.WriteString(Fence(c.Source, c.Lang))
}

func (r *MarkdownRenderer) Table(t ui.Table) {
	r.block()
	if t.Title != "" {
		fmt.Fprintf(&r.b, "**%s**\n\n", t.Title)
	}
	width := len(t.Headers)
	if width == 0 {
		for _, row := range t.Rows {
			width = max(width, len(row))
		}
	}
	if width == 0 {
		return
	}
	headers := fitRow(t.Headers, width)
	r.row(headers)
	sep := make([]string, width)
	for i := range sep {
		sep[i] = "---"
	}
	r.row(sep)
	for _, row := range t.Rows {
		r.row(fitRow(row, width))
	}
}

func (r *MarkdownRenderer) row(cells []string) {
	r.b.WriteString("|")
	for _, c := range cells {
		fmt.Fprintf(&r.b, " %s |", cell(c))
	}
	r.b.WriteByte('\n')
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func fitRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

func (r *MarkdownRenderer) Card(c ui.Card) {
	r.block()
	title := c.Title
	if c.Icon != "" {
		title = c.Icon + " " + title
	}
	fmt.Fprintf(&r.b, "**%s**\n", title)
	if c.Description != "" {
		fmt.Fprintf(&r.b, "\n%s\n", c.Description)
	}
	if len(c.Items) > 0 {
		r.b.WriteByte('\n')
		for _, item := range c.Items {
			fmt.Fprintf(&r.b, "- %s\n", item)
		}
	}
}

var variantLabels = map[ui.HighlightVariant]string{
	ui.HighlightInfo:    "Note",
	ui.HighlightTip:     "Tip",
	ui.HighlightWarning: "Warning",
}

func (r *MarkdownRenderer) Highlight(h ui.Highlight) {
	r.block()
	label, ok := variantLabels[h.Variant]
	if !ok {
		label = variantLabels[ui.HighlightInfo]
	}
	if h.Title != "" {
		label += ": " + h.Title
	}
	fmt.Fprintf(&r.b, "> **%s**\n>\n", label)
	for _, line := range strings.Split(strings.TrimSpace(h.Text), "\n") {
		if line == "" {
			r.b.WriteString(">\n")
			continue
		}
		fmt.Fprintf(&r.b, "> %s\n", line)
	}
}

func (r *MarkdownRenderer) Diagram(d ui.Diagram) {
	r.block()
	if d.Title != "" {
		fmt.Fprintf(&r.b, "*%s*\n\n", d.Title)
	}
	r.b.WriteString(Fence(d.Source, "mermaid"))
}

// headingLevel maps a section depth to a heading level below the page's H1.
func headingLevel(depth int) int {
	return min(depth+2, 6)
}

func (r *MarkdownRenderer) Disclosure(d *ui.Disclosure, body func()) {
	r.block()
	title := d.Title()
	if d.Icon() != "" {
		title = d.Icon() + " " + title
	}
	fmt.Fprintf(&r.b, "%s %s\n", strings.Repeat("#", headingLevel(d.Depth())), title)
	switch {
	case r.Expand:
		for _, c := range d.Children() {
			c.Render(r)
		}
	case body != nil:
		body()
	}
}

func (r *MarkdownRenderer) Tabs(g *ui.TabGroup, body func()) {
	r.block()
	if r.Expand {
		for i, t := range g.Tabs() {
			if i > 0 {
				r.block()
			}
			fmt.Fprintf(&r.b, "**%s**\n", t.Label)
			for _, n := range g.Panel(t.ID) {
				n.Render(r)
			}
		}
		return
	}

	labels := make([]string, 0, len(g.Tabs()))
	for _, t := range g.Tabs() {
		if t.ID == g.ActiveTab() {
			labels = append(labels, "**"+t.Label+"**")
		} else {
			labels = append(labels, t.Label)
		}
	}
	r.b.WriteString(strings.Join(labels, " · "))
	r.b.WriteByte('\n')
	body()
}

func (r *MarkdownRenderer) Related(p *ui.RelatedPanel) {
	if p.Len() == 0 {
		return
	}
	r.block()
	r.b.WriteString("## Related reading\n\n")
	for _, ref := range p.Refs() {
		label := ref.Label
		if label == "" {
			label = ref.ID
		}
		fmt.Fprintf(&r.b, "- [%s](%s)", label, r.link(ref.ID))
		if ref.Description != "" {
			fmt.Fprintf(&r.b, ": %s", ref.Description)
		}
		r.b.WriteByte('\n')
	}
}

func (r *MarkdownRenderer) link(id string) string {
	if r.Link != nil {
		return r.Link(id)
	}
	return id + ".md"
}

// Fence wraps source in a code fence longer than any backtick run inside it.
// Only the first word of lang is used as the info string.
func Fence(source, lang string) string {
	longest, run := 0, 0
	for _, c := range source {
		if c != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	n := 3
	if longest >= n {
		n = longest + 1
	}
	if f := strings.Fields(lang); len(f) > 0 {
		lang = f[0]
	} else {
		lang = ""
	}
	f := strings.Repeat("`", n)
	return f + lang + "\n" + strings.TrimRight(source, "\n") + "\n" + f + "\n"
}

// Page renders a mounted page with its title as the H1.
func Page(m *ui.Mount, expand bool) string {
	r := &MarkdownRenderer{Expand: expand}
	p := m.Page()
	title := p.Title
	if title == "" {
		title = p.Ref.Label
	}
	if title == "" {
		title = p.ID()
	}
	if p.Icon != "" {
		title = p.Icon + " " + title
	}
	fmt.Fprintf(&r.b, "# %s\n", title)
	if p.Ref.Description != "" {
		fmt.Fprintf(&r.b, "\n%s\n", p.Ref.Description)
	}
	writeContents(&r.b, m.Nodes())
	m.Render(r)
	return r.String()
}

// writeContents lists the top-level sections when there are at least two.
func writeContents(b *strings.Builder, nodes []ui.Node) {
	var sections []*ui.Disclosure
	for _, n := range nodes {
		if d, ok := n.(*ui.Disclosure); ok {
			sections = append(sections, d)
		}
	}
	if len(sections) < 2 {
		return
	}
	b.WriteString("\n")
	for _, d := range sections {
		heading := d.Title()
		if d.Icon() != "" {
			heading = d.Icon() + " " + heading
		}
		fmt.Fprintf(b, "- [%s](#%s)\n", d.Title(), anchorize(heading))
	}
}
