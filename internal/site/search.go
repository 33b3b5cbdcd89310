package site

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

// maxSearchContent caps the indexed text per page.
const maxSearchContent = 2000

// SearchEntry represents a single searchable page.
type SearchEntry struct {
	ID      string `json:"id"`
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchIndex collects the text of every page in its fully expanded
// form, so collapsed sections and inactive tabs are searchable too.
func BuildSearchIndex(reg *ui.Registry, link func(string) string) []SearchEntry {
	entries := make([]SearchEntry, 0, reg.Len())
	for _, p := range reg.Pages() {
		tc := &textCollector{}
		p.Mount(nil).Render(tc)

		content := strings.Join(strings.Fields(tc.b.String()), " ")
		if len(content) > maxSearchContent {
			content = truncateUTF8(content, maxSearchContent)
		}
		entries = append(entries, SearchEntry{
			ID:      p.ID(),
			Path:    link(p.ID()),
			Title:   displayTitle(p),
			Summary: p.Ref.Description,
			Content: content,
		})
	}
	return entries
}

// MarshalSearchIndex encodes entries as indented JSON.
func MarshalSearchIndex(entries []SearchEntry) ([]byte, error) {
	return json.MarshalIndent(entries, "", "  ")
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := MarshalSearchIndex(entries)
	if err != nil {
		return fmt.Errorf("encoding search index: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}

func truncateUTF8(s string, n int) string {
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}

// textCollector is a ui.Renderer that gathers plain text. It descends into
// collapsed sections and every tab panel.
type textCollector struct {
	b strings.Builder
}

func (c *textCollector) add(parts ...string) {
	for _, p := range parts {
		if p != "" {
			c.b.WriteString(p)
			c.b.WriteByte(' ')
		}
	}
}

func (c *textCollector) Prose(p ui.Prose)     { c.add(p.Markdown) }
func (c *textCollector) Code(b ui.CodeBlock)  { c.add(b.Title) }
func (c *textCollector) Diagram(d ui.Diagram) { c.add(d.Title) }

func (c *textCollector) Table(t ui.Table) {
	c.add(t.Title)
	c.add(t.Headers...)
	for _, row := range t.Rows {
		c.add(row...)
	}
}

func (c *textCollector) Card(card ui.Card) {
	c.add(card.Title, card.Description)
	c.add(card.Items...)
}

func (c *textCollector) Highlight(h ui.Highlight) { c.add(h.Title, h.Text) }

func (c *textCollector) Disclosure(d *ui.Disclosure, _ func()) {
	c.add(d.Title())
	for _, n := range d.Children() {
		n.Render(c)
	}
}

func (c *textCollector) Tabs(g *ui.TabGroup, _ func()) {
	for _, t := range g.Tabs() {
		c.add(t.Label)
		for _, n := range g.Panel(t.ID) {
			n.Render(c)
		}
	}
}

func (c *textCollector) Related(*ui.RelatedPanel) {}
