package site

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

// NavEntry is one page in the sidebar.
type NavEntry struct {
	ID    string
	Title string
	Icon  string
}

// BuildNav lists the registered pages in registry order. The home page is
// moved to the top.
func BuildNav(reg *ui.Registry, home string) []NavEntry {
	var entries []NavEntry
	for _, p := range reg.Pages() {
		e := NavEntry{ID: p.ID(), Title: displayTitle(p), Icon: p.Icon}
		if p.ID() == home {
			entries = append([]NavEntry{e}, entries...)
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// NavHTML renders entries as the sidebar list, marking activeID.
func NavHTML(entries []NavEntry, activeID string, link func(string) string) template.HTML {
	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, e := range entries {
		active := ""
		if e.ID == activeID {
			active = ` class="active"`
		}
		label := esc(e.Title)
		if e.Icon != "" {
			label = `<span class="icon">` + esc(e.Icon) + `</span> ` + label
		}
		fmt.Fprintf(&b, `<li class="file" data-page="%s"><a href="%s"%s>%s</a></li>`+"\n",
			esc(e.ID), esc(link(e.ID)), active, label)
	}
	b.WriteString("</ul>\n")
	return template.HTML(b.String())
}

// displayTitle picks the title shown for a page in navigation.
func displayTitle(p *ui.Page) string {
	switch {
	case p.Title != "":
		return p.Title
	case p.Ref.Label != "":
		return p.Ref.Label
	}
	return formatSlug(p.ID())
}

// formatSlug converts a page id to a human-readable name.
func formatSlug(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
