package site

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/archdocs/internal/docs"
	"github.com/ziadkadry99/archdocs/internal/ui"
)

// DefaultHighlightStyle is the chroma style used for code blocks.
const DefaultHighlightStyle = "github"

// Markup converts prose and code listings to HTML. It is safe for
// concurrent use.
type Markup struct {
	md goldmark.Markdown
}

// NewMarkup creates a converter using the given chroma style.
func NewMarkup(style string) *Markup {
	if style == "" {
		style = DefaultHighlightStyle
	}
	return &Markup{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle(style),
				),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Prose renders markdown.
func (m *Markup) Prose(src string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// Code renders a highlighted listing. lang only selects the lexer; an
// unknown language falls back to plain text.
func (m *Markup) Code(source, lang string) (string, error) {
	return m.Prose(docs.Fence(source, lang))
}

// Mode selects how interactive components are emitted.
type Mode int

const (
	// ModeLive posts section and tab events back to the page-host.
	ModeLive Mode = iota
	// ModeStatic emits self-contained pages: <details> sections and
	// client-side tabs.
	ModeStatic
)

// HTMLRenderer draws a mounted page as an HTML fragment. One renderer is
// used for one page render; it is not safe for concurrent use.
type HTMLRenderer struct {
	markup *Markup
	mode   Mode
	pageID string
	links  Links
	b      strings.Builder
	err    error
}

// NewHTMLRenderer creates a renderer for the page with the given id.
func NewHTMLRenderer(m *Markup, mode Mode, pageID string) *HTMLRenderer {
	links := LiveLinks
	if mode == ModeStatic {
		links = StaticLinks
	}
	return &HTMLRenderer{markup: m, mode: mode, pageID: pageID, links: links}
}

// HTML returns everything rendered so far.
func (r *HTMLRenderer) HTML() template.HTML {
	return template.HTML(r.b.String())
}

// Err returns the first markup conversion error.
func (r *HTMLRenderer) Err() error { return r.err }

func (r *HTMLRenderer) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *HTMLRenderer) printf(format string, args ...any) {
	fmt.Fprintf(&r.b, format, args...)
}

func esc(s string) string { return template.HTMLEscapeString(s) }

func (r *HTMLRenderer) Prose(p ui.Prose) {
	out, err := r.markup.Prose(p.Markdown)
	if err != nil {
		r.fail(err)
		return
	}
	r.printf("<div class=\"prose\">%s</div>\n", out)
}

func (r *HTMLRenderer) Code(c ui.CodeBlock) {
	out, err := r.markup.Code(c.Source, c.Lang)
	if err != nil {
		r.fail(err)
		return
	}
	r.b.WriteString("<figure class=\"code-block\">\n")
	if c.Title != "" {
		r.printf("<figcaption>%s</figcaption>\n", esc(c.Title))
	}
	r.b.WriteString(out)
	r.b.WriteString("</figure>\n")
}

func (r *HTMLRenderer) Table(t ui.Table) {
	r.b.WriteString("<div class=\"table-wrap\">\n<table>\n")
	if t.Title != "" {
		r.printf("<caption>%s</caption>\n", esc(t.Title))
	}
	width := len(t.Headers)
	if width > 0 {
		r.b.WriteString("<thead><tr>")
		for _, h := range t.Headers {
			r.printf("<th>%s</th>", esc(h))
		}
		r.b.WriteString("</tr></thead>\n")
	}
	r.b.WriteString("<tbody>\n")
	for _, row := range t.Rows {
		r.b.WriteString("<tr>")
		for _, cell := range fitRow(row, width) {
			r.printf("<td>%s</td>", esc(cell))
		}
		r.b.WriteString("</tr>\n")
	}
	r.b.WriteString("</tbody>\n</table>\n</div>\n")
}

// fitRow pads or truncates row to width. A zero width keeps the row as is.
func fitRow(row []string, width int) []string {
	if width == 0 || len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

func (r *HTMLRenderer) Card(c ui.Card) {
	r.b.WriteString("<div class=\"card\">\n<div class=\"card-title\">")
	if c.Icon != "" {
		r.printf("<span class=\"icon\">%s</span> ", esc(c.Icon))
	}
	r.printf("%s</div>\n", esc(c.Title))
	if c.Description != "" {
		r.printf("<p>%s</p>\n", esc(c.Description))
	}
	if len(c.Items) > 0 {
		r.b.WriteString("<ul>\n")
		for _, item := range c.Items {
			r.printf("<li>%s</li>\n", esc(item))
		}
		r.b.WriteString("</ul>\n")
	}
	r.b.WriteString("</div>\n")
}

func (r *HTMLRenderer) Highlight(h ui.Highlight) {
	variant := h.Variant
	if !variant.Valid() {
		variant = ui.HighlightInfo
	}
	text, err := r.markup.Prose(h.Text)
	if err != nil {
		r.fail(err)
		return
	}
	r.printf("<aside class=\"highlight highlight-%s\">\n", variant)
	if h.Title != "" {
		r.printf("<div class=\"highlight-title\">%s</div>\n", esc(h.Title))
	}
	r.b.WriteString(text)
	r.b.WriteString("</aside>\n")
}

// Diagram emits a holder that mermaid.js renders in the browser. The
// source is passed through untouched apart from HTML escaping.
func (r *HTMLRenderer) Diagram(d ui.Diagram) {
	r.b.WriteString("<figure class=\"diagram\">\n")
	r.printf("<div class=\"mermaid\">%s</div>\n", esc(d.Source))
	if d.Title != "" {
		r.printf("<figcaption>%s</figcaption>\n", esc(d.Title))
	}
	r.b.WriteString("</figure>\n")
}

func (r *HTMLRenderer) header(d *ui.Disclosure) string {
	var b strings.Builder
	b.WriteString("<span class=\"chevron\"></span>")
	if d.Icon() != "" {
		fmt.Fprintf(&b, "<span class=\"icon\">%s</span>", esc(d.Icon()))
	}
	fmt.Fprintf(&b, "<span class=\"title\">%s</span>", esc(d.Title()))
	return b.String()
}

func (r *HTMLRenderer) Disclosure(d *ui.Disclosure, body func()) {
	if r.mode == ModeStatic {
		open := ""
		if d.Expanded() {
			open = " open"
		}
		r.printf("<details class=\"disclosure depth-%d\" id=\"sec-%s\"%s>\n", d.Depth(), esc(d.ID()), open)
		r.printf("<summary class=\"disclosure-header\">%s</summary>\n", r.header(d))
		r.b.WriteString("<div class=\"disclosure-body\">\n")
		// Collapsed sections still ship their content so the browser can
		// expand them without a round trip.
		for _, c := range d.Children() {
			c.Render(r)
		}
		r.b.WriteString("</div>\n</details>\n")
		return
	}

	state := "closed"
	if body != nil {
		state = "open"
	}
	r.printf("<section class=\"disclosure depth-%d %s\" id=\"sec-%s\">\n", d.Depth(), state, esc(d.ID()))
	r.printf("<form method=\"post\" action=\"%s\">", esc(r.links.Toggle(r.pageID, d.ID())))
	r.printf("<button type=\"submit\" class=\"disclosure-header\" aria-expanded=\"%t\">%s</button></form>\n", body != nil, r.header(d))
	if body != nil {
		r.b.WriteString("<div class=\"disclosure-body\">\n")
		body()
		r.b.WriteString("</div>\n")
	}
	r.b.WriteString("</section>\n")
}

func tabLabel(t ui.Tab) string {
	label := esc(t.Label)
	if t.Icon != "" {
		label = "<span class=\"icon\">" + esc(t.Icon) + "</span> " + label
	}
	return label
}

func (r *HTMLRenderer) Tabs(g *ui.TabGroup, body func()) {
	r.printf("<div class=\"tabs\" id=\"tabs-%s\">\n<div class=\"tab-list\" role=\"tablist\">\n", esc(g.ID()))
	for _, t := range g.Tabs() {
		active := ""
		if t.ID == g.ActiveTab() {
			active = " active"
		}
		if r.mode == ModeStatic {
			r.printf("<button type=\"button\" class=\"tab%s\" role=\"tab\" data-tab=\"%s\">%s</button>\n", active, esc(t.ID), tabLabel(t))
			continue
		}
		r.printf("<form method=\"post\" action=\"%s\">", esc(r.links.Tab(r.pageID, g.ID(), t.ID)))
		r.printf("<button type=\"submit\" class=\"tab%s\" role=\"tab\">%s</button></form>\n", active, tabLabel(t))
	}
	r.b.WriteString("</div>\n")

	if r.mode == ModeStatic {
		for _, t := range g.Tabs() {
			hidden := " hidden"
			if t.ID == g.ActiveTab() {
				hidden = ""
			}
			r.printf("<div class=\"tab-panel\" role=\"tabpanel\" data-panel=\"%s\"%s>\n", esc(t.ID), hidden)
			for _, n := range g.Panel(t.ID) {
				n.Render(r)
			}
			r.b.WriteString("</div>\n")
		}
	} else {
		r.printf("<div class=\"tab-panel\" role=\"tabpanel\" data-panel=\"%s\">\n", esc(g.ActiveTab()))
		body()
		r.b.WriteString("</div>\n")
	}
	r.b.WriteString("</div>\n")
}

func (r *HTMLRenderer) Related(p *ui.RelatedPanel) {
	if p.Len() == 0 {
		return
	}
	r.b.WriteString("<nav class=\"related\">\n<h2>Related reading</h2>\n<ul>\n")
	for i, ref := range p.Refs() {
		label := ref.Label
		if label == "" {
			label = ref.ID
		}
		r.printf("<li><a href=\"%s\">%s</a>", esc(r.links.Related(r.pageID, i, ref.ID)), esc(label))
		if ref.Description != "" {
			r.printf("<span class=\"related-desc\">%s</span>", esc(ref.Description))
		}
		r.b.WriteString("</li>\n")
	}
	r.b.WriteString("</ul>\n</nav>\n")
}

// Links builds the URLs a rendered page points at.
type Links struct {
	Page    func(pageID string) string
	Toggle  func(pageID, nodeID string) string
	Tab     func(pageID, groupID, tabID string) string
	Related func(pageID string, index int, targetID string) string
	Assets  string
	Search  string
}

// ViewParam is the query parameter naming the live view a request acts on.
const ViewParam = "view"

// ForView returns l with page-scoped links addressed to one live view.
// An empty view returns l unchanged.
func (l Links) ForView(view string) Links {
	if view == "" {
		return l
	}
	q := "?" + ViewParam + "=" + url.QueryEscape(view)
	out := l
	out.Page = func(id string) string { return l.Page(id) + q }
	out.Toggle = func(pageID, nodeID string) string { return l.Toggle(pageID, nodeID) + q }
	out.Tab = func(pageID, groupID, tabID string) string { return l.Tab(pageID, groupID, tabID) + q }
	out.Related = func(pageID string, i int, id string) string { return l.Related(pageID, i, id) + q }
	return out
}

// LiveLinks address the routes of the live server.
var LiveLinks = Links{
	Page: func(id string) string { return "/pages/" + url.PathEscape(id) },
	Toggle: func(pageID, nodeID string) string {
		return "/pages/" + url.PathEscape(pageID) + "/toggle/" + url.PathEscape(nodeID)
	},
	Tab: func(pageID, groupID, tabID string) string {
		return "/pages/" + url.PathEscape(pageID) + "/tabs/" + url.PathEscape(groupID) + "/" + url.PathEscape(tabID)
	},
	Related: func(pageID string, i int, _ string) string {
		return "/pages/" + url.PathEscape(pageID) + "/related/" + strconv.Itoa(i)
	},
	Assets: "/assets/",
	Search: "/api/search-index",
}

// StaticLinks address the files of a static export.
var StaticLinks = Links{
	Page:    staticPage,
	Toggle:  func(string, string) string { return "" },
	Tab:     func(string, string, string) string { return "" },
	Related: func(_ string, _ int, id string) string { return staticPage(id) },
	Assets:  "",
	Search:  "search-index.json",
}

func staticPage(id string) string { return url.PathEscape(id) + ".html" }
