package site

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/ziadkadry99/archdocs/internal/content"
	"github.com/ziadkadry99/archdocs/internal/ui"
)

func testPage(t *testing.T) *ui.Page {
	t.Helper()
	return &ui.Page{
		Ref:   ui.PageRef{ID: "model-routing", Label: "Model Routing"},
		Title: "Model Routing",
		Compose: func() []ui.Node {
			tabs, err := ui.NewTabGroup(
				[]ui.Tab{{ID: "overview", Label: "Overview"}, {ID: "retry", Label: "Retry"}},
				map[string]ui.PanelFunc{
					"overview": func() []ui.Node { return []ui.Node{ui.Prose{Markdown: "routing **basics**"}} },
					"retry":    func() []ui.Node { return []ui.Node{ui.Prose{Markdown: "retry budget"}} },
				},
			)
			if err != nil {
				t.Fatal(err)
			}
			return []ui.Node{
				ui.NewDisclosure("Overview", "🧭", 0, true,
					ui.Prose{Markdown: "top level"},
					ui.NewDisclosure("Details", "", 1, false,
						ui.Prose{Markdown: "hidden detail"},
					),
				),
				tabs,
				ui.CodeBlock{Source: "func main() {}\n", Lang: "go", Title: "main.go"},
				ui.Table{Headers: []string{"A", "B"}, Rows: [][]string{{"1"}, {"x", "y", "z"}}},
				ui.Highlight{Variant: "bogus", Text: "note"},
				ui.Diagram{Title: "Flow", Source: "graph LR\n  a --> b"},
			}
		},
		Related: []ui.PageRef{{ID: "tool-scheduler", Label: "Tool Scheduler", Description: "Runs calls"}},
	}
}

func render(t *testing.T, mode Mode, m *ui.Mount) string {
	t.Helper()
	r := NewHTMLRenderer(NewMarkup(""), mode, m.Page().ID())
	m.Render(r)
	if err := r.Err(); err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(r.HTML())
}

func TestLiveRender(t *testing.T) {
	m := testPage(t).Mount(nil)
	out := render(t, ModeLive, m)

	for _, want := range []string{
		`<section class="disclosure depth-0 open" id="sec-s0">`,
		`action="/pages/model-routing/toggle/s0"`,
		`<section class="disclosure depth-1 closed" id="sec-s0.1">`,
		`action="/pages/model-routing/tabs/s1/retry"`,
		`<strong>basics</strong>`,
		`<figcaption>main.go</figcaption>`,
		`<td>1</td><td></td></tr>`,
		`<td>x</td><td>y</td></tr>`,
		`highlight-info`,
		`<div class="mermaid">graph LR`,
		`a --&gt; b`,
		`href="/pages/model-routing/related/0"`,
		`Runs calls`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("live output missing %q", want)
		}
	}
	for _, unwanted := range []string{"hidden detail", "retry budget", "<details"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("live output should not contain %q", unwanted)
		}
	}
	if strings.Index(out, "Related reading") < strings.Index(out, "mermaid") {
		t.Error("related panel should come after the body")
	}
}

func TestLiveRenderFollowsState(t *testing.T) {
	m := testPage(t).Mount(nil)
	m.Toggle("s0.1")
	m.SelectTab("s1", "retry")
	out := render(t, ModeLive, m)
	if !strings.Contains(out, "hidden detail") {
		t.Error("expanded section content missing")
	}
	if !strings.Contains(out, "retry budget") || strings.Contains(out, "basics") {
		t.Error("only the selected tab panel should render")
	}
}

func TestStaticRender(t *testing.T) {
	m := testPage(t).Mount(nil)
	out := render(t, ModeStatic, m)

	for _, want := range []string{
		`<details class="disclosure depth-0" id="sec-s0" open>`,
		`<details class="disclosure depth-1" id="sec-s0.1">`,
		"hidden detail",
		`data-tab="retry"`,
		`data-panel="retry" hidden`,
		"retry budget",
		`href="tool-scheduler.html"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("static output missing %q", want)
		}
	}
	if strings.Contains(out, "<form") {
		t.Error("static output should not post back")
	}
}

func TestShellRender(t *testing.T) {
	shell, err := NewShell("Agent CLI", nil)
	if err != nil {
		t.Fatal(err)
	}
	p := testPage(t)
	m := p.Mount(nil)
	nav := []NavEntry{{ID: "overview", Title: "Overview"}, {ID: "model-routing", Title: "Model Routing"}}

	var buf bytes.Buffer
	err = shell.Render(&buf, View{
		Mode: ModeLive,
		Page: p,
		Nav:  nav,
		Home: "overview",
		Draw: func(r ui.Renderer) bool { m.Render(r); return true },
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<title>Model Routing · Agent CLI</title>",
		`href="/assets/style.css"`,
		`data-live="true"`,
		`data-search-index="/api/search-index"`,
		`<a href="/pages/model-routing" class="active">`,
		`<a href="/pages/overview">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("shell output missing %q", want)
		}
	}

	buf.Reset()
	if err := shell.NotFound(&buf, "ghost", "overview"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<code>ghost</code>") {
		t.Error("not-found page should name the id")
	}
}

func TestShellRenderView(t *testing.T) {
	shell, err := NewShell("Agent CLI", nil)
	if err != nil {
		t.Fatal(err)
	}
	p := testPage(t)
	m := p.Mount(nil)

	var buf bytes.Buffer
	err = shell.Render(&buf, View{
		Mode:   ModeLive,
		Page:   p,
		Nav:    []NavEntry{{ID: "model-routing", Title: "Model Routing"}},
		Home:   "overview",
		ViewID: "v1",
		Draw:   func(r ui.Renderer) bool { m.Render(r); return true },
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`action="/pages/model-routing/toggle/s0.0?view=v1"`,
		`action="/pages/model-routing/tabs/s1/retry?view=v1"`,
		`href="/pages/model-routing/related/0?view=v1"`,
		`<a href="/pages/model-routing" class="active">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("shell output missing %q", want)
		}
	}
}

func TestLinksForView(t *testing.T) {
	if got := LiveLinks.ForView("").Page("a"); got != "/pages/a" {
		t.Errorf("empty view Page = %q", got)
	}
	l := LiveLinks.ForView("a b")
	if got := l.Page("x"); got != "/pages/x?view=a+b" {
		t.Errorf("Page = %q", got)
	}
	if got := l.Related("x", 2, "y"); got != "/pages/x/related/2?view=a+b" {
		t.Errorf("Related = %q", got)
	}
}

func TestBuildNav(t *testing.T) {
	reg := ui.NewRegistry()
	_ = reg.Register(&ui.Page{Ref: ui.PageRef{ID: "tool-scheduler"}})
	_ = reg.Register(&ui.Page{Ref: ui.PageRef{ID: "overview", Label: "Start"}})
	_ = reg.Register(&ui.Page{Ref: ui.PageRef{ID: "b"}, Title: "Bee"})

	nav := BuildNav(reg, "overview")
	var got []string
	for _, e := range nav {
		got = append(got, e.Title)
	}
	if strings.Join(got, ",") != "Start,Tool Scheduler,Bee" {
		t.Errorf("nav = %v", got)
	}
}

func TestSearchIndexIncludesHiddenContent(t *testing.T) {
	reg := ui.NewRegistry()
	if err := reg.Register(testPage(t)); err != nil {
		t.Fatal(err)
	}
	entries := BuildSearchIndex(reg, StaticLinks.Page)
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	e := entries[0]
	if e.Path != "model-routing.html" || e.Title != "Model Routing" {
		t.Errorf("entry = %+v", e)
	}
	for _, want := range []string{"hidden detail", "retry budget", "Details"} {
		if !strings.Contains(e.Content, want) {
			t.Errorf("content missing %q: %s", want, e.Content)
		}
	}
}

func TestGenerateBuiltin(t *testing.T) {
	reg, err := content.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	shell, err := NewShell("Agent CLI", nil)
	if err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()
	g := &Generator{Registry: reg, Home: "overview", OutputDir: out, Shell: shell, Workers: 2}

	n, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n != reg.Len() {
		t.Errorf("generated %d pages, want %d", n, reg.Len())
	}

	for _, id := range reg.IDs() {
		if _, err := os.Stat(filepath.Join(out, id+".html")); err != nil {
			t.Errorf("missing page %s: %v", id, err)
		}
	}
	for _, f := range []string{"index.html", "style.css", "script.js", "search-index.json"} {
		if _, err := os.Stat(filepath.Join(out, f)); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}

	index, _ := os.ReadFile(filepath.Join(out, "index.html"))
	home, _ := os.ReadFile(filepath.Join(out, "overview.html"))
	if !bytes.Equal(index, home) {
		t.Error("index.html should be the home page")
	}

	loop, _ := os.ReadFile(filepath.Join(out, "loop-detection.html"))
	if !strings.Contains(string(loop), `href="tool-scheduler.html"`) {
		t.Error("loop-detection should link to tool-scheduler")
	}

	raw, _ := os.ReadFile(filepath.Join(out, "search-index.json"))
	var entries []SearchEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		t.Fatalf("search index: %v", err)
	}
	if len(entries) != reg.Len() {
		t.Errorf("search index has %d entries, want %d", len(entries), reg.Len())
	}
}

func TestGenerateEmpty(t *testing.T) {
	shell, _ := NewShell("x", nil)
	g := &Generator{Registry: ui.NewRegistry(), OutputDir: t.TempDir(), Shell: shell}
	if _, err := g.Generate(context.Background()); err == nil {
		t.Error("expected error for an empty registry")
	}
}
