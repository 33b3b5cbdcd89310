// Package site renders mounted pages as HTML, either live against a
// page-host or as a self-contained static export.
package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/archdocs/internal/progress"
	"github.com/ziadkadry99/archdocs/internal/ui"
)

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title       string
	Icon        string
	SiteTitle   string
	PageID      string
	Content     template.HTML
	Nav         template.HTML
	Assets      string
	SearchIndex string
	HomeLink    string
	Live        bool
}

// Shell wraps rendered page bodies in the site layout.
type Shell struct {
	Title    string
	Markup   *Markup
	page     *template.Template
	notFound *template.Template
}

// NewShell parses the page templates.
func NewShell(title string, m *Markup) (*Shell, error) {
	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	notFound, err := template.New("notfound").Parse(notFoundTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing not-found template: %w", err)
	}
	if m == nil {
		m = NewMarkup("")
	}
	return &Shell{Title: title, Markup: m, page: page, notFound: notFound}, nil
}

// View describes one page render.
type View struct {
	Mode Mode
	Page *ui.Page
	Nav  []NavEntry
	Home string
	// ViewID addresses the section, tab and related links of a live page
	// to one view. Sidebar links start new views.
	ViewID string
	// Draw renders the page body onto r. It reports false when there is
	// nothing to draw.
	Draw func(r ui.Renderer) bool
}

// Render writes the complete HTML document for v.
func (s *Shell) Render(w io.Writer, v View) error {
	links := LiveLinks
	if v.Mode == ModeStatic {
		links = StaticLinks
	}

	r := NewHTMLRenderer(s.Markup, v.Mode, v.Page.ID())
	if v.Mode == ModeLive {
		r.links = links.ForView(v.ViewID)
	}
	if v.Draw != nil {
		v.Draw(r)
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("rendering %s: %w", v.Page.ID(), err)
	}

	data := pageData{
		Title:       displayTitle(v.Page),
		Icon:        v.Page.Icon,
		SiteTitle:   s.Title,
		PageID:      v.Page.ID(),
		Content:     r.HTML(),
		Nav:         NavHTML(v.Nav, v.Page.ID(), links.Page),
		Assets:      links.Assets,
		SearchIndex: links.Search,
		HomeLink:    links.Page(v.Home),
		Live:        v.Mode == ModeLive,
	}
	return s.page.Execute(w, data)
}

// NotFound writes the page shown for an unknown id in live mode.
func (s *Shell) NotFound(w io.Writer, id, home string) error {
	return s.notFound.Execute(w, pageData{
		SiteTitle: s.Title,
		PageID:    id,
		Assets:    LiveLinks.Assets,
		HomeLink:  LiveLinks.Page(home),
	})
}

// CSS returns the site stylesheet.
func CSS() string { return cssContent }

// JS returns the site script.
func JS() string { return jsContent }

// Generator exports every page in its default state as static HTML.
type Generator struct {
	Registry  *ui.Registry
	Home      string
	OutputDir string
	Shell     *Shell
	// Workers bounds concurrent page renders. Zero uses GOMAXPROCS.
	Workers  int
	Reporter progress.Reporter
}

// Generate builds the full static site. Returns the number of pages written.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	pages := g.Registry.Pages()
	if len(pages) == 0 {
		return 0, fmt.Errorf("no pages to export")
	}
	home := g.Home
	if _, ok := g.Registry.Lookup(home); !ok {
		home = pages[0].ID()
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	entries := BuildSearchIndex(g.Registry, StaticLinks.Page)
	if err := WriteSearchIndex(entries, filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}
	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	nav := BuildNav(g.Registry, home)
	reporter.Start(len(pages))
	defer reporter.Finish()

	var (
		mu   sync.Mutex
		done int
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, p := range pages {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := g.renderPage(p, nav, home)
			if err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(g.OutputDir, p.ID()+".html"), data, 0o644); err != nil {
				return err
			}
			if p.ID() == home {
				if err := os.WriteFile(filepath.Join(g.OutputDir, "index.html"), data, 0o644); err != nil {
					return err
				}
			}

			mu.Lock()
			done++
			reporter.Update(done, p.ID())
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	return len(pages), nil
}

// renderPage mounts a fresh instance of p so no state is shared between
// workers.
func (g *Generator) renderPage(p *ui.Page, nav []NavEntry, home string) ([]byte, error) {
	m := p.Mount(nil)
	var buf bytes.Buffer
	err := g.Shell.Render(&buf, View{
		Mode: ModeStatic,
		Page: p,
		Nav:  nav,
		Home: home,
		Draw: func(r ui.Renderer) bool {
			m.Render(r)
			return true
		},
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
